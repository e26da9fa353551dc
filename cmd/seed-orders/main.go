// Command seed-orders loads demo orders from a JSON file into the database.
// Intended for local development and demo environments.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-admin/internal/domain/order"
	"github.com/xenking/storefront-admin/internal/repository"
)

type orderJSON struct {
	CreatedAt time.Time       `json:"created_at"`
	Status    order.Status    `json:"status"`
	Items     []order.Item    `json:"items"`
	Customer  order.Customer  `json:"customer"`
	Total     decimal.Decimal `json:"total"`
}

func main() {
	var (
		databaseURL string
		ordersFile  string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&ordersFile, "orders-file", "db/seed/orders.json", "path to orders JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, ordersFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, ordersFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	raw, err := os.ReadFile(ordersFile)
	if err != nil {
		return errors.Wrapf(err, "read %s", ordersFile)
	}

	var seeds []orderJSON
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return errors.Wrap(err, "parse orders file")
	}

	repo := repository.NewOrderRepository(pool)
	for i, s := range seeds {
		if !s.Status.Valid() {
			return errors.Errorf("order %d: invalid status %q", i, s.Status)
		}
		o := &order.Order{
			CreatedAt: s.CreatedAt,
			Status:    s.Status,
			Items:     s.Items,
			Customer:  s.Customer,
			Total:     s.Total,
		}
		if err := repo.Insert(ctx, o); err != nil {
			return errors.Wrapf(err, "insert order %d", i)
		}
		slog.Info("seeded order", slog.Int64("id", o.ID), slog.String("status", string(o.Status)))
	}

	return nil
}
