// Command orders-import bulk-loads a legacy storefront order export into
// the database. The export is a gzipped JSONL file, one order per line.
//
// Duplicate handling: a bloom filter over payment ids prefilters lines
// already seen in this run, and the insert itself is conflict-ignoring on
// the payment id, so bloom false positives only cost one extra round-trip
// and re-running a partial import is safe.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront-admin/internal/domain/order"
	"github.com/xenking/storefront-admin/internal/repository"
)

const (
	bloomFPR      = 0.001
	progressEvery = 10_000
	maxLineBytes  = 1 << 20
)

type orderLine struct {
	CreatedAt time.Time       `json:"created_at"`
	Status    order.Status    `json:"status"`
	Items     []order.Item    `json:"items"`
	Customer  order.Customer  `json:"customer"`
	Total     decimal.Decimal `json:"total"`
}

func main() {
	var (
		exportFile  string
		databaseURL string
		workers     int
		expected    uint64
	)

	flag.StringVar(&exportFile, "export-file", "orders.jsonl.gz", "gzipped JSONL order export")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.IntVar(&workers, "workers", 4, "concurrent insert workers")
	flag.Uint64Var(&expected, "expected", 1_000_000, "expected order count, sizes the bloom filter")
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

	if err := run(ctx, exportFile, databaseURL, workers, expected); err != nil {
		slog.Error("order import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("order import completed successfully")
}

func run(ctx context.Context, exportFile, databaseURL string, workers int, expected uint64) error {
	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	repo := repository.NewOrderRepository(pool)

	f, err := os.Open(exportFile)
	if err != nil {
		return errors.Wrapf(err, "open %s", exportFile)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "open gzip stream")
	}
	defer gz.Close()

	var (
		read     atomic.Int64
		imported atomic.Int64
		skipped  atomic.Int64
	)

	lines := make(chan []byte, workers*4)
	g, ctx := errgroup.WithContext(ctx)

	// Reader: scans lines and runs the single-threaded bloom prefilter.
	// Lines whose payment id was already added are dropped here; new ids
	// pass through to the workers.
	g.Go(func() error {
		defer close(lines)

		seen := bloom.NewWithEstimates(uint(expected), bloomFPR)
		scanner := bufio.NewScanner(gz)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

		for scanner.Scan() {
			raw := scanner.Bytes()
			if len(raw) == 0 {
				continue
			}
			n := read.Add(1)
			if n%progressEvery == 0 {
				slog.Info("reading export", slog.Int64("lines", n))
			}

			payID, err := extractPaymentID(raw)
			if err != nil {
				return errors.Wrapf(err, "line %d", n)
			}
			if payID != "" && seen.TestAndAddString(payID) {
				skipped.Add(1)
				continue
			}

			line := make([]byte, len(raw))
			copy(line, raw)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case lines <- line:
			}
		}
		return errors.Wrap(scanner.Err(), "scan export")
	})

	// Workers: decode full orders and insert them.
	for range workers {
		g.Go(func() error {
			for line := range lines {
				var ol orderLine
				if err := json.Unmarshal(line, &ol); err != nil {
					return errors.Wrap(err, "decode order line")
				}
				if !ol.Status.Valid() {
					return errors.Errorf("invalid status %q", ol.Status)
				}

				o := &order.Order{
					CreatedAt: ol.CreatedAt,
					Status:    ol.Status,
					Items:     ol.Items,
					Customer:  ol.Customer,
					Total:     ol.Total,
				}
				inserted, err := repo.Import(ctx, o)
				if err != nil {
					return err
				}
				if inserted {
					imported.Add(1)
				} else {
					skipped.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("import finished",
		slog.Int64("read", read.Load()),
		slog.Int64("imported", imported.Load()),
		slog.Int64("skipped", skipped.Load()),
	)
	return nil
}

// extractPaymentID pulls customer.payment_id out of a raw order line
// without decoding the whole document.
func extractPaymentID(raw []byte) (string, error) {
	var payID string
	d := jx.DecodeBytes(raw)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "customer" {
			return d.Skip()
		}
		return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
			if string(key) != "payment_id" {
				return d.Skip()
			}
			v, err := d.Str()
			payID = v
			return err
		})
	})
	if err != nil {
		return "", errors.Wrap(err, "parse order line")
	}
	return payID, nil
}
