package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-admin/internal/domain/order"
)

const (
	listOrdersSQL = `SELECT id, created_at, status, items, customer, total
		FROM orders`

	getOrderByIDSQL = `SELECT id, created_at, status, items, customer, total
		FROM orders WHERE id = $1`

	updateOrderStatusSQL = `UPDATE orders SET status = $2 WHERE id = $1`

	insertOrderSQL = `INSERT INTO orders (created_at, status, items, customer, total)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	importOrderSQL = `INSERT INTO orders (created_at, status, items, customer, total)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ((customer ->> 'payment_id')) WHERE customer ->> 'payment_id' <> ''
		DO NOTHING`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. Items
// and customer data live in JSONB columns; only the status column mutates
// after checkout.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// List returns all orders. Callers own filtering and ordering.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// GetByID returns a single order, or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return &o, nil
}

// UpdateStatus sets the order's status. Returns order.ErrNotFound when no
// row matches the id.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, status)
	if err != nil {
		return fmt.Errorf("updating order %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Insert persists a new order and returns its assigned id. Used by the seed
// and import tools; the admin API itself never creates orders.
func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}
	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshaling order customer: %w", err)
	}

	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err = r.pool.QueryRow(ctx, insertOrderSQL,
		createdAt, o.Status, itemsJSON, customerJSON, o.Total,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// Import persists an order unless one with the same payment id already
// exists. Returns whether a row was inserted. Used by the bulk importer.
func (r *OrderRepository) Import(ctx context.Context, o *order.Order) (bool, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return false, fmt.Errorf("marshaling order items: %w", err)
	}
	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return false, fmt.Errorf("marshaling order customer: %w", err)
	}

	tag, err := r.pool.Exec(ctx, importOrderSQL,
		o.CreatedAt, o.Status, itemsJSON, customerJSON, o.Total,
	)
	if err != nil {
		return false, fmt.Errorf("importing order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o            order.Order
		itemsJSON    []byte
		customerJSON []byte
		total        decimal.Decimal
	)
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.Status, &itemsJSON, &customerJSON, &total); err != nil {
		return order.Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling order %d items: %w", o.ID, err)
	}
	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling order %d customer: %w", o.ID, err)
	}
	o.Total = total
	return o, nil
}
