package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-admin/internal/domain/cart"
)

const cartItemCountSQL = `SELECT COALESCE(SUM(quantity), 0) FROM cart_items`

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// ItemCount sums the quantities across all cart lines.
func (r *CartRepository) ItemCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, cartItemCountSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cart items: %w", err)
	}
	return count, nil
}
