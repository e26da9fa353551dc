// Package cart exposes the read side of the storefront cart needed by the
// admin UI: the item count shown on the navigation badge.
package cart

import "context"

// Repository defines read operations on the active cart.
type Repository interface {
	// ItemCount returns the total number of units across all cart lines.
	ItemCount(ctx context.Context) (int, error)
}
