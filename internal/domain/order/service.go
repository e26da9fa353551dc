package order

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Filter selects which orders a listing returns. FilterAll matches every
// order; any other value must be a valid Status.
type Filter string

// FilterAll matches orders in every status.
const FilterAll Filter = "all"

// ErrInvalidFilter indicates a listing filter that is neither "all" nor a
// workflow status.
var ErrInvalidFilter = errors.New("invalid status filter")

// Valid reports whether f is "all" or one of the workflow statuses.
func (f Filter) Valid() bool {
	return f == FilterAll || Status(f).Valid()
}

// Confirmer is the user-confirmation port for status transitions. Advance
// asks it before persisting anything; a false answer aborts the transition
// with no effect.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Listing is the result of a filtered order listing.
type Listing struct {
	// Orders match the filter, sorted by CreatedAt descending.
	Orders []Order
	// Total is the unfiltered order count, letting callers distinguish an
	// empty store from an empty filter result.
	Total int
	// Filter is the filter the listing was produced with.
	Filter Filter
}

// Detail is a single order together with its computed price breakdown.
// Subtotal and Tax are derived from the item lines; the order's stored Total
// is reported separately and deliberately not reconciled with them.
type Detail struct {
	Order    Order
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
}

// Statistics holds the order counters shown on the admin dashboard.
type Statistics struct {
	Total    int
	ByStatus map[Status]int
}

// Transition is the outcome of an Advance call.
type Transition struct {
	OrderID int64
	From    Status
	To      Status
	// Advanced is false when the confirmer declined; nothing was persisted.
	Advanced bool
}

// Service implements the admin order operations over a Repository.
type Service struct {
	orders Repository
}

// NewService creates a Service backed by the given order repository.
func NewService(orders Repository) *Service {
	return &Service{orders: orders}
}

// List returns orders matching the filter sorted newest first, along with
// the unfiltered total count.
func (s *Service) List(ctx context.Context, filter Filter) (*Listing, error) {
	if !filter.Valid() {
		return nil, errors.Wrapf(ErrInvalidFilter, "%q", filter)
	}

	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}

	matched := all
	if filter != FilterAll {
		matched = make([]Order, 0, len(all))
		for _, o := range all {
			if o.Status == Status(filter) {
				matched = append(matched, o)
			}
		}
	}

	slices.SortStableFunc(matched, func(a, b Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return &Listing{Orders: matched, Total: len(all), Filter: filter}, nil
}

// Detail returns the order with its computed subtotal and tax.
// Returns ErrNotFound when no order has the given id.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", id)
	}

	sub := Subtotal(o.Items)
	return &Detail{
		Order:    *o,
		Subtotal: sub,
		Tax:      Tax(sub),
	}, nil
}

// Statistics scans the full order collection and counts orders per status.
// Counts are recomputed on every call; nothing is cached.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}

	stats := &Statistics{
		Total:    len(all),
		ByStatus: make(map[Status]int, 4),
	}
	for _, st := range Statuses() {
		stats.ByStatus[st] = 0
	}
	for _, o := range all {
		stats.ByStatus[o.Status]++
	}
	return stats, nil
}

// Advance moves the order to the single next status in the workflow, after
// asking the confirmer. The repository is the sole source of truth: on a
// persistence error the in-memory order is untouched and the error is
// returned as-is for the caller to surface.
func (s *Service) Advance(ctx context.Context, id int64, confirm Confirmer) (*Transition, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", id)
	}

	to, ok := o.Status.Next()
	if !ok {
		return nil, ErrTerminalStatus
	}

	prompt := fmt.Sprintf("Mark this order as %s?", to.Label())
	accepted, err := confirm.Confirm(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(err, "confirm transition")
	}
	if !accepted {
		return &Transition{OrderID: id, From: o.Status, To: to, Advanced: false}, nil
	}

	if err := s.orders.UpdateStatus(ctx, id, to); err != nil {
		return nil, errors.Wrapf(err, "update order %d status", id)
	}

	return &Transition{OrderID: id, From: o.Status, To: to, Advanced: true}, nil
}
