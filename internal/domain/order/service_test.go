package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockOrderRepo struct {
	orders []Order

	listErr   error
	getErr    error
	updateErr error

	updatedID     int64
	updatedStatus Status
	updateCalls   int
}

func (m *mockOrderRepo) List(_ context.Context) ([]Order, error) {
	return m.orders, m.listErr
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*Order, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.orders {
		if m.orders[i].ID == id {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id int64, status Status) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updatedStatus = status
	return nil
}

func accept() Confirmer {
	return ConfirmerFunc(func(context.Context, string) (bool, error) { return true, nil })
}

func decline() Confirmer {
	return ConfirmerFunc(func(context.Context, string) (bool, error) { return false, nil })
}

// --- Helpers ---

func newTestOrder(id int64, status Status, createdAt time.Time) Order {
	return Order{
		ID:        id,
		CreatedAt: createdAt,
		Status:    status,
		Items: []Item{
			{Name: "Charizard VMAX", Price: decimal.NewFromInt(100), Quantity: 2},
			{Name: "Froakie", Price: decimal.NewFromInt(50), Quantity: 1},
		},
		Customer: Customer{
			Name:           "Asha Rao",
			Phone:          "9876543210",
			Email:          "asha@example.com",
			PaymentID:      "pay_123",
			PaymentMethod:  "upi",
			DeliveryType:   DeliveryRegular,
			DeliveryCharge: decimal.NewFromInt(40),
			Address: Address{
				Line1:   "12 Lake View Road",
				City:    "Chennai",
				State:   "Tamil Nadu",
				Pincode: "600001",
			},
		},
		Total: decimal.NewFromInt(335),
	}
}

// --- Tests ---

func TestServiceList(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &mockOrderRepo{orders: []Order{
		newTestOrder(1, StatusPending, base),
		newTestOrder(2, StatusShipped, base.Add(2*time.Hour)),
		newTestOrder(3, StatusPending, base.Add(time.Hour)),
		newTestOrder(4, StatusDelivered, base.Add(3*time.Hour)),
	}}
	svc := NewService(repo)

	t.Run("all sorted newest first", func(t *testing.T) {
		got, err := svc.List(context.Background(), FilterAll)
		require.NoError(t, err)

		assert.Equal(t, 4, got.Total)
		ids := make([]int64, len(got.Orders))
		for i, o := range got.Orders {
			ids[i] = o.ID
		}
		assert.Equal(t, []int64{4, 2, 3, 1}, ids)
	})

	t.Run("by status returns only matching, sorted", func(t *testing.T) {
		got, err := svc.List(context.Background(), Filter(StatusPending))
		require.NoError(t, err)

		assert.Equal(t, 4, got.Total)
		require.Len(t, got.Orders, 2)
		assert.Equal(t, int64(3), got.Orders[0].ID)
		assert.Equal(t, int64(1), got.Orders[1].ID)
		for _, o := range got.Orders {
			assert.Equal(t, StatusPending, o.Status)
		}
	})

	t.Run("empty filter result keeps total", func(t *testing.T) {
		got, err := svc.List(context.Background(), Filter(StatusPacked))
		require.NoError(t, err)

		assert.Empty(t, got.Orders)
		assert.Equal(t, 4, got.Total)
	})

	t.Run("invalid filter", func(t *testing.T) {
		_, err := svc.List(context.Background(), Filter("cancelled"))
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("repo error", func(t *testing.T) {
		bad := NewService(&mockOrderRepo{listErr: errors.New("db down")})
		_, err := bad.List(context.Background(), FilterAll)
		assert.Error(t, err)
	})
}

func TestServiceDetail(t *testing.T) {
	now := time.Now()
	repo := &mockOrderRepo{orders: []Order{newTestOrder(7, StatusPacked, now)}}
	svc := NewService(repo)

	t.Run("computes subtotal and tax", func(t *testing.T) {
		got, err := svc.Detail(context.Background(), 7)
		require.NoError(t, err)

		// items: 100x2 + 50x1 = 250; tax = 250 * 0.18 = 45
		assert.Equal(t, "250.00", got.Subtotal.StringFixed(2))
		assert.Equal(t, "45.00", got.Tax.StringFixed(2))
		// stored total is reported as-is, not subtotal+tax+delivery
		assert.Equal(t, "335.00", got.Order.Total.StringFixed(2))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Detail(context.Background(), 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceStatistics(t *testing.T) {
	base := time.Now()
	repo := &mockOrderRepo{orders: []Order{
		newTestOrder(1, StatusPending, base),
		newTestOrder(2, StatusPending, base),
		newTestOrder(3, StatusPacked, base),
		newTestOrder(4, StatusShipped, base),
		newTestOrder(5, StatusDelivered, base),
	}}
	svc := NewService(repo)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[StatusPending])
	assert.Equal(t, 1, stats.ByStatus[StatusPacked])
	assert.Equal(t, 1, stats.ByStatus[StatusShipped])
	assert.Equal(t, 1, stats.ByStatus[StatusDelivered])

	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
}

func TestServiceAdvance(t *testing.T) {
	t.Run("confirmed transition persists next status", func(t *testing.T) {
		repo := &mockOrderRepo{orders: []Order{newTestOrder(1, StatusPending, time.Now())}}
		svc := NewService(repo)

		tr, err := svc.Advance(context.Background(), 1, accept())
		require.NoError(t, err)

		assert.True(t, tr.Advanced)
		assert.Equal(t, StatusPending, tr.From)
		assert.Equal(t, StatusPacked, tr.To)
		assert.Equal(t, int64(1), repo.updatedID)
		assert.Equal(t, StatusPacked, repo.updatedStatus)
	})

	t.Run("declined confirmation changes nothing", func(t *testing.T) {
		repo := &mockOrderRepo{orders: []Order{newTestOrder(1, StatusShipped, time.Now())}}
		svc := NewService(repo)

		tr, err := svc.Advance(context.Background(), 1, decline())
		require.NoError(t, err)

		assert.False(t, tr.Advanced)
		assert.Equal(t, StatusDelivered, tr.To)
		assert.Zero(t, repo.updateCalls)

		stats, err := svc.Statistics(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, stats.ByStatus[StatusShipped])
	})

	t.Run("prompt names the target status", func(t *testing.T) {
		repo := &mockOrderRepo{orders: []Order{newTestOrder(1, StatusPacked, time.Now())}}
		svc := NewService(repo)

		var prompt string
		c := ConfirmerFunc(func(_ context.Context, p string) (bool, error) {
			prompt = p
			return false, nil
		})
		_, err := svc.Advance(context.Background(), 1, c)
		require.NoError(t, err)
		assert.Equal(t, "Mark this order as Shipped?", prompt)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		repo := &mockOrderRepo{orders: []Order{newTestOrder(1, StatusDelivered, time.Now())}}
		svc := NewService(repo)

		_, err := svc.Advance(context.Background(), 1, accept())
		assert.ErrorIs(t, err, ErrTerminalStatus)
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := NewService(&mockOrderRepo{})
		_, err := svc.Advance(context.Background(), 42, accept())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("persistence failure is surfaced, no optimistic update", func(t *testing.T) {
		repo := &mockOrderRepo{
			orders:    []Order{newTestOrder(1, StatusPending, time.Now())},
			updateErr: errors.New("write failed"),
		}
		svc := NewService(repo)

		_, err := svc.Advance(context.Background(), 1, accept())
		require.Error(t, err)

		got, err := svc.Detail(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, got.Order.Status)
	})
}

func TestSubtotalAndTax(t *testing.T) {
	items := []Item{
		{Name: "a", Price: decimal.NewFromInt(100), Quantity: 2},
		{Name: "b", Price: decimal.NewFromInt(50), Quantity: 1},
	}

	sub := Subtotal(items)
	assert.Equal(t, "250.00", sub.StringFixed(2))
	assert.Equal(t, "45.00", Tax(sub).StringFixed(2))
	assert.Equal(t, 3, ItemCount(items))
	assert.Equal(t, "0.00", Subtotal(nil).StringFixed(2))
}
