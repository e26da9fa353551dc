//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/storefront-admin/internal/domain/order"
	"github.com/xenking/storefront-admin/internal/repository"
)

// RepositoryIntegrationTestSuite runs the order and cart repositories
// against a real PostgreSQL container.
type RepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	orders    *repository.OrderRepository
	cart      *repository.CartRepository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := repository.NewPool(ctx, connStr)
	s.Require().NoError(err)
	s.pool = pool

	s.Require().NoError(repository.RunMigrations(ctx, pool))
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.pool.Exec(ctx, "TRUNCATE TABLE orders, cart_items RESTART IDENTITY")
	s.Require().NoError(err)

	s.orders = repository.NewOrderRepository(s.pool)
	s.cart = repository.NewCartRepository(s.pool)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RepositoryIntegrationTestSuite) TestInsertAndGetByID() {
	ctx := context.Background()

	o := testOrder(order.StatusPending, "pay_int_001")
	s.Require().NoError(s.orders.Insert(ctx, o))
	s.Require().NotZero(o.ID)

	got, err := s.orders.GetByID(ctx, o.ID)
	s.Require().NoError(err)

	s.Equal(o.ID, got.ID)
	s.Equal(order.StatusPending, got.Status)
	s.Equal("Misty Kasumi", got.Customer.Name)
	s.Equal("pay_int_001", got.Customer.PaymentID)
	s.Len(got.Items, 2)
	s.Equal("Froakie Holo", got.Items[0].Name)
	s.True(got.Total.Equal(decimal.NewFromInt(335)), "total %s", got.Total)
	s.True(got.Customer.DeliveryCharge.Equal(decimal.NewFromInt(40)))
}

func (s *RepositoryIntegrationTestSuite) TestGetByID_Missing() {
	got, err := s.orders.GetByID(context.Background(), 9999)
	s.Nil(got)
	s.Require().ErrorIs(err, order.ErrNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestList_ReturnsAllOrders() {
	ctx := context.Background()

	statuses := []order.Status{
		order.StatusPending, order.StatusPacked, order.StatusShipped, order.StatusDelivered,
	}
	for i, st := range statuses {
		o := testOrder(st, "")
		o.CreatedAt = time.Now().Add(-time.Duration(i) * time.Hour)
		s.Require().NoError(s.orders.Insert(ctx, o))
	}

	got, err := s.orders.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 4)

	byStatus := make(map[order.Status]int)
	for _, o := range got {
		byStatus[o.Status]++
	}
	for _, st := range statuses {
		s.Equal(1, byStatus[st], "status %s", st)
	}
}

func (s *RepositoryIntegrationTestSuite) TestUpdateStatus() {
	ctx := context.Background()

	o := testOrder(order.StatusPending, "")
	s.Require().NoError(s.orders.Insert(ctx, o))

	s.Require().NoError(s.orders.UpdateStatus(ctx, o.ID, order.StatusPacked))

	got, err := s.orders.GetByID(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(order.StatusPacked, got.Status)
}

func (s *RepositoryIntegrationTestSuite) TestUpdateStatus_Missing() {
	err := s.orders.UpdateStatus(context.Background(), 9999, order.StatusPacked)
	s.Require().ErrorIs(err, order.ErrNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestUpdateStatus_RejectedByConstraint() {
	ctx := context.Background()

	o := testOrder(order.StatusPending, "")
	s.Require().NoError(s.orders.Insert(ctx, o))

	err := s.orders.UpdateStatus(ctx, o.ID, order.Status("cancelled"))
	s.Require().Error(err)

	got, err := s.orders.GetByID(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(order.StatusPending, got.Status)
}

func (s *RepositoryIntegrationTestSuite) TestImport_SkipsDuplicatePaymentID() {
	ctx := context.Background()

	first := testOrder(order.StatusDelivered, "pay_dup_123")
	inserted, err := s.orders.Import(ctx, first)
	s.Require().NoError(err)
	s.True(inserted)

	second := testOrder(order.StatusDelivered, "pay_dup_123")
	inserted, err = s.orders.Import(ctx, second)
	s.Require().NoError(err)
	s.False(inserted, "duplicate payment id should not insert a second row")

	got, err := s.orders.List(ctx)
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *RepositoryIntegrationTestSuite) TestImport_EmptyPaymentIDNeverConflicts() {
	ctx := context.Background()

	for range 3 {
		inserted, err := s.orders.Import(ctx, testOrder(order.StatusPending, ""))
		s.Require().NoError(err)
		s.True(inserted)
	}

	got, err := s.orders.List(ctx)
	s.Require().NoError(err)
	s.Len(got, 3)
}

func (s *RepositoryIntegrationTestSuite) TestCartItemCount() {
	ctx := context.Background()

	count, err := s.cart.ItemCount(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	_, err = s.pool.Exec(ctx,
		"INSERT INTO cart_items (product_id, name, price, quantity) VALUES ($1, $2, $3, $4), ($5, $6, $7, $8)",
		"froakie-holo", "Froakie Holo", 100, 2,
		"greninja-ex", "Greninja EX", 250, 1,
	)
	s.Require().NoError(err)

	count, err = s.cart.ItemCount(ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func testOrder(status order.Status, paymentID string) *order.Order {
	return &order.Order{
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Status:    status,
		Items: []order.Item{
			{Name: "Froakie Holo", Price: decimal.NewFromInt(100), Quantity: 2},
			{Name: "Sleeves", Price: decimal.NewFromInt(50), Quantity: 1},
		},
		Customer: order.Customer{
			Name:           "Misty Kasumi",
			Phone:          "+91 98765 43210",
			Email:          "misty@example.com",
			PaymentID:      paymentID,
			PaymentMethod:  "razorpay",
			DeliveryType:   order.DeliveryRegular,
			DeliveryCharge: decimal.NewFromInt(40),
			Address: order.Address{
				Line1:   "12 Cerulean Street",
				City:    "Mumbai",
				State:   "Maharashtra",
				Pincode: "400001",
			},
		},
		Total: decimal.NewFromInt(335),
	}
}
