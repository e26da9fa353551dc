package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// TaxRate is the fixed GST rate applied to the items subtotal.
var TaxRate = decimal.NewFromFloat(0.18)

// DeliveryType enumerates the supported delivery tiers.
type DeliveryType string

const (
	DeliveryRegular DeliveryType = "regular"
	DeliveryPremium DeliveryType = "premium"
)

// Order is a customer purchase record. Items, customer data and the grand
// total are written once at checkout; only Status changes afterwards.
type Order struct {
	ID        int64
	CreatedAt time.Time
	Status    Status
	Items     []Item
	Customer  Customer

	// Total is the grand total stored at checkout. It is displayed as-is and
	// never recomputed from the items; it may include rounding or discounts
	// the item lines do not reflect.
	Total decimal.Decimal
}

// Item is a single order line.
type Item struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price multiplied by quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Customer holds contact, payment and shipping data captured at checkout.
type Customer struct {
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	PaymentID      string          `json:"payment_id"`
	PaymentMethod  string          `json:"payment_method"`
	DeliveryType   DeliveryType    `json:"delivery_type"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Address        Address         `json:"address"`
}

// Address is a shipping address. Line2 and Landmark are optional.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Landmark string `json:"landmark,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// Subtotal returns the sum of line totals over the given items.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Tax returns the GST amount for the given subtotal.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

// ItemCount returns the total number of units across all lines.
func ItemCount(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Repository defines persistence operations for orders.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}
