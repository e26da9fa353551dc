package view

import (
	"fmt"

	"github.com/xenking/storefront-admin/internal/domain/order"
)

// Action is the single next-status control an order card exposes.
type Action struct {
	// Target is the status the action transitions to.
	Target order.Status `json:"target"`
	// Label is the button text, e.g. "Mark as Packed".
	Label string `json:"label"`
}

// ItemLine is one rendered order line with its computed line total.
type ItemLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	LineTotal string `json:"line_total"`
}

// Card is the summary view-model for one order in the admin grid.
type Card struct {
	ID          int64       `json:"id"`
	Date        string      `json:"date"`
	Status      order.Status `json:"status"`
	StatusLabel string      `json:"status_label"`

	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	PaymentID    string `json:"payment_id"`

	AddressLines []string `json:"address_lines"`

	ItemCount int        `json:"item_count"`
	Items     []ItemLine `json:"items"`

	DeliveryLabel  string `json:"delivery_label"`
	DeliveryCharge string `json:"delivery_charge"`
	Total          string `json:"total"`

	// Action is the single allowed next-status control, nil for delivered.
	Action *Action `json:"action,omitempty"`
	// Completed marks a delivered order in place of an action.
	Completed bool `json:"completed"`
}

// NewCard builds the summary view-model for an order.
func NewCard(o order.Order) Card {
	c := Card{
		ID:          o.ID,
		Date:        formatDate(o.CreatedAt, cardDateLayout),
		Status:      o.Status,
		StatusLabel: o.Status.Label(),

		CustomerName: o.Customer.Name,
		Phone:        o.Customer.Phone,
		Email:        o.Customer.Email,
		PaymentID:    o.Customer.PaymentID,

		AddressLines: AddressLines(o.Customer.Address),

		ItemCount: order.ItemCount(o.Items),
		Items:     itemLines(o.Items),

		DeliveryLabel:  deliveryLabel(o.Customer.DeliveryType),
		DeliveryCharge: Money(o.Customer.DeliveryCharge),
		Total:          Money(o.Total),
	}

	if to, ok := o.Status.Next(); ok {
		c.Action = &Action{
			Target: to,
			Label:  fmt.Sprintf("Mark as %s", to.Label()),
		}
	} else {
		c.Completed = true
	}

	return c
}

// NewCards builds cards for a slice of orders, preserving their order.
func NewCards(orders []order.Order) []Card {
	cards := make([]Card, len(orders))
	for i, o := range orders {
		cards[i] = NewCard(o)
	}
	return cards
}

func itemLines(items []order.Item) []ItemLine {
	lines := make([]ItemLine, len(items))
	for i, it := range items {
		lines[i] = ItemLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     Money(it.Price),
			LineTotal: Money(it.LineTotal()),
		}
	}
	return lines
}

// EmptyState returns the message shown in place of the order grid, or ""
// when there is something to show. An empty store and an empty filter result
// read differently.
func EmptyState(l order.Listing) string {
	switch {
	case l.Total == 0:
		return "No orders yet"
	case len(l.Orders) == 0:
		return "No orders with this status"
	default:
		return ""
	}
}
