package view

import (
	"github.com/xenking/storefront-admin/internal/domain/order"
)

// Summary is the computed price breakdown shown on the detail view and the
// receipt. Total is the order's stored grand total rendered as-is; it is not
// reconciled against Subtotal+Tax+DeliveryCharge.
type Summary struct {
	Subtotal       string `json:"subtotal"`
	Tax            string `json:"tax"`
	TaxLabel       string `json:"tax_label"`
	DeliveryLabel  string `json:"delivery_label"`
	DeliveryCharge string `json:"delivery_charge"`
	Total          string `json:"total"`
}

// Detail is the expanded view-model backing the order modal.
type Detail struct {
	ID          int64        `json:"id"`
	Date        string       `json:"date"`
	Status      order.Status `json:"status"`
	StatusLabel string       `json:"status_label"`

	PaymentID     string `json:"payment_id"`
	PaymentMethod string `json:"payment_method"`

	CustomerName string   `json:"customer_name"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	AddressLines []string `json:"address_lines"`

	Items   []ItemLine `json:"items"`
	Summary Summary    `json:"summary"`
}

// NewDetail builds the expanded view-model from a service detail result.
func NewDetail(d order.Detail) Detail {
	o := d.Order
	return Detail{
		ID:          o.ID,
		Date:        formatDate(o.CreatedAt, detailDateLayout),
		Status:      o.Status,
		StatusLabel: o.Status.Label(),

		PaymentID:     o.Customer.PaymentID,
		PaymentMethod: o.Customer.PaymentMethod,

		CustomerName: o.Customer.Name,
		Phone:        o.Customer.Phone,
		Email:        o.Customer.Email,
		AddressLines: AddressLines(o.Customer.Address),

		Items:   itemLines(o.Items),
		Summary: newSummary(d),
	}
}

func newSummary(d order.Detail) Summary {
	return Summary{
		Subtotal:       Money(d.Subtotal),
		Tax:            Money(d.Tax),
		TaxLabel:       "Tax (18% GST)",
		DeliveryLabel:  deliveryLabel(d.Order.Customer.DeliveryType),
		DeliveryCharge: Money(d.Order.Customer.DeliveryCharge),
		Total:          Money(d.Order.Total),
	}
}
