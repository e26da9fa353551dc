// Package view builds display-ready view-models from order records. All
// builders are pure functions over domain values; the HTTP layer and the
// receipt template consume their output without further computation.
package view

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-admin/internal/domain/order"
)

// Currency glyph prefixed to every money value.
const rupee = "₹"

// Date layouts used across the admin screens. Cards use the short month,
// the detail view spells it out, and receipts use the plain locale form.
const (
	cardDateLayout    = "02 Jan 2006, 15:04"
	detailDateLayout  = "02 January 2006, 15:04"
	receiptDateLayout = "02/01/2006, 15:04:05"
)

// Money renders a decimal as the currency glyph plus exactly two decimals.
func Money(d decimal.Decimal) string {
	return rupee + d.StringFixed(2)
}

// deliveryLabel maps the delivery type to its display name.
func deliveryLabel(t order.DeliveryType) string {
	if t == order.DeliveryPremium {
		return "Premium Delivery"
	}
	return "Regular Delivery"
}

// AddressLines renders a shipping address as display lines, omitting the
// optional second line and landmark when absent.
func AddressLines(a order.Address) []string {
	lines := make([]string, 0, 4)
	lines = append(lines, a.Line1)
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	if a.Landmark != "" {
		lines = append(lines, "Near "+a.Landmark)
	}
	lines = append(lines, fmt.Sprintf("%s, %s - %s", a.City, a.State, a.Pincode))
	return lines
}

func formatDate(t time.Time, layout string) string {
	return t.Format(layout)
}
