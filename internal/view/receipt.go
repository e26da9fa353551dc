package view

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/go-faster/errors"

	"github.com/xenking/storefront-admin/internal/domain/order"
)

//go:embed templates/receipt.html
var receiptHTML string

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptHTML))

// Receipt is the view-model for the printable order receipt. It carries the
// same computed summary as the detail view but no action controls.
type Receipt struct {
	StoreName string

	ID        int64
	Date      string
	PaymentID string

	CustomerName string
	Phone        string
	Email        string
	AddressLines []string

	Items   []ItemLine
	Summary Summary
}

// NewReceipt builds the printable view-model for an order.
func NewReceipt(d order.Detail, storeName string) Receipt {
	o := d.Order
	return Receipt{
		StoreName: storeName,

		ID:        o.ID,
		Date:      formatDate(o.CreatedAt, receiptDateLayout),
		PaymentID: o.Customer.PaymentID,

		CustomerName: o.Customer.Name,
		Phone:        o.Customer.Phone,
		Email:        o.Customer.Email,
		AddressLines: AddressLines(o.Customer.Address),

		Items:   itemLines(o.Items),
		Summary: newSummary(d),
	}
}

// RenderReceipt writes the receipt as a standalone printable HTML document.
func RenderReceipt(w io.Writer, r Receipt) error {
	if err := receiptTmpl.Execute(w, r); err != nil {
		return errors.Wrap(err, "execute receipt template")
	}
	return nil
}
