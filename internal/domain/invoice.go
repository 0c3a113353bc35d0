package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SalesInvoice struct {
	Name        string
	Customer    string
	Project     string
	DocStatus   DocStatus
	PostingDate time.Time
	DueDate     time.Time
	Items       []SalesInvoiceItem
	GrandTotal  float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SalesInvoiceItem struct {
	Idx      int
	ItemCode string
	Qty      float64
	Rate     float64
	Amount   float64
}

func (inv *SalesInvoice) Validate() error {
	return wrapValidation(DoctypeSalesInvoice, validation.ValidateStruct(inv,
		validation.Field(&inv.Customer, validation.Required),
		validation.Field(&inv.Items, validation.Required, validation.Each(validation.By(validateInvoiceItem))),
	))
}

func validateInvoiceItem(value interface{}) error {
	item, ok := value.(SalesInvoiceItem)
	if !ok {
		return nil
	}
	return validation.ValidateStruct(&item,
		validation.Field(&item.ItemCode, validation.Required),
		validation.Field(&item.Qty, validation.Min(0.0)),
		validation.Field(&item.Rate, validation.Min(0.0)),
	)
}

// CalculateTotals fills line amounts and the grand total.
func (inv *SalesInvoice) CalculateTotals() {
	var total float64
	for i := range inv.Items {
		inv.Items[i].Idx = i + 1
		inv.Items[i].Amount = inv.Items[i].Qty * inv.Items[i].Rate
		total += inv.Items[i].Amount
	}
	inv.GrandTotal = total
}
