package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const PartyTypeCustomer = "Customer"

// LedgerEntry is a receivable posting against a party.
type LedgerEntry struct {
	Name        string
	PartyType   string
	Party       string
	PostingDate time.Time
	Debit       float64
	Credit      float64
	VoucherType string
	VoucherNo   string
	CreatedAt   time.Time
}

func (e *LedgerEntry) Validate() error {
	return wrapValidation("Ledger Entry", validation.ValidateStruct(e,
		validation.Field(&e.PartyType, validation.Required),
		validation.Field(&e.Party, validation.Required),
		validation.Field(&e.Debit, validation.Min(0.0)),
		validation.Field(&e.Credit, validation.Min(0.0)),
		validation.Field(&e.VoucherType, validation.Required),
		validation.Field(&e.VoucherNo, validation.Required),
	))
}

// Payment is money received from a customer.
type Payment struct {
	Name        string
	Customer    string
	Amount      float64
	PostingDate time.Time
	Reference   string
}

func (p *Payment) Validate() error {
	return wrapValidation(DoctypePayment, validation.ValidateStruct(p,
		validation.Field(&p.Customer, validation.Required),
		validation.Field(&p.Amount, validation.Required, validation.Min(0.01)),
	))
}
