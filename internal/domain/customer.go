package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Customer struct {
	Name         string
	CustomerName string
	CreatedAt    time.Time
}

func (c *Customer) Validate() error {
	return wrapValidation(DoctypeCustomer, validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 140)),
		validation.Field(&c.CustomerName, validation.Length(0, 140)),
	))
}

// DisplayName prefers the human name over the document name.
func (c *Customer) DisplayName() string {
	if c.CustomerName != "" {
		return c.CustomerName
	}
	return c.Name
}
