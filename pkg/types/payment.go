package types

import "time"

// Payment type values for Payment.PaymentType.
const (
	PaymentFull    = "FULL"
	PaymentPartial = "PARTIAL"
)

// validPaymentTypes is the set of recognized payment type values.
var validPaymentTypes = map[string]bool{
	PaymentFull:    true,
	PaymentPartial: true,
}

// Payment represents a rent payment made by a tenant for a given month.
// RentMonth is normalized to the first day of the month.
type Payment struct {
	ID                 int64
	Date               time.Time
	Amount             float64
	PaymentMethod      string // free-text label from the settings list
	TransactionDetails string
	PaymentType        string // FULL or PARTIAL
	PendingAmount      float64
	Notes              string
	TenantID           int64 // required
	RentMonth          time.Time
}

// IsPending reports whether the payment still has an outstanding balance.
// A payment is pending iff it is PARTIAL and its pending amount is
// positive; FULL payments are never pending regardless of PendingAmount.
func (p *Payment) IsPending() bool {
	return p.PaymentType == PaymentPartial && p.PendingAmount > 0
}

// Validate checks required fields and the payment type enum.
func (p *Payment) Validate() error {
	if p.TenantID <= 0 {
		return ErrInvalidData
	}
	if !validPaymentTypes[p.PaymentType] {
		return ErrInvalidData
	}
	return nil
}
