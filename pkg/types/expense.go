package types

import "time"

// Expense category values for Expense.Category.
const (
	ExpenseMaintenance = "MAINTENANCE"
	ExpenseUtilities   = "UTILITIES"
	ExpenseTaxes       = "TAXES"
	ExpenseInsurance   = "INSURANCE"
	ExpenseRepairs     = "REPAIRS"
	ExpenseOther       = "OTHER"
)

// validExpenseCategories is the set of recognized expense categories.
var validExpenseCategories = map[string]bool{
	ExpenseMaintenance: true,
	ExpenseUtilities:   true,
	ExpenseTaxes:       true,
	ExpenseInsurance:   true,
	ExpenseRepairs:     true,
	ExpenseOther:       true,
}

// Expense represents money spent on a property. Vendor and building links
// are independently optional (0 means unlinked) and are nullified when
// the referent is deleted.
type Expense struct {
	ID            int64
	Description   string // required
	Amount        float64
	Date          time.Time
	Category      string // one of the Expense* constants
	VendorID      int64  // 0 means no vendor
	BuildingID    int64  // 0 means no building
	PaymentMethod string
	Notes         string
	ReceiptPath   string
}

// Validate checks required fields and the category enum.
func (e *Expense) Validate() error {
	if e.Description == "" {
		return ErrInvalidData
	}
	if e.Category != "" && !validExpenseCategories[e.Category] {
		return ErrInvalidData
	}
	return nil
}
