package types

import "time"

// Tenant represents a renter, optionally attached to a building. Payments
// belong to a tenant and are cascade-deleted with it. The checkout flag is
// toggled by the caller; it is not derived from CheckoutDate.
type Tenant struct {
	ID               int64
	Name             string // required
	Email            string
	Mobile           string // required
	Mobile2          string
	FamilyMembers    int64
	BuildingID       int64 // 0 means no building
	StartDate        time.Time
	RentIncreaseDate time.Time
	Rent             float64
	SecurityDeposit  float64
	CheckoutDate     time.Time
	IsCheckedOut     bool
	Notes            string
}

// Validate checks required fields.
func (t *Tenant) Validate() error {
	if t.Name == "" || t.Mobile == "" {
		return ErrInvalidData
	}
	return nil
}
