package types

// Vendor category values for Vendor.Category.
const (
	VendorPlumbing    = "PLUMBING"
	VendorElectrical  = "ELECTRICAL"
	VendorCleaning    = "CLEANING"
	VendorMaintenance = "MAINTENANCE"
	VendorSecurity    = "SECURITY"
	VendorOther       = "OTHER"
)

// validVendorCategories is the set of recognized vendor categories.
var validVendorCategories = map[string]bool{
	VendorPlumbing:    true,
	VendorElectrical:  true,
	VendorCleaning:    true,
	VendorMaintenance: true,
	VendorSecurity:    true,
	VendorOther:       true,
}

// Vendor represents a service provider. Expenses may reference a vendor;
// the reference is nullified when the vendor is deleted.
type Vendor struct {
	ID       int64
	Name     string // required
	Category string // one of the Vendor* constants
	Phone    string
	Email    string
	Address  string
	Notes    string
}

// Validate checks required fields and the category enum.
func (v *Vendor) Validate() error {
	if v.Name == "" {
		return ErrInvalidData
	}
	if v.Category != "" && !validVendorCategories[v.Category] {
		return ErrInvalidData
	}
	return nil
}
