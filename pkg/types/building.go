package types

// Property type values for Building.PropertyType.
const (
	PropertyCommercial  = "COMMERCIAL"
	PropertyResidential = "RESIDENTIAL"
	PropertyMixed       = "MIXED"
	PropertyIndustrial  = "INDUSTRIAL"
)

// validPropertyTypes is the set of recognized property type values.
var validPropertyTypes = map[string]bool{
	PropertyCommercial:  true,
	PropertyResidential: true,
	PropertyMixed:       true,
	PropertyIndustrial:  true,
}

// Building represents a rental building belonging to exactly one owner.
// Tenants and expenses may reference a building; those references are
// nullified when the building is deleted.
type Building struct {
	ID           int64
	Name         string // required
	Address      string
	PropertyType string // one of the Property* constants
	Notes        string
	OwnerID      int64 // required, must reference an existing owner
}

// Validate checks required fields and the property type enum.
func (b *Building) Validate() error {
	if b.Name == "" || b.OwnerID <= 0 {
		return ErrInvalidData
	}
	if b.PropertyType != "" && !validPropertyTypes[b.PropertyType] {
		return ErrInvalidData
	}
	return nil
}
