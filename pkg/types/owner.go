package types

// Owner represents a property owner. An owner has one or more buildings;
// deleting an owner cascades to its buildings.
type Owner struct {
	ID      int64  // assigned by the store on insert; 0 means not persisted
	Name    string // required
	Email   string
	Mobile  string // required
	Mobile2 string
	Address string
}

// Validate checks required fields.
func (o *Owner) Validate() error {
	if o.Name == "" || o.Mobile == "" {
		return ErrInvalidData
	}
	return nil
}
