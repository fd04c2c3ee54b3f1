package types

import "time"

// EntityKind identifies which entity table a document is attached to.
// The set is closed; id remapping during legacy import switches on it
// exhaustively.
type EntityKind string

// Referenceable entity kinds for Document.EntityType.
const (
	KindOwner    EntityKind = "OWNER"
	KindBuilding EntityKind = "BUILDING"
	KindTenant   EntityKind = "TENANT"
	KindPayment  EntityKind = "PAYMENT"
	KindExpense  EntityKind = "EXPENSE"
)

// EntityKinds lists all referenceable kinds for enumeration.
var EntityKinds = []EntityKind{
	KindOwner,
	KindBuilding,
	KindTenant,
	KindPayment,
	KindExpense,
}

// ParseEntityKind converts a stored name into an EntityKind.
// Returns ErrInvalidData for unrecognized names.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case KindOwner, KindBuilding, KindTenant, KindPayment, KindExpense:
		return EntityKind(s), nil
	}
	return "", ErrInvalidData
}

// Document represents an uploaded file attached to an entity via the
// (EntityType, EntityID) pair. FilePath is relative to the blob store
// root. The reference is not a foreign key; a document may outlive its
// referent.
type Document struct {
	ID           int64
	DocumentName string // required
	DocumentType string
	FilePath     string // required, relative path into the blob store
	EntityType   EntityKind
	EntityID     int64
	UploadDate   time.Time
	FileSize     int64
	MimeType     string
	Notes        string
}

// Validate checks required fields and the entity kind enum.
func (d *Document) Validate() error {
	if d.DocumentName == "" || d.FilePath == "" {
		return ErrInvalidData
	}
	if _, err := ParseEntityKind(string(d.EntityType)); err != nil {
		return ErrInvalidData
	}
	return nil
}
