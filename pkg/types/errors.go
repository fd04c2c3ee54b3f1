package types

import "errors"

// Standard errors returned by the entity store and the backup subsystem.
var (
	// ErrNotFound is returned when an entity id does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidID is returned when an operation receives a zero or
	// negative entity id.
	ErrInvalidID = errors.New("invalid entity id")

	// ErrInvalidData is returned when required fields are missing or an
	// enum value is not recognized.
	ErrInvalidData = errors.New("invalid entity data")

	// ErrStoreClosed is returned by store operations after Close.
	ErrStoreClosed = errors.New("store is closed")

	// ErrUnsupportedVersion is returned when a legacy export declares a
	// format version the codec does not understand.
	ErrUnsupportedVersion = errors.New("unsupported export format version")

	// ErrInvalidSource is returned when an import source reference is
	// empty or unreadable.
	ErrInvalidSource = errors.New("invalid import source")
)
