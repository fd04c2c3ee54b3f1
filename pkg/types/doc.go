// Package types defines the entity types, enumerations, and standard
// errors shared across the RentLedger storage and backup subsystems.
package types
