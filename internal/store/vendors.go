// Vendor table operations. Expenses referencing a deleted vendor are
// detached, not deleted.
package store

import (
	"database/sql"
	"fmt"

	"github.com/rentledger/rentledger/pkg/types"
)

// InsertVendor inserts a new vendor and returns its assigned id.
func (s *Store) InsertVendor(v *types.Vendor) (int64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(
		"INSERT INTO vendors (name, category, phone, email, address, notes) VALUES (?, ?, ?, ?, ?, ?)",
		v.Name, dbString(v.Category), dbString(v.Phone), dbString(v.Email), dbString(v.Address), dbString(v.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting vendor: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading vendor id: %w", err)
	}
	v.ID = id
	return id, nil
}

// UpdateVendor replaces all fields of an existing vendor.
func (s *Store) UpdateVendor(v *types.Vendor) error {
	if v.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := v.Validate(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		"UPDATE vendors SET name = ?, category = ?, phone = ?, email = ?, address = ?, notes = ? WHERE vendor_id = ?",
		v.Name, dbString(v.Category), dbString(v.Phone), dbString(v.Email), dbString(v.Address), dbString(v.Notes), v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vendor %d: %w", v.ID, err)
	}
	return requireRow(res)
}

// DeleteVendor removes a vendor and detaches its expenses.
func (s *Store) DeleteVendor(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE expenses SET vendor_id = NULL WHERE vendor_id = ?", id); err != nil {
		return fmt.Errorf("detaching expenses: %w", err)
	}

	res, err := tx.Exec("DELETE FROM vendors WHERE vendor_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting vendor %d: %w", id, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// GetVendor returns the vendor with the given id.
func (s *Store) GetVendor(id int64) (*types.Vendor, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT vendor_id, name, category, phone, email, address, notes FROM vendors WHERE vendor_id = ?",
		id,
	)
	v, err := scanVendor(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting vendor %d: %w", id, err)
	}
	return v, nil
}

// ListVendors returns all vendors ordered by id.
func (s *Store) ListVendors() ([]*types.Vendor, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT vendor_id, name, category, phone, email, address, notes FROM vendors ORDER BY vendor_id")
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	vendors := []*types.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vendors: %w", err)
	}
	return vendors, nil
}

// scanVendor hydrates one vendor row via the given scan function.
func scanVendor(scan func(...any) error) (*types.Vendor, error) {
	var v types.Vendor
	var category, phone, email, address, notes sql.NullString
	if err := scan(&v.ID, &v.Name, &category, &phone, &email, &address, &notes); err != nil {
		return nil, err
	}
	v.Category = category.String
	v.Phone = phone.String
	v.Email = email.String
	v.Address = address.String
	v.Notes = notes.String
	return &v, nil
}
