// Owner table operations. Deleting an owner cascades to its buildings;
// the buildings' dependents are nullified per the building policy.
package store

import (
	"database/sql"
	"fmt"

	"github.com/rentledger/rentledger/pkg/types"
)

// InsertOwner inserts a new owner and returns its assigned id.
func (s *Store) InsertOwner(o *types.Owner) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(
		"INSERT INTO owners (name, email, mobile, mobile2, address) VALUES (?, ?, ?, ?, ?)",
		o.Name, dbString(o.Email), o.Mobile, dbString(o.Mobile2), dbString(o.Address),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting owner: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading owner id: %w", err)
	}
	o.ID = id
	return id, nil
}

// UpdateOwner replaces all fields of an existing owner.
func (s *Store) UpdateOwner(o *types.Owner) error {
	if o.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := o.Validate(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		"UPDATE owners SET name = ?, email = ?, mobile = ?, mobile2 = ?, address = ? WHERE owner_id = ?",
		o.Name, dbString(o.Email), o.Mobile, dbString(o.Mobile2), dbString(o.Address), o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating owner %d: %w", o.ID, err)
	}
	return requireRow(res)
}

// DeleteOwner removes an owner and all of its buildings. Tenants and
// expenses pointing at those buildings are detached, and payments of
// those tenants' buildings remain attached to their tenants.
func (s *Store) DeleteOwner(id int64) error {
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

	// Detach dependents of the owner's buildings before the cascade.
	if _, err := tx.Exec(
		"UPDATE tenants SET building_id = NULL WHERE building_id IN (SELECT building_id FROM buildings WHERE owner_id = ?)",
		id,
	); err != nil {
		return fmt.Errorf("detaching tenants: %w", err)
	}
	if _, err := tx.Exec(
		"UPDATE expenses SET building_id = NULL WHERE building_id IN (SELECT building_id FROM buildings WHERE owner_id = ?)",
		id,
	); err != nil {
		return fmt.Errorf("detaching expenses: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM buildings WHERE owner_id = ?", id); err != nil {
		return fmt.Errorf("deleting buildings: %w", err)
	}

	res, err := tx.Exec("DELETE FROM owners WHERE owner_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting owner %d: %w", id, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// GetOwner returns the owner with the given id.
func (s *Store) GetOwner(id int64) (*types.Owner, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT owner_id, name, email, mobile, mobile2, address FROM owners WHERE owner_id = ?",
		id,
	)
	o, err := scanOwner(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting owner %d: %w", id, err)
	}
	return o, nil
}

// ListOwners returns all owners ordered by id.
func (s *Store) ListOwners() ([]*types.Owner, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT owner_id, name, email, mobile, mobile2, address FROM owners ORDER BY owner_id")
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	defer rows.Close()

	owners := []*types.Owner{}
	for rows.Next() {
		o, err := scanOwner(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}
	return owners, nil
}

// scanOwner hydrates one owner row via the given scan function.
func scanOwner(scan func(...any) error) (*types.Owner, error) {
	var o types.Owner
	var email, mobile2, address sql.NullString
	if err := scan(&o.ID, &o.Name, &email, &o.Mobile, &mobile2, &address); err != nil {
		return nil, err
	}
	o.Email = email.String
	o.Mobile2 = mobile2.String
	o.Address = address.String
	return &o, nil
}

// requireRow converts a zero-row result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
