// Building table operations. A building belongs to exactly one owner;
// deleting a building detaches its tenants and expenses.
package store

import (
	"database/sql"
	"fmt"

	"github.com/rentledger/rentledger/pkg/types"
)

// InsertBuilding inserts a new building and returns its assigned id.
// The owner must already exist.
func (s *Store) InsertBuilding(b *types.Building) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	if err := rowExists(db, "owners", "owner_id", b.OwnerID); err != nil {
		return 0, err
	}

	res, err := db.Exec(
		"INSERT INTO buildings (name, address, property_type, notes, owner_id) VALUES (?, ?, ?, ?, ?)",
		b.Name, dbString(b.Address), dbString(b.PropertyType), dbString(b.Notes), b.OwnerID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting building: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading building id: %w", err)
	}
	b.ID = id
	return id, nil
}

// UpdateBuilding replaces all fields of an existing building.
func (s *Store) UpdateBuilding(b *types.Building) error {
	if b.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := b.Validate(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	if err := rowExists(db, "owners", "owner_id", b.OwnerID); err != nil {
		return err
	}

	res, err := db.Exec(
		"UPDATE buildings SET name = ?, address = ?, property_type = ?, notes = ?, owner_id = ? WHERE building_id = ?",
		b.Name, dbString(b.Address), dbString(b.PropertyType), dbString(b.Notes), b.OwnerID, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating building %d: %w", b.ID, err)
	}
	return requireRow(res)
}

// DeleteBuilding removes a building. Tenants and expenses referencing it
// are detached, not deleted.
func (s *Store) DeleteBuilding(id int64) error {
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

	if _, err := tx.Exec("UPDATE tenants SET building_id = NULL WHERE building_id = ?", id); err != nil {
		return fmt.Errorf("detaching tenants: %w", err)
	}
	if _, err := tx.Exec("UPDATE expenses SET building_id = NULL WHERE building_id = ?", id); err != nil {
		return fmt.Errorf("detaching expenses: %w", err)
	}

	res, err := tx.Exec("DELETE FROM buildings WHERE building_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting building %d: %w", id, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// GetBuilding returns the building with the given id.
func (s *Store) GetBuilding(id int64) (*types.Building, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT building_id, name, address, property_type, notes, owner_id FROM buildings WHERE building_id = ?",
		id,
	)
	b, err := scanBuilding(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting building %d: %w", id, err)
	}
	return b, nil
}

// ListBuildings returns all buildings ordered by id.
func (s *Store) ListBuildings() ([]*types.Building, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT building_id, name, address, property_type, notes, owner_id FROM buildings ORDER BY building_id")
	if err != nil {
		return nil, fmt.Errorf("listing buildings: %w", err)
	}
	defer rows.Close()

	buildings := []*types.Building{}
	for rows.Next() {
		b, err := scanBuilding(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning building: %w", err)
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buildings: %w", err)
	}
	return buildings, nil
}

// scanBuilding hydrates one building row via the given scan function.
func scanBuilding(scan func(...any) error) (*types.Building, error) {
	var b types.Building
	var address, propertyType, notes sql.NullString
	if err := scan(&b.ID, &b.Name, &address, &propertyType, &notes, &b.OwnerID); err != nil {
		return nil, err
	}
	b.Address = address.String
	b.PropertyType = propertyType.String
	b.Notes = notes.String
	return &b, nil
}

// rowExists verifies a referenced row is present, returning ErrNotFound
// when it is not.
func rowExists(db *sql.DB, table, column string, id int64) error {
	var one int
	err := db.QueryRow("SELECT 1 FROM "+table+" WHERE "+column+" = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking %s existence: %w", table, err)
	}
	return nil
}
