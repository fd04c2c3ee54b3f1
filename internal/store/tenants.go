// Tenant table operations. A tenant may be attached to one building;
// deleting a tenant cascades to its payments.
package store

import (
	"database/sql"
	"fmt"

	"github.com/rentledger/rentledger/pkg/types"
)

const tenantColumns = "tenant_id, name, email, mobile, mobile2, family_members, building_id, " +
	"start_date, rent_increase_date, rent, security_deposit, checkout_date, is_checked_out, notes"

// InsertTenant inserts a new tenant and returns its assigned id.
func (s *Store) InsertTenant(t *types.Tenant) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(
		`INSERT INTO tenants (name, email, mobile, mobile2, family_members, building_id,
		    start_date, rent_increase_date, rent, security_deposit, checkout_date, is_checked_out, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, dbString(t.Email), t.Mobile, dbString(t.Mobile2), t.FamilyMembers, dbID(t.BuildingID),
		dbTime(t.StartDate), dbTime(t.RentIncreaseDate), t.Rent, t.SecurityDeposit,
		dbTime(t.CheckoutDate), t.IsCheckedOut, dbString(t.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting tenant: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading tenant id: %w", err)
	}
	t.ID = id
	return id, nil
}

// UpdateTenant replaces all fields of an existing tenant.
func (s *Store) UpdateTenant(t *types.Tenant) error {
	if t.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := t.Validate(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		`UPDATE tenants SET name = ?, email = ?, mobile = ?, mobile2 = ?, family_members = ?,
		    building_id = ?, start_date = ?, rent_increase_date = ?, rent = ?, security_deposit = ?,
		    checkout_date = ?, is_checked_out = ?, notes = ?
		 WHERE tenant_id = ?`,
		t.Name, dbString(t.Email), t.Mobile, dbString(t.Mobile2), t.FamilyMembers, dbID(t.BuildingID),
		dbTime(t.StartDate), dbTime(t.RentIncreaseDate), t.Rent, t.SecurityDeposit,
		dbTime(t.CheckoutDate), t.IsCheckedOut, dbString(t.Notes), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tenant %d: %w", t.ID, err)
	}
	return requireRow(res)
}

// DeleteTenant removes a tenant and all of its payments.
func (s *Store) DeleteTenant(id int64) error {
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

	if _, err := tx.Exec("DELETE FROM payments WHERE tenant_id = ?", id); err != nil {
		return fmt.Errorf("deleting payments: %w", err)
	}

	res, err := tx.Exec("DELETE FROM tenants WHERE tenant_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tenant %d: %w", id, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// GetTenant returns the tenant with the given id.
func (s *Store) GetTenant(id int64) (*types.Tenant, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+tenantColumns+" FROM tenants WHERE tenant_id = ?", id)
	t, err := scanTenant(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting tenant %d: %w", id, err)
	}
	return t, nil
}

// ListTenants returns all tenants ordered by id.
func (s *Store) ListTenants() ([]*types.Tenant, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + tenantColumns + " FROM tenants ORDER BY tenant_id")
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*types.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenants: %w", err)
	}
	return tenants, nil
}

// scanTenant hydrates one tenant row via the given scan function.
func scanTenant(scan func(...any) error) (*types.Tenant, error) {
	var t types.Tenant
	var email, mobile2, notes sql.NullString
	var familyMembers, buildingID sql.NullInt64
	var rent, securityDeposit sql.NullFloat64
	var startDate, rentIncreaseDate, checkoutDate sql.NullString

	if err := scan(&t.ID, &t.Name, &email, &t.Mobile, &mobile2, &familyMembers, &buildingID,
		&startDate, &rentIncreaseDate, &rent, &securityDeposit, &checkoutDate,
		&t.IsCheckedOut, &notes); err != nil {
		return nil, err
	}

	t.Email = email.String
	t.Mobile2 = mobile2.String
	t.Notes = notes.String
	t.FamilyMembers = familyMembers.Int64
	t.BuildingID = buildingID.Int64
	t.Rent = rent.Float64
	t.SecurityDeposit = securityDeposit.Float64

	var err error
	if t.StartDate, err = scanTime(startDate); err != nil {
		return nil, err
	}
	if t.RentIncreaseDate, err = scanTime(rentIncreaseDate); err != nil {
		return nil, err
	}
	if t.CheckoutDate, err = scanTime(checkoutDate); err != nil {
		return nil, err
	}
	return &t, nil
}
