// Expense table operations. Vendor and building links are independently
// optional.
package store

import (
	"database/sql"
	"fmt"

	"github.com/rentledger/rentledger/pkg/types"
)

const expenseColumns = "expense_id, description, amount, date, category, vendor_id, " +
	"building_id, payment_method, notes, receipt_path"

// InsertExpense inserts a new expense and returns its assigned id.
func (s *Store) InsertExpense(e *types.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(
		`INSERT INTO expenses (description, amount, date, category, vendor_id, building_id,
		    payment_method, notes, receipt_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Description, e.Amount, dbTime(e.Date), dbString(e.Category), dbID(e.VendorID),
		dbID(e.BuildingID), dbString(e.PaymentMethod), dbString(e.Notes), dbString(e.ReceiptPath),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading expense id: %w", err)
	}
	e.ID = id
	return id, nil
}

// UpdateExpense replaces all fields of an existing expense.
func (s *Store) UpdateExpense(e *types.Expense) error {
	if e.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := e.Validate(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		`UPDATE expenses SET description = ?, amount = ?, date = ?, category = ?, vendor_id = ?,
		    building_id = ?, payment_method = ?, notes = ?, receipt_path = ?
		 WHERE expense_id = ?`,
		e.Description, e.Amount, dbTime(e.Date), dbString(e.Category), dbID(e.VendorID),
		dbID(e.BuildingID), dbString(e.PaymentMethod), dbString(e.Notes), dbString(e.ReceiptPath), e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating expense %d: %w", e.ID, err)
	}
	return requireRow(res)
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM expenses WHERE expense_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting expense %d: %w", id, err)
	}
	return requireRow(res)
}

// GetExpense returns the expense with the given id.
func (s *Store) GetExpense(id int64) (*types.Expense, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+expenseColumns+" FROM expenses WHERE expense_id = ?", id)
	e, err := scanExpense(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting expense %d: %w", id, err)
	}
	return e, nil
}

// ListExpenses returns all expenses ordered by id.
func (s *Store) ListExpenses() ([]*types.Expense, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + expenseColumns + " FROM expenses ORDER BY expense_id")
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*types.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}
	return expenses, nil
}

// scanExpense hydrates one expense row via the given scan function.
func scanExpense(scan func(...any) error) (*types.Expense, error) {
	var e types.Expense
	var category, method, notes, receipt sql.NullString
	var vendorID, buildingID sql.NullInt64
	var date sql.NullString

	if err := scan(&e.ID, &e.Description, &e.Amount, &date, &category, &vendorID,
		&buildingID, &method, &notes, &receipt); err != nil {
		return nil, err
	}

	e.Category = category.String
	e.PaymentMethod = method.String
	e.Notes = notes.String
	e.ReceiptPath = receipt.String
	e.VendorID = vendorID.Int64
	e.BuildingID = buildingID.Int64

	var err error
	if e.Date, err = scanTime(date); err != nil {
		return nil, err
	}
	return &e, nil
}
