// Payment table operations. A payment belongs to exactly one tenant and
// is deleted with it.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rentledger/rentledger/pkg/types"
)

const paymentColumns = "payment_id, date, amount, payment_method, transaction_details, " +
	"payment_type, pending_amount, notes, tenant_id, rent_month"

// FirstOfMonth normalizes a time to midnight UTC on the first day of its
// month, the canonical value for Payment.RentMonth.
func FirstOfMonth(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// InsertPayment inserts a new payment and returns its assigned id. The
// tenant must already exist and RentMonth is normalized to the first of
// its month.
func (s *Store) InsertPayment(p *types.Payment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	if err := rowExists(db, "tenants", "tenant_id", p.TenantID); err != nil {
		return 0, err
	}

	p.RentMonth = FirstOfMonth(p.RentMonth)
	res, err := db.Exec(
		`INSERT INTO payments (date, amount, payment_method, transaction_details, payment_type,
		    pending_amount, notes, tenant_id, rent_month)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dbTime(p.Date), p.Amount, dbString(p.PaymentMethod), dbString(p.TransactionDetails),
		p.PaymentType, p.PendingAmount, dbString(p.Notes), p.TenantID, dbTime(p.RentMonth),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading payment id: %w", err)
	}
	p.ID = id
	return id, nil
}

// UpdatePayment replaces all fields of an existing payment.
func (s *Store) UpdatePayment(p *types.Payment) error {
	if p.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := p.Validate(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	p.RentMonth = FirstOfMonth(p.RentMonth)
	res, err := db.Exec(
		`UPDATE payments SET date = ?, amount = ?, payment_method = ?, transaction_details = ?,
		    payment_type = ?, pending_amount = ?, notes = ?, tenant_id = ?, rent_month = ?
		 WHERE payment_id = ?`,
		dbTime(p.Date), p.Amount, dbString(p.PaymentMethod), dbString(p.TransactionDetails),
		p.PaymentType, p.PendingAmount, dbString(p.Notes), p.TenantID, dbTime(p.RentMonth), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating payment %d: %w", p.ID, err)
	}
	return requireRow(res)
}

// DeletePayment removes a payment.
func (s *Store) DeletePayment(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM payments WHERE payment_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting payment %d: %w", id, err)
	}
	return requireRow(res)
}

// GetPayment returns the payment with the given id.
func (s *Store) GetPayment(id int64) (*types.Payment, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+paymentColumns+" FROM payments WHERE payment_id = ?", id)
	p, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting payment %d: %w", id, err)
	}
	return p, nil
}

// ListPayments returns all payments ordered by id.
func (s *Store) ListPayments() ([]*types.Payment, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + paymentColumns + " FROM payments ORDER BY payment_id")
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	payments := []*types.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}
	return payments, nil
}

// scanPayment hydrates one payment row via the given scan function.
func scanPayment(scan func(...any) error) (*types.Payment, error) {
	var p types.Payment
	var method, details, notes sql.NullString
	var pending sql.NullFloat64
	var date, rentMonth sql.NullString

	if err := scan(&p.ID, &date, &p.Amount, &method, &details, &p.PaymentType,
		&pending, &notes, &p.TenantID, &rentMonth); err != nil {
		return nil, err
	}

	p.PaymentMethod = method.String
	p.TransactionDetails = details.String
	p.Notes = notes.String
	p.PendingAmount = pending.Float64

	var err error
	if p.Date, err = scanTime(date); err != nil {
		return nil, err
	}
	if p.RentMonth, err = scanTime(rentMonth); err != nil {
		return nil, err
	}
	return &p, nil
}
