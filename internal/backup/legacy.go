// Legacy portable-format record structures. These mirror the v1 JSON
// export shape: one flat object per row, enums as their symbolic names,
// absent optional strings as JSON null, timestamps as epoch milliseconds.
package backup

import (
	"encoding/json"
	"strings"
	"time"
)

// LegacyVersion is the only legacy export format version this codec
// understands.
const LegacyVersion = 1

// legacyExport is the top-level v1 document. Entity arrays are kept raw
// so each row can be decoded, and fail, independently.
type legacyExport struct {
	Version    int               `json:"version"`
	ExportDate int64             `json:"exportDate"`
	Settings   *settingsJSON     `json:"settings"`
	Owners     []json.RawMessage `json:"owners"`
	Buildings  []json.RawMessage `json:"buildings"`
	Tenants    []json.RawMessage `json:"tenants"`
	Payments   []json.RawMessage `json:"payments"`
	Documents  []json.RawMessage `json:"documents"`
	Vendors    []json.RawMessage `json:"vendors,omitempty"`
	Expenses   []json.RawMessage `json:"expenses,omitempty"`
}

// settingsJSON is the settings object shared by the legacy export and
// the snapshot metadata. Payment methods are carried as one comma-joined
// string.
type settingsJSON struct {
	Currency       string `json:"currency"`
	AppLock        bool   `json:"appLock"`
	PaymentMethods string `json:"paymentMethods"`
}

type ownerJSON struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Mobile  string  `json:"mobile"`
	Mobile2 *string `json:"mobile2"`
	Address *string `json:"address"`
}

type buildingJSON struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      *string `json:"address"`
	PropertyType string  `json:"propertyType"`
	Notes        *string `json:"notes"`
	OwnerID      int64   `json:"ownerId"`
}

type tenantJSON struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Email            *string `json:"email"`
	Mobile           string  `json:"mobile"`
	Mobile2          *string `json:"mobile2"`
	FamilyMembers    int64   `json:"familyMembers"`
	BuildingID       *int64  `json:"buildingId"`
	StartDate        *int64  `json:"startDate"`
	RentIncreaseDate *int64  `json:"rentIncreaseDate"`
	Rent             float64 `json:"rent"`
	SecurityDeposit  float64 `json:"securityDeposit"`
	CheckoutDate     *int64  `json:"checkoutDate"`
	IsCheckedOut     bool    `json:"isCheckedOut"`
	Notes            *string `json:"notes"`
}

type paymentJSON struct {
	ID                 int64   `json:"id"`
	Date               int64   `json:"date"`
	Amount             float64 `json:"amount"`
	PaymentMethod      *string `json:"paymentMethod"`
	TransactionDetails *string `json:"transactionDetails"`
	PaymentType        string  `json:"paymentType"`
	PendingAmount      float64 `json:"pendingAmount"`
	Notes              *string `json:"notes"`
	TenantID           int64   `json:"tenantId"`
	RentMonth          int64   `json:"rentMonth"`
}

type documentJSON struct {
	ID           int64   `json:"id"`
	DocumentName string  `json:"documentName"`
	DocumentType *string `json:"documentType"`
	FilePath     string  `json:"filePath"`
	EntityType   string  `json:"entityType"`
	EntityID     int64   `json:"entityId"`
	UploadDate   int64   `json:"uploadDate"`
	FileSize     int64   `json:"fileSize"`
	MimeType     *string `json:"mimeType"`
	Notes        *string `json:"notes"`
}

type vendorJSON struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

type expenseJSON struct {
	ID            int64   `json:"id"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Date          int64   `json:"date"`
	Category      string  `json:"category"`
	VendorID      *int64  `json:"vendorId"`
	BuildingID    *int64  `json:"buildingId"`
	PaymentMethod *string `json:"paymentMethod"`
	Notes         *string `json:"notes"`
	ReceiptPath   *string `json:"receiptPath"`
}

// Conversion helpers between domain values and the wire shapes.

// optString null-coalesces an optional string: empty encodes as null.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// str unwraps an optional string, treating null as empty.
func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// optMillis encodes an optional timestamp: the zero time encodes as null.
func optMillis(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// millis encodes a required timestamp, zero time as 0.
func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// timeFromMillis decodes epoch milliseconds; null or 0 is the zero time.
func timeFromMillis(p *int64) time.Time {
	if p == nil || *p == 0 {
		return time.Time{}
	}
	return time.UnixMilli(*p).UTC()
}

// timeFromMillisValue decodes a required epoch-milliseconds field.
func timeFromMillisValue(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// optID encodes an optional foreign key: 0 encodes as null.
func optID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// idValue unwraps an optional foreign key, treating null as 0.
func idValue(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// joinMethods flattens a payment-method list into the comma-joined wire
// form.
func joinMethods(methods []string) string {
	return strings.Join(methods, ",")
}

// splitMethods parses the comma-joined wire form, dropping empty labels.
func splitMethods(joined string) []string {
	parts := strings.Split(joined, ",")
	methods := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			methods = append(methods, trimmed)
		}
	}
	return methods
}
