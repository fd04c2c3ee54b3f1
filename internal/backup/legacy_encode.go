// Legacy portable-format encoder: serializes the full entity graph plus
// settings into one v1 JSON document.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentledger/rentledger/internal/settings"
	"github.com/rentledger/rentledger/internal/store"
	"github.com/rentledger/rentledger/pkg/types"
)

// Codec encodes and decodes the legacy v1 JSON interchange format.
type Codec struct {
	store    *store.Store
	settings *settings.Store
	log      zerolog.Logger
}

// NewCodec returns a Codec bound to the given stores.
func NewCodec(st *store.Store, se *settings.Store, log zerolog.Logger) *Codec {
	return &Codec{store: st, settings: se, log: log}
}

// Encode writes the whole entity graph as a v1 JSON document. Settings
// reads are best-effort: a failed read falls back to the default and is
// logged, never aborting the export.
func (c *Codec) Encode(w io.Writer) error {
	doc := map[string]any{
		"version":    LegacyVersion,
		"exportDate": time.Now().UnixMilli(),
		"settings":   c.readSettings(),
	}

	owners, err := c.store.ListOwners()
	if err != nil {
		return fmt.Errorf("listing owners: %w", err)
	}
	ownerRows := make([]ownerJSON, 0, len(owners))
	for _, o := range owners {
		ownerRows = append(ownerRows, ownerJSON{
			ID: o.ID, Name: o.Name, Email: optString(o.Email),
			Mobile: o.Mobile, Mobile2: optString(o.Mobile2), Address: optString(o.Address),
		})
	}
	doc["owners"] = ownerRows

	buildings, err := c.store.ListBuildings()
	if err != nil {
		return fmt.Errorf("listing buildings: %w", err)
	}
	buildingRows := make([]buildingJSON, 0, len(buildings))
	for _, b := range buildings {
		buildingRows = append(buildingRows, buildingJSON{
			ID: b.ID, Name: b.Name, Address: optString(b.Address),
			PropertyType: b.PropertyType, Notes: optString(b.Notes), OwnerID: b.OwnerID,
		})
	}
	doc["buildings"] = buildingRows

	tenants, err := c.store.ListTenants()
	if err != nil {
		return fmt.Errorf("listing tenants: %w", err)
	}
	tenantRows := make([]tenantJSON, 0, len(tenants))
	for _, t := range tenants {
		tenantRows = append(tenantRows, tenantJSON{
			ID: t.ID, Name: t.Name, Email: optString(t.Email), Mobile: t.Mobile,
			Mobile2: optString(t.Mobile2), FamilyMembers: t.FamilyMembers,
			BuildingID: optID(t.BuildingID), StartDate: optMillis(t.StartDate),
			RentIncreaseDate: optMillis(t.RentIncreaseDate), Rent: t.Rent,
			SecurityDeposit: t.SecurityDeposit, CheckoutDate: optMillis(t.CheckoutDate),
			IsCheckedOut: t.IsCheckedOut, Notes: optString(t.Notes),
		})
	}
	doc["tenants"] = tenantRows

	payments, err := c.store.ListPayments()
	if err != nil {
		return fmt.Errorf("listing payments: %w", err)
	}
	paymentRows := make([]paymentJSON, 0, len(payments))
	for _, p := range payments {
		paymentRows = append(paymentRows, paymentJSON{
			ID: p.ID, Date: millis(p.Date), Amount: p.Amount,
			PaymentMethod: optString(p.PaymentMethod), TransactionDetails: optString(p.TransactionDetails),
			PaymentType: p.PaymentType, PendingAmount: p.PendingAmount,
			Notes: optString(p.Notes), TenantID: p.TenantID, RentMonth: millis(p.RentMonth),
		})
	}
	doc["payments"] = paymentRows

	documents, err := c.store.ListDocuments()
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	documentRows := make([]documentJSON, 0, len(documents))
	for _, d := range documents {
		documentRows = append(documentRows, documentJSON{
			ID: d.ID, DocumentName: d.DocumentName, DocumentType: optString(d.DocumentType),
			FilePath: d.FilePath, EntityType: string(d.EntityType), EntityID: d.EntityID,
			UploadDate: millis(d.UploadDate), FileSize: d.FileSize,
			MimeType: optString(d.MimeType), Notes: optString(d.Notes),
		})
	}
	doc["documents"] = documentRows

	vendors, err := c.store.ListVendors()
	if err != nil {
		return fmt.Errorf("listing vendors: %w", err)
	}
	vendorRows := make([]vendorJSON, 0, len(vendors))
	for _, v := range vendors {
		vendorRows = append(vendorRows, vendorJSON{
			ID: v.ID, Name: v.Name, Category: v.Category, Phone: optString(v.Phone),
			Email: optString(v.Email), Address: optString(v.Address), Notes: optString(v.Notes),
		})
	}
	doc["vendors"] = vendorRows

	expenses, err := c.store.ListExpenses()
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}
	expenseRows := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, expenseJSON{
			ID: e.ID, Description: e.Description, Amount: e.Amount, Date: millis(e.Date),
			Category: e.Category, VendorID: optID(e.VendorID), BuildingID: optID(e.BuildingID),
			PaymentMethod: optString(e.PaymentMethod), Notes: optString(e.Notes),
			ReceiptPath: optString(e.ReceiptPath),
		})
	}
	doc["expenses"] = expenseRows

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// readSettings collects the three settings independently, substituting
// defaults for any field that fails to read.
func (c *Codec) readSettings() settingsJSON {
	currency, err := c.settings.Currency()
	if err != nil {
		c.log.Warn().Err(err).Msg("reading currency for export, using default")
		currency = types.DefaultCurrency
	}
	appLock, err := c.settings.AppLock()
	if err != nil {
		c.log.Warn().Err(err).Msg("reading app lock for export, using default")
		appLock = types.DefaultAppLock
	}
	methods, err := c.settings.PaymentMethods()
	if err != nil {
		c.log.Warn().Err(err).Msg("reading payment methods for export, using defaults")
		methods = types.DefaultPaymentMethods()
	}
	return settingsJSON{
		Currency:       currency,
		AppLock:        appLock,
		PaymentMethods: joinMethods(methods),
	}
}
