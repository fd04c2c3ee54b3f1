// Legacy portable-format decoder. Rows are re-inserted with fresh ids in
// strict dependency order; foreign keys are rewritten through the id map
// built along the way. Each row decodes independently: a malformed row is
// recorded and skipped, never aborting the rest of its table or the
// tables after it.
package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rentledger/rentledger/pkg/types"
)

// RowFailure records one skipped row during a legacy import.
type RowFailure struct {
	Table string
	Index int
	Err   error
}

// ImportReport summarizes a legacy import: how many rows of each table
// were inserted, plus the rows that were skipped and why.
type ImportReport struct {
	Imported map[string]int
	Failures []RowFailure
}

func newImportReport() *ImportReport {
	return &ImportReport{Imported: make(map[string]int)}
}

// fail records a skipped row.
func (r *ImportReport) fail(table string, index int, err error) {
	r.Failures = append(r.Failures, RowFailure{Table: table, Index: index, Err: err})
}

// Decode reads a v1 JSON export and inserts its rows. When clearExisting
// is set, all entity tables are emptied first; a clear failure is logged
// but does not abort the import. Settings are applied unconditionally
// and per-field. The returned report is non-nil whenever decoding got
// past the envelope.
func (c *Codec) Decode(r io.Reader, clearExisting bool) (*ImportReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var doc legacyExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}
	if doc.Version != LegacyVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", types.ErrUnsupportedVersion, doc.Version, LegacyVersion)
	}

	if clearExisting {
		if err := c.store.ClearAll(); err != nil {
			c.log.Error().Err(err).Msg("clearing tables before import")
		}
	}

	if doc.Settings != nil {
		c.applySettings(*doc.Settings)
	}

	report := newImportReport()
	ids := newIDMap()

	c.decodeOwners(doc.Owners, ids, report)
	c.decodeBuildings(doc.Buildings, ids, report)
	c.decodeTenants(doc.Tenants, ids, report)
	c.decodePayments(doc.Payments, ids, report)
	c.decodeDocuments(doc.Documents, ids, report)
	c.decodeVendors(doc.Vendors, ids, report)
	c.decodeExpenses(doc.Expenses, ids, report)

	for _, f := range report.Failures {
		c.log.Warn().Str("table", f.Table).Int("index", f.Index).Err(f.Err).Msg("skipped row during import")
	}
	return report, nil
}

// applySettings writes each imported setting independently; one failed
// write never blocks the others.
func (c *Codec) applySettings(s settingsJSON) {
	if s.Currency != "" {
		if err := c.settings.SetCurrency(s.Currency); err != nil {
			c.log.Warn().Err(err).Msg("importing currency setting")
		}
	}
	if err := c.settings.SetAppLock(s.AppLock); err != nil {
		c.log.Warn().Err(err).Msg("importing app lock setting")
	}
	if methods := splitMethods(s.PaymentMethods); len(methods) > 0 {
		if err := c.settings.SetPaymentMethods(methods); err != nil {
			c.log.Warn().Err(err).Msg("importing payment methods setting")
		}
	}
}

func (c *Codec) decodeOwners(rows []json.RawMessage, ids *idMap, report *ImportReport) {
	for i, raw := range rows {
		var row ownerJSON
		if err := json.Unmarshal(raw, &row); err != nil {
			report.fail("owners", i, err)
			continue
		}
		owner := &types.Owner{
			Name: row.Name, Email: str(row.Email), Mobile: row.Mobile,
			Mobile2: str(row.Mobile2), Address: str(row.Address),
		}
		newID, err := c.store.InsertOwner(owner)
		if err != nil {
			report.fail("owners", i, err)
			continue
		}
		ids.put(types.KindOwner, row.ID, newID)
		report.Imported["owners"]++
	}
}

func (c *Codec) decodeBuildings(rows []json.RawMessage, ids *idMap, report *ImportReport) {
	for i, raw := range rows {
		var row buildingJSON
		if err := json.Unmarshal(raw, &row); err != nil {
			report.fail("buildings", i, err)
			continue
		}
		ownerID, ok := ids.lookup(types.KindOwner, row.OwnerID)
		if !ok {
			report.fail("buildings", i, fmt.Errorf("owner %d not imported", row.OwnerID))
			continue
		}
		building := &types.Building{
			Name: row.Name, Address: str(row.Address), PropertyType: row.PropertyType,
			Notes: str(row.Notes), OwnerID: ownerID,
		}
		newID, err := c.store.InsertBuilding(building)
		if err != nil {
			report.fail("buildings", i, err)
			continue
		}
		ids.put(types.KindBuilding, row.ID, newID)
		report.Imported["buildings"]++
	}
}

func (c *Codec) decodeTenants(rows []json.RawMessage, ids *idMap, report *ImportReport) {
	for i, raw := range rows {
		var row tenantJSON
		if err := json.Unmarshal(raw, &row); err != nil {
			report.fail("tenants", i, err)
			continue
		}
		// A tenant whose building did not survive the import is kept,
		// detached.
		buildingID := int64(0)
		if old := idValue(row.BuildingID); old > 0 {
			if mapped, ok := ids.lookup(types.KindBuilding, old); ok {
				buildingID = mapped
			} else {
				c.log.Warn().Int64("building", old).Str("tenant", row.Name).
					Msg("building missing after import, detaching tenant")
			}
		}
		tenant := &types.Tenant{
			Name: row.Name, Email: str(row.Email), Mobile: row.Mobile,
			Mobile2: str(row.Mobile2), FamilyMembers: row.FamilyMembers,
			BuildingID: buildingID, StartDate: timeFromMillis(row.StartDate),
			RentIncreaseDate: timeFromMillis(row.RentIncreaseDate), Rent: row.Rent,
			SecurityDeposit: row.SecurityDeposit, CheckoutDate: timeFromMillis(row.CheckoutDate),
			IsCheckedOut: row.IsCheckedOut, Notes: str(row.Notes),
		}
		newID, err := c.store.InsertTenant(tenant)
		if err != nil {
			report.fail("tenants", i, err)
			continue
		}
		ids.put(types.KindTenant, row.ID, newID)
		report.Imported["tenants"]++
	}
}

func (c *Codec) decodePayments(rows []json.RawMessage, ids *idMap, report *ImportReport) {
	for i, raw := range rows {
		var row paymentJSON
		if err := json.Unmarshal(raw, &row); err != nil {
			report.fail("payments", i, err)
			continue
		}
		tenantID, ok := ids.lookup(types.KindTenant, row.TenantID)
		if !ok {
			report.fail("payments", i, fmt.Errorf("tenant %d not imported", row.TenantID))
			continue
		}
		payment := &types.Payment{
			Date: timeFromMillisValue(row.Date), Amount: row.Amount,
			PaymentMethod: str(row.PaymentMethod), TransactionDetails: str(row.TransactionDetails),
			PaymentType: row.PaymentType, PendingAmount: row.PendingAmount,
			Notes: str(row.Notes), TenantID: tenantID, RentMonth: timeFromMillisValue(row.RentMonth),
		}
		if _, err := c.store.InsertPayment(payment); err != nil {
			report.fail("payments", i, err)
			continue
		}
		report.Imported["payments"]++
	}
}

func (c *Codec) decodeDocuments(rows []json.RawMessage, ids *idMap, report *ImportReport) {
	for i, raw := range rows {
		var row documentJSON
		if err := json.Unmarshal(raw, &row); err != nil {
			report.fail("documents", i, err)
			continue
		}
		kind, err := types.ParseEntityKind(row.EntityType)
		if err != nil {
			report.fail("documents", i, fmt.Errorf("unknown entity type %q", row.EntityType))
			continue
		}
		entityID, resolved := ids.remapDocumentRef(kind, row.EntityID)
		if !resolved {
			// Orphaned references are allowed by the data model; keep the
			// stale id rather than dropping the document row.
			c.log.Warn().Str("kind", string(kind)).Int64("entity", row.EntityID).
				Str("document", row.DocumentName).Msg("document referent missing after import")
		}
		doc := &types.Document{
			DocumentName: row.DocumentName, DocumentType: str(row.DocumentType),
			FilePath: row.FilePath, EntityType: kind, EntityID: entityID,
			UploadDate: timeFromMillisValue(row.UploadDate), FileSize: row.FileSize,
			MimeType: str(row.MimeType), Notes: str(row.Notes),
		}
		if _, err := c.store.InsertDocument(doc); err != nil {
			report.fail("documents", i, err)
			continue
		}
		report.Imported["documents"]++
	}
}

func (c *Codec) decodeVendors(rows []json.RawMessage, ids *idMap, report *ImportReport) {
	for i, raw := range rows {
		var row vendorJSON
		if err := json.Unmarshal(raw, &row); err != nil {
			report.fail("vendors", i, err)
			continue
		}
		vendor := &types.Vendor{
			Name: row.Name, Category: row.Category, Phone: str(row.Phone),
			Email: str(row.Email), Address: str(row.Address), Notes: str(row.Notes),
		}
		newID, err := c.store.InsertVendor(vendor)
		if err != nil {
			report.fail("vendors", i, err)
			continue
		}
		ids.putVendor(row.ID, newID)
		report.Imported["vendors"]++
	}
}

func (c *Codec) decodeExpenses(rows []json.RawMessage, ids *idMap, report *ImportReport) {
	for i, raw := range rows {
		var row expenseJSON
		if err := json.Unmarshal(raw, &row); err != nil {
			report.fail("expenses", i, err)
			continue
		}
		// Vendor and building links are independently optional; a link
		// whose referent did not survive is dropped, not fatal.
		vendorID := int64(0)
		if old := idValue(row.VendorID); old > 0 {
			if mapped, ok := ids.lookupVendor(old); ok {
				vendorID = mapped
			} else {
				c.log.Warn().Int64("vendor", old).Msg("vendor missing after import, detaching expense")
			}
		}
		buildingID := int64(0)
		if old := idValue(row.BuildingID); old > 0 {
			if mapped, ok := ids.lookup(types.KindBuilding, old); ok {
				buildingID = mapped
			} else {
				c.log.Warn().Int64("building", old).Msg("building missing after import, detaching expense")
			}
		}
		expense := &types.Expense{
			Description: row.Description, Amount: row.Amount, Date: timeFromMillisValue(row.Date),
			Category: row.Category, VendorID: vendorID, BuildingID: buildingID,
			PaymentMethod: str(row.PaymentMethod), Notes: str(row.Notes),
			ReceiptPath: str(row.ReceiptPath),
		}
		if _, err := c.store.InsertExpense(expense); err != nil {
			report.fail("expenses", i, err)
			continue
		}
		report.Imported["expenses"]++
	}
}
