package backup

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentledger/rentledger/internal/blob"
	"github.com/rentledger/rentledger/internal/settings"
	"github.com/rentledger/rentledger/internal/store"
	"github.com/rentledger/rentledger/pkg/types"
)

// testEnv bundles the three stores the subsystem operates on, all rooted
// in one throwaway data directory.
type testEnv struct {
	store    *store.Store
	settings *settings.Store
	blobs    *blob.Store
	dataDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return &testEnv{
		store:    st,
		settings: settings.NewStore(dir),
		blobs:    blob.NewStore(dir),
		dataDir:  dir,
	}
}

func (e *testEnv) codec() *Codec {
	return NewCodec(e.store, e.settings, zerolog.Nop())
}

// seedGraph inserts one row of every entity with all foreign keys wired,
// returning the assigned ids keyed by table name.
func seedGraph(t *testing.T, e *testEnv) map[string]int64 {
	t.Helper()
	ids := make(map[string]int64)

	var err error
	ids["owners"], err = e.store.InsertOwner(&types.Owner{Name: "Asha Rao", Mobile: "555-0100"})
	if err != nil {
		t.Fatalf("inserting owner: %v", err)
	}
	ids["buildings"], err = e.store.InsertBuilding(&types.Building{
		Name: "Maple Court", PropertyType: types.PropertyResidential, OwnerID: ids["owners"],
	})
	if err != nil {
		t.Fatalf("inserting building: %v", err)
	}
	ids["tenants"], err = e.store.InsertTenant(&types.Tenant{
		Name: "Ben Okafor", Mobile: "555-0101", BuildingID: ids["buildings"], Rent: 1200,
	})
	if err != nil {
		t.Fatalf("inserting tenant: %v", err)
	}
	ids["payments"], err = e.store.InsertPayment(&types.Payment{
		Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Amount: 1200,
		PaymentType: types.PaymentFull, TenantID: ids["tenants"],
		RentMonth: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("inserting payment: %v", err)
	}
	ids["documents"], err = e.store.InsertDocument(&types.Document{
		DocumentName: "lease.pdf", FilePath: "tenants/lease.pdf",
		EntityType: types.KindTenant, EntityID: ids["tenants"],
		UploadDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), FileSize: 2048,
	})
	if err != nil {
		t.Fatalf("inserting document: %v", err)
	}
	ids["vendors"], err = e.store.InsertVendor(&types.Vendor{Name: "Pipeworks", Category: types.VendorPlumbing})
	if err != nil {
		t.Fatalf("inserting vendor: %v", err)
	}
	ids["expenses"], err = e.store.InsertExpense(&types.Expense{
		Description: "burst pipe", Amount: 300, Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Category: types.ExpenseRepairs, VendorID: ids["vendors"], BuildingID: ids["buildings"],
	})
	if err != nil {
		t.Fatalf("inserting expense: %v", err)
	}
	return ids
}

func TestLegacyEncodeDecodeRoundTrip(t *testing.T) {
	src := newTestEnv(t)
	seedGraph(t, src)
	if err := src.settings.SetCurrency("EUR"); err != nil {
		t.Fatalf("setting currency: %v", err)
	}
	if err := src.settings.SetAppLock(true); err != nil {
		t.Fatalf("setting app lock: %v", err)
	}
	if err := src.settings.SetPaymentMethods([]string{"Cash", "Wire"}); err != nil {
		t.Fatalf("setting payment methods: %v", err)
	}

	var buf bytes.Buffer
	if err := src.codec().Encode(&buf); err != nil {
		t.Fatalf("encoding: %v", err)
	}

	dst := newTestEnv(t)
	report, err := dst.codec().Decode(&buf, false)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(report.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", report.Failures)
	}
	for _, table := range []string{"owners", "buildings", "tenants", "payments", "documents", "vendors", "expenses"} {
		if report.Imported[table] != 1 {
			t.Errorf("%s: imported %d rows, want 1", table, report.Imported[table])
		}
	}

	counts, err := dst.store.Counts()
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	for table, n := range counts {
		if n != 1 {
			t.Errorf("%s: %d rows after import, want 1", table, n)
		}
	}

	currency, err := dst.settings.Currency()
	if err != nil || currency != "EUR" {
		t.Errorf("currency = %q, %v; want EUR", currency, err)
	}
	appLock, err := dst.settings.AppLock()
	if err != nil || !appLock {
		t.Errorf("appLock = %v, %v; want true", appLock, err)
	}
	methods, err := dst.settings.PaymentMethods()
	if err != nil || len(methods) != 2 || methods[0] != "Cash" || methods[1] != "Wire" {
		t.Errorf("paymentMethods = %v, %v; want [Cash Wire]", methods, err)
	}

	// Foreign keys must point at the newly assigned rows.
	owners, _ := dst.store.ListOwners()
	buildings, _ := dst.store.ListBuildings()
	tenants, _ := dst.store.ListTenants()
	payments, _ := dst.store.ListPayments()
	if buildings[0].OwnerID != owners[0].ID {
		t.Errorf("building owner = %d, want %d", buildings[0].OwnerID, owners[0].ID)
	}
	if tenants[0].BuildingID != buildings[0].ID {
		t.Errorf("tenant building = %d, want %d", tenants[0].BuildingID, buildings[0].ID)
	}
	if payments[0].TenantID != tenants[0].ID {
		t.Errorf("payment tenant = %d, want %d", payments[0].TenantID, tenants[0].ID)
	}
}

func TestLegacyDecodeRemapsForeignKeys(t *testing.T) {
	doc := `{
		"version": 1,
		"exportDate": 1767225600000,
		"owners": [{"id": 100, "name": "Asha Rao", "email": null, "mobile": "555-0100", "mobile2": null, "address": null}],
		"buildings": [{"id": 200, "name": "Maple Court", "address": null, "propertyType": "RESIDENTIAL", "notes": null, "ownerId": 100}],
		"tenants": [{"id": 300, "name": "Ben Okafor", "email": null, "mobile": "555-0101", "mobile2": null,
			"familyMembers": 2, "buildingId": 200, "startDate": 1767225600000, "rentIncreaseDate": null,
			"rent": 1200, "securityDeposit": 2400, "checkoutDate": null, "isCheckedOut": false, "notes": null}],
		"payments": [{"id": 400, "date": 1772668800000, "amount": 1200, "paymentMethod": "Cash",
			"transactionDetails": null, "paymentType": "FULL", "pendingAmount": 0, "notes": null,
			"tenantId": 300, "rentMonth": 1772323200000}],
		"documents": [
			{"id": 500, "documentName": "lease.pdf", "documentType": null, "filePath": "tenants/lease.pdf",
				"entityType": "TENANT", "entityId": 300, "uploadDate": 1767225600000, "fileSize": 2048,
				"mimeType": null, "notes": null},
			{"id": 501, "documentName": "receipt.pdf", "documentType": null, "filePath": "payments/receipt.pdf",
				"entityType": "PAYMENT", "entityId": 400, "uploadDate": 1767225600000, "fileSize": 512,
				"mimeType": null, "notes": null}
		],
		"vendors": [{"id": 600, "name": "Pipeworks", "category": "PLUMBING", "phone": null, "email": null, "address": null, "notes": null}],
		"expenses": [{"id": 700, "description": "burst pipe", "amount": 300, "date": 1767225600000,
			"category": "REPAIRS", "vendorId": 600, "buildingId": 200, "paymentMethod": null, "notes": null, "receiptPath": null}]
	}`

	dst := newTestEnv(t)
	report, err := dst.codec().Decode(strings.NewReader(doc), false)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(report.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", report.Failures)
	}

	owners, _ := dst.store.ListOwners()
	buildings, _ := dst.store.ListBuildings()
	tenants, _ := dst.store.ListTenants()
	payments, _ := dst.store.ListPayments()
	vendors, _ := dst.store.ListVendors()
	expenses, _ := dst.store.ListExpenses()
	documents, _ := dst.store.ListDocuments()

	if buildings[0].OwnerID != owners[0].ID {
		t.Errorf("building owner = %d, want remapped %d", buildings[0].OwnerID, owners[0].ID)
	}
	if tenants[0].BuildingID != buildings[0].ID {
		t.Errorf("tenant building = %d, want remapped %d", tenants[0].BuildingID, buildings[0].ID)
	}
	if payments[0].TenantID != tenants[0].ID {
		t.Errorf("payment tenant = %d, want remapped %d", payments[0].TenantID, tenants[0].ID)
	}
	if expenses[0].VendorID != vendors[0].ID {
		t.Errorf("expense vendor = %d, want remapped %d", expenses[0].VendorID, vendors[0].ID)
	}
	if expenses[0].BuildingID != buildings[0].ID {
		t.Errorf("expense building = %d, want remapped %d", expenses[0].BuildingID, buildings[0].ID)
	}

	var tenantDoc, paymentDoc *types.Document
	for _, d := range documents {
		switch d.EntityType {
		case types.KindTenant:
			tenantDoc = d
		case types.KindPayment:
			paymentDoc = d
		}
	}
	if tenantDoc == nil || tenantDoc.EntityID != tenants[0].ID {
		t.Errorf("tenant document ref not remapped: %+v", tenantDoc)
	}
	// Payment references carry over verbatim: payments are never remapped.
	if paymentDoc == nil || paymentDoc.EntityID != 400 {
		t.Errorf("payment document ref should keep original id 400: %+v", paymentDoc)
	}
}

func TestLegacyDecodeSkipsMalformedRows(t *testing.T) {
	doc := `{
		"version": 1,
		"owners": [
			{"id": 1, "name": "Good One", "mobile": "555-0001"},
			{"id": 2, "name": 12345, "mobile": "555-0002"},
			{"id": 3, "name": "Good Two", "mobile": "555-0003"}
		],
		"buildings": [], "tenants": [], "payments": [], "documents": []
	}`

	dst := newTestEnv(t)
	report, err := dst.codec().Decode(strings.NewReader(doc), false)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if report.Imported["owners"] != 2 {
		t.Errorf("imported %d owners, want 2", report.Imported["owners"])
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %+v, want exactly one", report.Failures)
	}
	f := report.Failures[0]
	if f.Table != "owners" || f.Index != 1 {
		t.Errorf("failure recorded at %s[%d], want owners[1]", f.Table, f.Index)
	}

	owners, _ := dst.store.ListOwners()
	if len(owners) != 2 {
		t.Errorf("%d owners in store, want 2", len(owners))
	}
}

func TestLegacyDecodeDanglingReferences(t *testing.T) {
	// The building the tenant points at never appears, and the payment's
	// tenant is absent. The tenant must survive detached; the payment must
	// be skipped because its foreign key is required.
	doc := `{
		"version": 1,
		"owners": [], "buildings": [],
		"tenants": [{"id": 300, "name": "Ben Okafor", "mobile": "555-0101", "buildingId": 999,
			"familyMembers": 0, "rent": 0, "securityDeposit": 0, "isCheckedOut": false}],
		"payments": [{"id": 400, "date": 1772668800000, "amount": 1200, "paymentType": "FULL",
			"pendingAmount": 0, "tenantId": 999, "rentMonth": 1772323200000}],
		"documents": []
	}`

	dst := newTestEnv(t)
	report, err := dst.codec().Decode(strings.NewReader(doc), false)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if report.Imported["tenants"] != 1 {
		t.Errorf("imported %d tenants, want 1", report.Imported["tenants"])
	}
	tenants, _ := dst.store.ListTenants()
	if len(tenants) != 1 || tenants[0].BuildingID != 0 {
		t.Errorf("tenant should be kept detached, got %+v", tenants)
	}
	if report.Imported["payments"] != 0 || len(report.Failures) != 1 || report.Failures[0].Table != "payments" {
		t.Errorf("payment with missing tenant should be the only failure, got %+v", report.Failures)
	}
}

func TestLegacyDecodeRejectsUnsupportedVersion(t *testing.T) {
	dst := newTestEnv(t)
	_, err := dst.codec().Decode(strings.NewReader(`{"version": 2, "owners": []}`), false)
	if !errors.Is(err, types.ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLegacyDecodeClearExisting(t *testing.T) {
	doc := `{
		"version": 1,
		"owners": [{"id": 1, "name": "Imported", "mobile": "555-0009"}],
		"buildings": [], "tenants": [], "payments": [], "documents": []
	}`

	t.Run("replace", func(t *testing.T) {
		dst := newTestEnv(t)
		if _, err := dst.store.InsertOwner(&types.Owner{Name: "Existing", Mobile: "555-0000"}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
		if _, err := dst.codec().Decode(strings.NewReader(doc), true); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		owners, _ := dst.store.ListOwners()
		if len(owners) != 1 || owners[0].Name != "Imported" {
			t.Errorf("expected only the imported owner, got %+v", owners)
		}
	})

	t.Run("merge", func(t *testing.T) {
		dst := newTestEnv(t)
		if _, err := dst.store.InsertOwner(&types.Owner{Name: "Existing", Mobile: "555-0000"}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
		if _, err := dst.codec().Decode(strings.NewReader(doc), false); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		owners, _ := dst.store.ListOwners()
		if len(owners) != 2 {
			t.Errorf("expected both owners after merge, got %+v", owners)
		}
	})
}
