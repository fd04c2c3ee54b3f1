package store

import (
	"errors"
	"testing"
	"time"

	"github.com/rentledger/rentledger/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustInsertOwner(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, err := s.InsertOwner(&types.Owner{Name: name, Mobile: "555-0100"})
	if err != nil {
		t.Fatalf("InsertOwner failed: %v", err)
	}
	return id
}

func mustInsertBuilding(t *testing.T, s *Store, ownerID int64, name string) int64 {
	t.Helper()
	id, err := s.InsertBuilding(&types.Building{
		Name:         name,
		PropertyType: types.PropertyResidential,
		OwnerID:      ownerID,
	})
	if err != nil {
		t.Fatalf("InsertBuilding failed: %v", err)
	}
	return id
}

func mustInsertTenant(t *testing.T, s *Store, buildingID int64, name string) int64 {
	t.Helper()
	id, err := s.InsertTenant(&types.Tenant{
		Name:       name,
		Mobile:     "555-0199",
		BuildingID: buildingID,
		Rent:       1200,
	})
	if err != nil {
		t.Fatalf("InsertTenant failed: %v", err)
	}
	return id
}

func TestOwnerCRUD(t *testing.T) {
	s := newTestStore(t)

	id := mustInsertOwner(t, s, "Alice")
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	o, err := s.GetOwner(id)
	if err != nil {
		t.Fatalf("GetOwner failed: %v", err)
	}
	if o.Name != "Alice" {
		t.Fatalf("expected Alice, got %q", o.Name)
	}

	o.Email = "alice@example.com"
	if err := s.UpdateOwner(o); err != nil {
		t.Fatalf("UpdateOwner failed: %v", err)
	}
	o, _ = s.GetOwner(id)
	if o.Email != "alice@example.com" {
		t.Fatalf("update not persisted, email %q", o.Email)
	}

	if err := s.DeleteOwner(id); err != nil {
		t.Fatalf("DeleteOwner failed: %v", err)
	}
	if _, err := s.GetOwner(id); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOwnerRequiresMobile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.InsertOwner(&types.Owner{Name: "No Phone"})
	if !errors.Is(err, types.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestBuildingRequiresExistingOwner(t *testing.T) {
	s := newTestStore(t)
	_, err := s.InsertBuilding(&types.Building{Name: "Orphan", OwnerID: 42})
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOwnerCascadesBuildings(t *testing.T) {
	s := newTestStore(t)

	ownerID := mustInsertOwner(t, s, "Bob")
	buildingID := mustInsertBuilding(t, s, ownerID, "Elm Street 4")
	tenantID := mustInsertTenant(t, s, buildingID, "Carol")

	if err := s.DeleteOwner(ownerID); err != nil {
		t.Fatalf("DeleteOwner failed: %v", err)
	}

	if _, err := s.GetBuilding(buildingID); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected building cascade-deleted, got %v", err)
	}

	// The tenant survives with its building link cleared.
	tenant, err := s.GetTenant(tenantID)
	if err != nil {
		t.Fatalf("GetTenant failed: %v", err)
	}
	if tenant.BuildingID != 0 {
		t.Fatalf("expected tenant detached, building id %d", tenant.BuildingID)
	}
}

func TestDeleteBuildingDetachesTenantsAndExpenses(t *testing.T) {
	s := newTestStore(t)

	ownerID := mustInsertOwner(t, s, "Dana")
	buildingID := mustInsertBuilding(t, s, ownerID, "Oak Court 1")
	tenantID := mustInsertTenant(t, s, buildingID, "Eve")
	expenseID, err := s.InsertExpense(&types.Expense{
		Description: "roof repair",
		Amount:      900,
		Date:        time.Now(),
		Category:    types.ExpenseRepairs,
		BuildingID:  buildingID,
	})
	if err != nil {
		t.Fatalf("InsertExpense failed: %v", err)
	}

	if err := s.DeleteBuilding(buildingID); err != nil {
		t.Fatalf("DeleteBuilding failed: %v", err)
	}

	tenant, _ := s.GetTenant(tenantID)
	if tenant.BuildingID != 0 {
		t.Fatalf("expected tenant detached, got building %d", tenant.BuildingID)
	}
	expense, _ := s.GetExpense(expenseID)
	if expense.BuildingID != 0 {
		t.Fatalf("expected expense detached, got building %d", expense.BuildingID)
	}
}

func TestDeleteTenantCascadesPayments(t *testing.T) {
	s := newTestStore(t)

	ownerID := mustInsertOwner(t, s, "Frank")
	buildingID := mustInsertBuilding(t, s, ownerID, "Pine Row 2")
	tenantID := mustInsertTenant(t, s, buildingID, "Grace")

	paymentID, err := s.InsertPayment(&types.Payment{
		Date:        time.Now(),
		Amount:      1200,
		PaymentType: types.PaymentFull,
		TenantID:    tenantID,
		RentMonth:   time.Now(),
	})
	if err != nil {
		t.Fatalf("InsertPayment failed: %v", err)
	}

	if err := s.DeleteTenant(tenantID); err != nil {
		t.Fatalf("DeleteTenant failed: %v", err)
	}
	if _, err := s.GetPayment(paymentID); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected payment cascade-deleted, got %v", err)
	}
}

func TestDeleteVendorDetachesExpenses(t *testing.T) {
	s := newTestStore(t)

	vendorID, err := s.InsertVendor(&types.Vendor{Name: "PipePros", Category: types.VendorPlumbing})
	if err != nil {
		t.Fatalf("InsertVendor failed: %v", err)
	}
	expenseID, err := s.InsertExpense(&types.Expense{
		Description: "drain cleaning",
		Amount:      150,
		Date:        time.Now(),
		VendorID:    vendorID,
	})
	if err != nil {
		t.Fatalf("InsertExpense failed: %v", err)
	}

	if err := s.DeleteVendor(vendorID); err != nil {
		t.Fatalf("DeleteVendor failed: %v", err)
	}
	expense, _ := s.GetExpense(expenseID)
	if expense.VendorID != 0 {
		t.Fatalf("expected expense detached, got vendor %d", expense.VendorID)
	}
}

func TestForeignKeysEnforcedOnFreshConnections(t *testing.T) {
	s := newTestStore(t)

	// Zero idle connections forces every statement onto a brand-new
	// pooled connection, which must still enforce foreign keys.
	s.db.SetMaxIdleConns(0)

	if _, err := s.InsertExpense(&types.Expense{
		Description: "ghost invoice",
		Amount:      75,
		Date:        time.Now(),
		VendorID:    999,
	}); err == nil {
		t.Fatal("expected expense referencing a missing vendor to fail")
	}

	ownerID := mustInsertOwner(t, s, "Mona")
	buildingID := mustInsertBuilding(t, s, ownerID, "Birch 5")
	if _, err := s.InsertExpense(&types.Expense{
		Description: "gutter cleaning",
		Amount:      120,
		Date:        time.Now(),
		BuildingID:  buildingID,
	}); err != nil {
		t.Fatalf("expected expense with existing building to insert, got %v", err)
	}
}

func TestPaymentRentMonthNormalized(t *testing.T) {
	s := newTestStore(t)

	ownerID := mustInsertOwner(t, s, "Hank")
	buildingID := mustInsertBuilding(t, s, ownerID, "Main 9")
	tenantID := mustInsertTenant(t, s, buildingID, "Iris")

	mid := time.Date(2026, 3, 17, 14, 22, 5, 0, time.UTC)
	id, err := s.InsertPayment(&types.Payment{
		Date:        mid,
		Amount:      800,
		PaymentType: types.PaymentPartial,
		PendingAmount: 400,
		TenantID:    tenantID,
		RentMonth:   mid,
	})
	if err != nil {
		t.Fatalf("InsertPayment failed: %v", err)
	}

	p, err := s.GetPayment(id)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !p.RentMonth.Equal(want) {
		t.Fatalf("expected rent month %v, got %v", want, p.RentMonth)
	}
	if !p.IsPending() {
		t.Fatal("expected payment pending")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := newTestStore(t)

	doc := &types.Document{
		DocumentName: "lease.pdf",
		DocumentType: "lease",
		FilePath:     "tenant/7/lease.pdf",
		EntityType:   types.KindTenant,
		EntityID:     7,
		UploadDate:   time.Now().UTC().Truncate(time.Second),
		FileSize:     2048,
		MimeType:     "application/pdf",
	}
	id, err := s.InsertDocument(doc)
	if err != nil {
		t.Fatalf("InsertDocument failed: %v", err)
	}

	got, err := s.GetDocument(id)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got.EntityType != types.KindTenant || got.EntityID != 7 {
		t.Fatalf("unexpected reference %s/%d", got.EntityType, got.EntityID)
	}
	if got.FileSize != 2048 {
		t.Fatalf("unexpected size %d", got.FileSize)
	}
}

func TestClearAllEmptiesEveryTable(t *testing.T) {
	s := newTestStore(t)

	ownerID := mustInsertOwner(t, s, "Judy")
	buildingID := mustInsertBuilding(t, s, ownerID, "Cedar 3")
	tenantID := mustInsertTenant(t, s, buildingID, "Karl")
	if _, err := s.InsertPayment(&types.Payment{
		Date: time.Now(), Amount: 100, PaymentType: types.PaymentFull,
		TenantID: tenantID, RentMonth: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertVendor(&types.Vendor{Name: "Sparky", Category: types.VendorElectrical}); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	counts, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	for table, n := range counts {
		if n != 0 {
			t.Fatalf("expected %s empty, got %d rows", table, n)
		}
	}
}

func TestCloseThenReopen(t *testing.T) {
	s := newTestStore(t)
	id := mustInsertOwner(t, s, "Liam")

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := s.ListOwners(); !errors.Is(err, types.ErrStoreClosed) {
		t.Fatalf("expected ErrStoreClosed, got %v", err)
	}

	if err := s.Reopen(); err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	o, err := s.GetOwner(id)
	if err != nil {
		t.Fatalf("GetOwner after reopen failed: %v", err)
	}
	if o.Name != "Liam" {
		t.Fatalf("unexpected owner %q", o.Name)
	}
}
