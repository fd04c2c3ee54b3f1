// ID remapping tables used when importing a legacy export. Imported rows
// are inserted with fresh ids; the map records old-id to new-id per
// entity kind so later passes can rewrite foreign keys.
package backup

import "github.com/rentledger/rentledger/pkg/types"

// idMap tracks old-id to new-id assignments keyed by entity kind.
// Payments are deliberately not tracked: nothing downstream of a payment
// needs its id remapped. Vendors are not a referenceable document kind,
// so they get their own table.
type idMap struct {
	byKind  map[types.EntityKind]map[int64]int64
	vendors map[int64]int64
}

func newIDMap() *idMap {
	return &idMap{
		byKind:  make(map[types.EntityKind]map[int64]int64),
		vendors: make(map[int64]int64),
	}
}

// putVendor records a vendor re-insertion.
func (m *idMap) putVendor(oldID, newID int64) {
	m.vendors[oldID] = newID
}

// lookupVendor returns the new id assigned to a vendor.
func (m *idMap) lookupVendor(oldID int64) (int64, bool) {
	newID, ok := m.vendors[oldID]
	return newID, ok
}

// put records that oldID of the given kind was re-inserted as newID.
func (m *idMap) put(kind types.EntityKind, oldID, newID int64) {
	table, ok := m.byKind[kind]
	if !ok {
		table = make(map[int64]int64)
		m.byKind[kind] = table
	}
	table[oldID] = newID
}

// lookup returns the new id assigned to oldID of the given kind.
func (m *idMap) lookup(kind types.EntityKind, oldID int64) (int64, bool) {
	table, ok := m.byKind[kind]
	if !ok {
		return 0, false
	}
	newID, ok := table[oldID]
	return newID, ok
}

// remapDocumentRef rewrites a document's entity reference using the map
// matching its kind. The switch is exhaustive over the closed kind set:
// payment-typed documents keep their original reference because payments
// are not tracked. The second return reports whether the reference
// resolved (payment refs always do).
func (m *idMap) remapDocumentRef(kind types.EntityKind, oldID int64) (int64, bool) {
	switch kind {
	case types.KindOwner, types.KindBuilding, types.KindTenant, types.KindExpense:
		if newID, ok := m.lookup(kind, oldID); ok {
			return newID, true
		}
		return oldID, false
	case types.KindPayment:
		return oldID, true
	}
	return oldID, false
}
