// Schema DDL for the entity store tables.
package store

// Table DDL. Identifiers are SQLite rowid aliases assigned on insert.
// Cascade and nullify behavior is implemented explicitly in the delete
// transactions rather than with ON DELETE clauses, so the policy is
// visible in one place per entity.
const (
	createOwners = `CREATE TABLE IF NOT EXISTS owners (
    owner_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    mobile TEXT NOT NULL,
    mobile2 TEXT,
    address TEXT
);`

	createBuildings = `CREATE TABLE IF NOT EXISTS buildings (
    building_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT,
    property_type TEXT,
    notes TEXT,
    owner_id INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES owners(owner_id)
);`

	createTenants = `CREATE TABLE IF NOT EXISTS tenants (
    tenant_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    mobile TEXT NOT NULL,
    mobile2 TEXT,
    family_members INTEGER,
    building_id INTEGER,
    start_date TEXT,
    rent_increase_date TEXT,
    rent REAL,
    security_deposit REAL,
    checkout_date TEXT,
    is_checked_out INTEGER NOT NULL DEFAULT 0,
    notes TEXT,
    FOREIGN KEY (building_id) REFERENCES buildings(building_id)
);`

	createPayments = `CREATE TABLE IF NOT EXISTS payments (
    payment_id INTEGER PRIMARY KEY,
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    payment_method TEXT,
    transaction_details TEXT,
    payment_type TEXT NOT NULL,
    pending_amount REAL,
    notes TEXT,
    tenant_id INTEGER NOT NULL,
    rent_month TEXT,
    FOREIGN KEY (tenant_id) REFERENCES tenants(tenant_id)
);`

	// entity_type/entity_id is a polymorphic reference; deliberately no
	// foreign key so a document can outlive its referent.
	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    document_id INTEGER PRIMARY KEY,
    document_name TEXT NOT NULL,
    document_type TEXT,
    file_path TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    entity_id INTEGER NOT NULL,
    upload_date TEXT,
    file_size INTEGER,
    mime_type TEXT,
    notes TEXT
);`

	createVendors = `CREATE TABLE IF NOT EXISTS vendors (
    vendor_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT,
    phone TEXT,
    email TEXT,
    address TEXT,
    notes TEXT
);`

	createExpenses = `CREATE TABLE IF NOT EXISTS expenses (
    expense_id INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    category TEXT,
    vendor_id INTEGER,
    building_id INTEGER,
    payment_method TEXT,
    notes TEXT,
    receipt_path TEXT,
    FOREIGN KEY (vendor_id) REFERENCES vendors(vendor_id),
    FOREIGN KEY (building_id) REFERENCES buildings(building_id)
);`
)

// Index DDL for common lookups.
const (
	idxBuildingsOwner    = `CREATE INDEX IF NOT EXISTS idx_buildings_owner ON buildings(owner_id);`
	idxTenantsBuilding   = `CREATE INDEX IF NOT EXISTS idx_tenants_building ON tenants(building_id);`
	idxPaymentsTenant    = `CREATE INDEX IF NOT EXISTS idx_payments_tenant ON payments(tenant_id);`
	idxPaymentsRentMonth = `CREATE INDEX IF NOT EXISTS idx_payments_rent_month ON payments(rent_month);`
	idxDocumentsEntity   = `CREATE INDEX IF NOT EXISTS idx_documents_entity ON documents(entity_type, entity_id);`
	idxExpensesVendor    = `CREATE INDEX IF NOT EXISTS idx_expenses_vendor ON expenses(vendor_id);`
	idxExpensesBuilding  = `CREATE INDEX IF NOT EXISTS idx_expenses_building ON expenses(building_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createOwners,
	createBuildings,
	createTenants,
	createPayments,
	createDocuments,
	createVendors,
	createExpenses,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxBuildingsOwner,
	idxTenantsBuilding,
	idxPaymentsTenant,
	idxPaymentsRentMonth,
	idxDocumentsEntity,
	idxExpensesVendor,
	idxExpensesBuilding,
}

// tableNames lists all entity tables in clear order: dependents before
// the tables they reference, so a wholesale clear never trips a foreign
// key.
var tableNames = []string{
	"payments",
	"documents",
	"tenants",
	"expenses",
	"buildings",
	"vendors",
	"owners",
}
