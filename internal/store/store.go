// Package store implements the SQLite entity store for rental data.
// Entities are plain rows; every insert returns the id assigned by the
// store, updates are full-row by id, and deletes apply the cascade or
// nullify policy of the entity inside one transaction.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rentledger/rentledger/pkg/types"
)

// DBFileName is the on-disk name of the entity store file. Snapshot
// archives carry the file verbatim under this name.
const DBFileName = "rentledger.db"

// Store wraps the SQLite database holding all entity tables.
type Store struct {
	mu      sync.RWMutex
	db      *sql.DB
	dataDir string
	path    string
}

// Open creates dataDir if needed, opens (or creates) the database file,
// and applies the schema idempotently.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, DBFileName)
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, dataDir: dataDir, path: path}, nil
}

// openDB opens the SQLite file and applies the schema. The foreign_keys
// pragma rides the DSN so the driver enables it on every pooled
// connection, not just the one a one-shot Exec would hit.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying indexes: %w", err)
		}
	}
	return db, nil
}

// Close releases the database handle. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	return nil
}

// Reopen closes and reopens the database handle. Used after a restore
// overwrites the backing file.
func (s *Store) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing before reopen: %w", err)
		}
		s.db = nil
	}
	db, err := openDB(s.path)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// Path returns the absolute path of the database file.
func (s *Store) Path() string {
	return s.path
}

// DataDir returns the data directory the store lives in.
func (s *Store) DataDir() string {
	return s.dataDir
}

// handle returns the live database handle or ErrStoreClosed.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	return s.db, nil
}

// ClearAll empties every entity table inside one transaction so a crash
// mid-clear cannot leave a half-emptied graph. Tables are cleared in
// dependency order, dependents first.
func (s *Store) ClearAll() error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning clear transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tableNames {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	return nil
}

// Counts returns the row count of every entity table, keyed by table
// name.
func (s *Store) Counts() (map[string]int64, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(tableNames))
	for _, table := range tableNames {
		var n int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// Column conversion helpers shared by the table files. Zero values map
// to NULL so optional fields survive round-trips as "absent".

// dbTime converts a time to its column value; the zero time is NULL.
func dbTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// scanTime converts a nullable text column back into a time.
func scanTime(v sql.NullString) (time.Time, error) {
	if !v.Valid || v.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", v.String, err)
	}
	return t, nil
}

// dbString converts a string to its column value; empty is NULL.
func dbString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// dbID converts an optional foreign key to its column value; zero or
// negative is NULL.
func dbID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
