// Package settings implements the key-value settings store backing the
// currency, app-lock, and payment-method preferences.
//
// Each key is read and written independently: a failure for one key never
// affects the others, and every getter returns a usable default alongside
// its error.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rentledger/rentledger/pkg/types"
)

// FileName is the settings file created beside the entity store.
const FileName = "settings.json"

// Keys in the settings file.
const (
	keyCurrency       = "currency"
	keyAppLock        = "appLock"
	keyPaymentMethods = "paymentMethods"
)

// Store reads and writes settings in a single JSON file. All operations
// are safe for concurrent use within one process.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a Store backed by dataDir/settings.json. The file is
// created lazily on first write.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, FileName)}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Currency returns the configured ISO currency code. On any failure the
// default is returned together with the error.
func (s *Store) Currency() (string, error) {
	var v string
	if err := s.get(keyCurrency, &v); err != nil {
		return types.DefaultCurrency, err
	}
	if v == "" {
		return types.DefaultCurrency, nil
	}
	return v, nil
}

// SetCurrency stores the ISO currency code.
func (s *Store) SetCurrency(code string) error {
	return s.set(keyCurrency, code)
}

// AppLock returns whether the app-lock gate is enabled. On any failure
// the default is returned together with the error.
func (s *Store) AppLock() (bool, error) {
	var v bool
	if err := s.get(keyAppLock, &v); err != nil {
		return types.DefaultAppLock, err
	}
	return v, nil
}

// SetAppLock stores the app-lock flag.
func (s *Store) SetAppLock(enabled bool) error {
	return s.set(keyAppLock, enabled)
}

// PaymentMethods returns the ordered payment-method labels. On any
// failure, or when the key was never written, the fixed default list is
// returned.
func (s *Store) PaymentMethods() ([]string, error) {
	var v []string
	if err := s.get(keyPaymentMethods, &v); err != nil {
		return types.DefaultPaymentMethods(), err
	}
	if len(v) == 0 {
		return types.DefaultPaymentMethods(), nil
	}
	return v, nil
}

// SetPaymentMethods stores the ordered payment-method labels.
func (s *Store) SetPaymentMethods(methods []string) error {
	return s.set(keyPaymentMethods, methods)
}

// get loads the file and unmarshals a single key into out. A missing
// file or missing key leaves out at its zero value and returns nil; only
// real IO or parse failures are errors.
func (s *Store) get(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.load()
	if err != nil {
		return err
	}
	val, ok := raw[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(val, out); err != nil {
		return fmt.Errorf("parsing setting %s: %w", key, err)
	}
	return nil
}

// set rewrites the file with the given key replaced. Other keys are
// preserved; if the existing file is unreadable it is treated as empty so
// one corrupt key cannot block writes forever.
func (s *Store) set(key string, val any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.load()
	if err != nil {
		raw = map[string]json.RawMessage{}
	}
	encoded, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding setting %s: %w", key, err)
	}
	raw[key] = encoded

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings file: %w", err)
	}
	return s.writeAtomic(data)
}

// load reads the whole settings file into a key map. A missing file is
// an empty map, not an error.
func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return raw, nil
}

// writeAtomic writes the settings file using the temp-file, fsync,
// rename pattern.
func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
