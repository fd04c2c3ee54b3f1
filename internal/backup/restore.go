// Snapshot reader: validates a snapshot archive and applies it back onto
// the entity, blob, and settings stores. This is the defensive half of
// the subsystem: the inbound handle may be streamed and non-seekable, the
// archive may be malformed, and individual entries may be corrupt.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rentledger/rentledger/internal/blob"
	"github.com/rentledger/rentledger/internal/settings"
	"github.com/rentledger/rentledger/internal/store"
)

// Reader restores snapshot archives.
type Reader struct {
	store    *store.Store
	settings *settings.Store
	blobs    *blob.Store
	log      zerolog.Logger
}

// NewReader returns a Reader bound to the given stores.
func NewReader(st *store.Store, se *settings.Store, bl *blob.Store, log zerolog.Logger) *Reader {
	return &Reader{store: st, settings: se, blobs: bl, log: log}
}

// Restore applies a snapshot archive read from src. When clearExisting
// is set, every entity table is emptied in one transaction before any
// archive content is applied.
//
// Fatal: the source cannot be copied, the archive is not a readable ZIP,
// or the store file cannot be replaced. Recoverable (logged, restore
// continues): a failed advisory metadata check, a single document entry
// that fails to extract, a single settings field that fails to apply.
func (r *Reader) Restore(src io.Reader, clearExisting bool) error {
	// Inbound handles may be remote or streamed and not re-readable, so
	// everything works from a local scratch copy.
	scratch, err := r.copyToScratch(src)
	if err != nil {
		return err
	}
	defer os.Remove(scratch)

	archive, err := zip.OpenReader(scratch)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer archive.Close()

	rawMeta := r.readMetadata(archive)
	if rawMeta != nil {
		if err := validateMetadata(rawMeta); err != nil {
			// Advisory only: recovery is attempted even when the metadata
			// check fails.
			r.log.Warn().Err(err).Msg("metadata failed validation, continuing restore")
		}
	} else {
		r.log.Warn().Msg("archive has no metadata entry, continuing restore")
	}

	if clearExisting {
		if err := r.store.ClearAll(); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}
	}

	for _, entry := range archive.File {
		name := entry.Name
		switch {
		case name == MetadataEntryName:
			// Already consumed.
		case name == store.DBFileName:
			if err := r.restoreStoreFile(entry); err != nil {
				return err
			}
		case strings.HasPrefix(name, DocumentsPrefix):
			// One corrupt document must not abort the whole restore.
			if err := r.restoreDocument(entry); err != nil {
				r.log.Warn().Str("entry", name).Err(err).Msg("skipping document entry")
			}
		default:
			r.log.Debug().Str("entry", name).Msg("ignoring unknown archive entry")
		}
	}

	if rawMeta != nil {
		r.applySettings(extractSettings(rawMeta))
	}
	return nil
}

// copyToScratch drains src into a uniquely named temp file and returns
// its path.
func (r *Reader) copyToScratch(src io.Reader) (string, error) {
	name := filepath.Join(os.TempDir(), fmt.Sprintf("rentledger-restore-%s.zip", uuid.NewString()))
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating scratch file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("copying source to scratch: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("closing scratch file: %w", err)
	}
	return name, nil
}

// readMetadata returns the raw metadata entry, or nil when the archive
// has none or it cannot be read.
func (r *Reader) readMetadata(archive *zip.ReadCloser) []byte {
	for _, entry := range archive.File {
		if entry.Name != MetadataEntryName {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			r.log.Warn().Err(err).Msg("opening metadata entry")
			return nil
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			r.log.Warn().Err(err).Msg("reading metadata entry")
			return nil
		}
		return raw
	}
	return nil
}

// restoreStoreFile replaces the entity store's backing file with the
// archive copy. The live handle is closed first, the current file is
// preserved as a .backup sibling for crash safety, and the handle is
// reopened on the restored file. Any failure here is fatal.
func (r *Reader) restoreStoreFile(entry *zip.File) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening database entry: %w", err)
	}
	defer rc.Close()

	dbPath := r.store.Path()
	if err := r.store.Close(); err != nil {
		return fmt.Errorf("closing store before restore: %w", err)
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := copyFile(dbPath, dbPath+".backup"); err != nil {
			return fmt.Errorf("preserving current store file: %w", err)
		}
	}

	dst, err := os.Create(dbPath)
	if err != nil {
		return fmt.Errorf("creating store file: %w", err)
	}
	if _, err := io.Copy(dst, rc); err != nil {
		dst.Close()
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing store file: %w", err)
	}

	if err := r.store.Reopen(); err != nil {
		return fmt.Errorf("reopening store: %w", err)
	}
	return nil
}

// restoreDocument writes one documents/ entry into the blob store at its
// relative path.
func (r *Reader) restoreDocument(entry *zip.File) error {
	rel := strings.TrimPrefix(entry.Name, DocumentsPrefix)
	if rel == "" || strings.HasSuffix(rel, "/") {
		return nil // directory entry
	}
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening entry: %w", err)
	}
	defer rc.Close()
	return r.blobs.Save(rel, rc)
}

// applySettings applies each extracted settings field individually; a
// missing field leaves that setting untouched and a failed write is
// logged without failing the restore.
func (r *Reader) applySettings(s extractedSettings) {
	if s.Currency != nil {
		if err := r.settings.SetCurrency(*s.Currency); err != nil {
			r.log.Warn().Err(err).Msg("restoring currency setting")
		}
	}
	if s.AppLock != nil {
		if err := r.settings.SetAppLock(*s.AppLock); err != nil {
			r.log.Warn().Err(err).Msg("restoring app lock setting")
		}
	}
	if s.PaymentMethods != nil {
		if methods := splitMethods(*s.PaymentMethods); len(methods) > 0 {
			if err := r.settings.SetPaymentMethods(methods); err != nil {
				r.log.Warn().Err(err).Msg("restoring payment methods setting")
			}
		}
	}
}

// copyFile copies src to dst, replacing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
