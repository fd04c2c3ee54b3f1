// Snapshot writer: serializes the entity store file, the blob store, and
// the settings into one ZIP archive.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentledger/rentledger/internal/blob"
	"github.com/rentledger/rentledger/internal/paths"
	"github.com/rentledger/rentledger/internal/settings"
	"github.com/rentledger/rentledger/internal/store"
)

// Writer produces snapshot archives.
type Writer struct {
	store      *store.Store
	settings   *settings.Store
	blobs      *blob.Store
	appVersion string
	log        zerolog.Logger
}

// NewWriter returns a Writer bound to the given stores.
func NewWriter(st *store.Store, se *settings.Store, bl *blob.Store, appVersion string, log zerolog.Logger) *Writer {
	return &Writer{store: st, settings: se, blobs: bl, appVersion: appVersion, log: log}
}

// Export builds a snapshot archive and places it in the user-visible
// downloads directory, falling back to the app-private exports folder.
// It returns the final archive path.
func (w *Writer) Export() (string, error) {
	name := fmt.Sprintf("rentledger-backup-%s.zip", time.Now().UTC().Format("20060102-150405"))

	f, err := paths.CreateExportFile(w.store.DataDir(), name)
	if err != nil {
		return "", fmt.Errorf("creating archive %s: %w", name, err)
	}
	dest := f.Name()
	if err := w.WriteArchive(f); err != nil {
		f.Close()
		os.Remove(dest)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("closing archive: %w", err)
	}

	w.log.Info().Str("path", dest).Msg("snapshot written")
	return dest, nil
}

// WriteArchive writes the snapshot to dest. Entry order: metadata.json
// first so readers can inspect it before committing to extraction, then
// the raw entity store file, then every blob store file under the
// documents/ prefix.
func (w *Writer) WriteArchive(dest io.Writer) error {
	zw := zip.NewWriter(dest)

	meta := Metadata{
		Version:    SnapshotVersion,
		BackupDate: time.Now().UnixMilli(),
		AppVersion: w.appVersion,
		Settings:   w.readSettings(),
	}
	encoded, err := encodeMetadata(meta)
	if err != nil {
		return err
	}
	entry, err := zw.Create(MetadataEntryName)
	if err != nil {
		return fmt.Errorf("creating metadata entry: %w", err)
	}
	if _, err := entry.Write(encoded); err != nil {
		return fmt.Errorf("writing metadata entry: %w", err)
	}

	if err := w.writeStoreFile(zw); err != nil {
		return err
	}
	if err := w.writeBlobs(zw); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// writeStoreFile streams the entity store's backing file verbatim into
// the archive. A store file that does not exist yet is tolerated; any
// other read failure is fatal to the export.
func (w *Writer) writeStoreFile(zw *zip.Writer) error {
	src, err := os.Open(w.store.Path())
	if err != nil {
		if os.IsNotExist(err) {
			w.log.Warn().Str("path", w.store.Path()).Msg("store file missing, snapshot has no database entry")
			return nil
		}
		return fmt.Errorf("opening store file: %w", err)
	}
	defer src.Close()

	entry, err := zw.Create(store.DBFileName)
	if err != nil {
		return fmt.Errorf("creating database entry: %w", err)
	}
	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("copying store file: %w", err)
	}
	return nil
}

// writeBlobs walks the blob store and writes every regular file under
// the documents/ prefix, path-preserving.
func (w *Writer) writeBlobs(zw *zip.Writer) error {
	return w.blobs.Walk(func(relPath, fullPath string) error {
		src, err := os.Open(fullPath)
		if err != nil {
			return fmt.Errorf("opening document %s: %w", relPath, err)
		}
		defer src.Close()

		entry, err := zw.Create(DocumentsPrefix + relPath)
		if err != nil {
			return fmt.Errorf("creating document entry %s: %w", relPath, err)
		}
		if _, err := io.Copy(entry, src); err != nil {
			return fmt.Errorf("copying document %s: %w", relPath, err)
		}
		return nil
	})
}

// readSettings collects the three settings independently, substituting
// the documented default for any field that fails to read.
func (w *Writer) readSettings() settingsJSON {
	currency, err := w.settings.Currency()
	if err != nil {
		w.log.Warn().Err(err).Msg("reading currency for snapshot, using default")
	}
	appLock, err := w.settings.AppLock()
	if err != nil {
		w.log.Warn().Err(err).Msg("reading app lock for snapshot, using default")
	}
	methods, err := w.settings.PaymentMethods()
	if err != nil {
		w.log.Warn().Err(err).Msg("reading payment methods for snapshot, using defaults")
	}
	return settingsJSON{
		Currency:       currency,
		AppLock:        appLock,
		PaymentMethods: joinMethods(methods),
	}
}
