package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentledger/rentledger/pkg/types"
)

func (e *testEnv) writer() *Writer {
	return NewWriter(e.store, e.settings, e.blobs, "test", zerolog.Nop())
}

func (e *testEnv) reader() *Reader {
	return NewReader(e.store, e.settings, e.blobs, zerolog.Nop())
}

func TestWriteArchiveLayout(t *testing.T) {
	src := newTestEnv(t)
	seedGraph(t, src)
	if err := src.settings.SetCurrency("EUR"); err != nil {
		t.Fatalf("setting currency: %v", err)
	}
	if err := src.blobs.Save("leases/unit-3.pdf", strings.NewReader("lease bytes")); err != nil {
		t.Fatalf("saving blob: %v", err)
	}

	var buf bytes.Buffer
	if err := src.writer().WriteArchive(&buf); err != nil {
		t.Fatalf("writing archive: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading archive back: %v", err)
	}

	if len(zr.File) == 0 || zr.File[0].Name != MetadataEntryName {
		t.Fatalf("first entry = %q, want %s", zr.File[0].Name, MetadataEntryName)
	}

	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["rentledger.db"] {
		t.Error("archive is missing the database entry")
	}
	if !names[DocumentsPrefix+"leases/unit-3.pdf"] {
		t.Error("archive is missing the document entry")
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("opening metadata: %v", err)
	}
	defer rc.Close()
	var meta Metadata
	if err := json.NewDecoder(rc).Decode(&meta); err != nil {
		t.Fatalf("decoding metadata: %v", err)
	}
	if meta.Version != SnapshotVersion {
		t.Errorf("metadata version = %d, want %d", meta.Version, SnapshotVersion)
	}
	if meta.BackupDate == 0 {
		t.Error("metadata backup date is unset")
	}
	if meta.Settings.Currency != "EUR" {
		t.Errorf("metadata currency = %q, want EUR", meta.Settings.Currency)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	src := newTestEnv(t)
	seedGraph(t, src)
	if err := src.settings.SetCurrency("EUR"); err != nil {
		t.Fatalf("setting currency: %v", err)
	}
	if err := src.blobs.Save("leases/unit-3.pdf", strings.NewReader("lease bytes")); err != nil {
		t.Fatalf("saving blob: %v", err)
	}

	var buf bytes.Buffer
	if err := src.writer().WriteArchive(&buf); err != nil {
		t.Fatalf("writing archive: %v", err)
	}

	dst := newTestEnv(t)
	if _, err := dst.store.InsertOwner(&types.Owner{Name: "Stale", Mobile: "555-9999"}); err != nil {
		t.Fatalf("seeding destination: %v", err)
	}

	if err := dst.reader().Restore(bytes.NewReader(buf.Bytes()), false); err != nil {
		t.Fatalf("restoring: %v", err)
	}

	// The database file is replaced verbatim, so the destination holds
	// exactly the source rows under the source ids.
	srcOwners, _ := src.store.ListOwners()
	dstOwners, err := dst.store.ListOwners()
	if err != nil {
		t.Fatalf("listing owners after restore: %v", err)
	}
	if len(dstOwners) != 1 || dstOwners[0].ID != srcOwners[0].ID || dstOwners[0].Name != srcOwners[0].Name {
		t.Errorf("owners after restore = %+v, want %+v", dstOwners, srcOwners)
	}

	counts, err := dst.store.Counts()
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	for _, table := range []string{"owners", "buildings", "tenants", "payments", "documents", "vendors", "expenses"} {
		if counts[table] != 1 {
			t.Errorf("%s: %d rows after restore, want 1", table, counts[table])
		}
	}

	f, err := dst.blobs.Open("leases/unit-3.pdf")
	if err != nil {
		t.Fatalf("opening restored blob: %v", err)
	}
	got, _ := io.ReadAll(f)
	f.Close()
	if string(got) != "lease bytes" {
		t.Errorf("restored blob = %q", got)
	}

	currency, err := dst.settings.Currency()
	if err != nil || currency != "EUR" {
		t.Errorf("currency after restore = %q, %v; want EUR", currency, err)
	}

	// The pre-restore database is preserved as a sibling for crash safety.
	if _, err := os.Stat(dst.store.Path() + ".backup"); err != nil {
		t.Errorf("expected .backup sibling of replaced database: %v", err)
	}
}

func TestEmptyStoreRoundTrip(t *testing.T) {
	src := newTestEnv(t)

	var buf bytes.Buffer
	if err := src.writer().WriteArchive(&buf); err != nil {
		t.Fatalf("empty store should still export: %v", err)
	}

	dst := newTestEnv(t)
	if err := dst.reader().Restore(bytes.NewReader(buf.Bytes()), false); err != nil {
		t.Fatalf("restoring empty archive: %v", err)
	}

	counts, err := dst.store.Counts()
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	for table, n := range counts {
		if n != 0 {
			t.Errorf("%s: %d rows after empty round trip, want 0", table, n)
		}
	}
}

func TestRestoreInvalidArchive(t *testing.T) {
	dst := newTestEnv(t)
	if _, err := dst.store.InsertOwner(&types.Owner{Name: "Kept", Mobile: "555-0001"}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	err := dst.reader().Restore(strings.NewReader("this is not a zip archive"), true)
	if err == nil {
		t.Fatal("expected an error for a malformed archive")
	}

	// Nothing was applied: the archive failed to open before any clearing
	// or extraction.
	owners, err := dst.store.ListOwners()
	if err != nil {
		t.Fatalf("store unusable after failed restore: %v", err)
	}
	if len(owners) != 1 || owners[0].Name != "Kept" {
		t.Errorf("existing data disturbed by failed restore: %+v", owners)
	}
}

func TestRestoreArchiveWithoutMetadata(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create(DocumentsPrefix + "notes/todo.txt")
	if err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	if _, err := entry.Write([]byte("fix the gate")); err != nil {
		t.Fatalf("writing entry: %v", err)
	}
	if _, err := zw.Create("stray.txt"); err != nil {
		t.Fatalf("creating stray entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}

	dst := newTestEnv(t)
	if err := dst.reader().Restore(bytes.NewReader(buf.Bytes()), false); err != nil {
		t.Fatalf("metadata-less archive should restore: %v", err)
	}

	f, err := dst.blobs.Open("notes/todo.txt")
	if err != nil {
		t.Fatalf("document not extracted: %v", err)
	}
	got, _ := io.ReadAll(f)
	f.Close()
	if string(got) != "fix the gate" {
		t.Errorf("extracted blob = %q", got)
	}
}

func TestWriterExportPlacesArchive(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	src := newTestEnv(t)
	seedGraph(t, src)

	path, err := src.writer().Export()
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(home, "Downloads") {
		t.Errorf("archive written to %s, want the downloads directory", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "rentledger-backup-") || !strings.HasSuffix(path, ".zip") {
		t.Errorf("unexpected archive name %s", filepath.Base(path))
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("exported file is not a readable archive: %v", err)
	}
	zr.Close()
}

func TestWriterExportFallsBackWhenDownloadsUnusable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// A regular file in the way makes the downloads directory unusable,
	// so the archive must land under the data directory instead.
	if err := os.WriteFile(filepath.Join(home, "Downloads"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := newTestEnv(t)
	seedGraph(t, src)

	path, err := src.writer().Export()
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(src.dataDir, "exports") {
		t.Errorf("archive written to %s, want the exports fallback", path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("exported file is not a readable archive: %v", err)
	}
	zr.Close()
}
