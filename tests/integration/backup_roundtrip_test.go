// End-to-end backup round-trip through the CLI: seed data, export a
// snapshot archive, restore it into a fresh environment, and verify the
// data and settings survive.
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	src := newCLIEnv(t)

	src.mustRun(t, "owner", "add", "--name", "Asha Rao", "--mobile", "555-0100")
	src.mustRun(t, "building", "add", "--name", "Maple Court", "--owner", "1", "--type", "RESIDENTIAL")
	src.mustRun(t, "tenant", "add", "--name", "Ben Okafor", "--mobile", "555-0101", "--building", "1", "--rent", "1200")
	src.mustRun(t, "payment", "add", "--tenant", "1", "--amount", "1200", "--month", "2026-03")
	src.mustRun(t, "settings", "set", "currency", "EUR")

	// Attach a document so the archive carries a blob entry.
	file := filepath.Join(t.TempDir(), "lease.pdf")
	require.NoError(t, os.WriteFile(file, []byte("lease bytes"), 0o644))
	src.mustRun(t, "document", "add", "--file", file, "--entity-type", "TENANT", "--entity-id", "1")

	var exported struct {
		Path string `json:"path"`
	}
	out := src.mustRun(t, "--json", "export")
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	require.FileExists(t, exported.Path)
	assert.True(t, strings.HasPrefix(exported.Path, src.Home), "archive should land under the test home")

	dst := newCLIEnv(t)
	dst.mustRun(t, "owner", "add", "--name", "Stale", "--mobile", "555-9999")
	dst.mustRun(t, "import", exported.Path)

	var owners []struct {
		ID   int64
		Name string
	}
	out = dst.mustRun(t, "--json", "owner", "list")
	require.NoError(t, json.Unmarshal([]byte(out), &owners))
	require.Len(t, owners, 1, "snapshot restore replaces the database wholesale")
	assert.Equal(t, "Asha Rao", owners[0].Name)

	var tenants []struct {
		Name       string
		BuildingID int64
		Rent       float64
	}
	out = dst.mustRun(t, "--json", "tenant", "list")
	require.NoError(t, json.Unmarshal([]byte(out), &tenants))
	require.Len(t, tenants, 1)
	assert.Equal(t, "Ben Okafor", tenants[0].Name)
	assert.Equal(t, float64(1200), tenants[0].Rent)

	out = dst.mustRun(t, "settings", "get", "currency")
	assert.Equal(t, "EUR", strings.TrimSpace(out))

	var documents []struct {
		DocumentName string
		FilePath     string
	}
	out = dst.mustRun(t, "--json", "document", "list")
	require.NoError(t, json.Unmarshal([]byte(out), &documents))
	require.Len(t, documents, 1)

	restored := filepath.Join(dst.DataDir, "documents", filepath.FromSlash(documents[0].FilePath))
	content, err := os.ReadFile(restored)
	require.NoError(t, err, "document file should be extracted into the new data dir")
	assert.Equal(t, "lease bytes", string(content))
}

func TestImportRejectsMissingFile(t *testing.T) {
	env := newCLIEnv(t)
	_, stderr, code := env.run(t, "import", filepath.Join(t.TempDir(), "nope.zip"))
	assert.NotEqual(t, 0, code)
	assert.Contains(t, stderr, "import failed")
}

func TestExportOnEmptyStore(t *testing.T) {
	env := newCLIEnv(t)

	// Opening any command creates the database file, so even a fresh
	// environment exports a valid archive.
	out := env.mustRun(t, "export")
	assert.Contains(t, out, "Backup written to")
}
