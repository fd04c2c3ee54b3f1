// Shared helpers for rentledger CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rentledger/rentledger/internal/backup"
	"github.com/rentledger/rentledger/internal/blob"
	"github.com/rentledger/rentledger/internal/settings"
	"github.com/rentledger/rentledger/internal/store"
	"github.com/rentledger/rentledger/pkg/types"
)

// appEnv bundles the opened stores for one command invocation. The caller
// must defer Close().
type appEnv struct {
	store    *store.Store
	settings *settings.Store
	blobs    *blob.Store
}

// openEnv resolves the data directory and opens the stores rooted in it.
func openEnv() (*appEnv, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	st, err := store.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &appEnv{
		store:    st,
		settings: settings.NewStore(dataDir),
		blobs:    blob.NewStore(dataDir),
	}, nil
}

func (e *appEnv) Close() error {
	return e.store.Close()
}

// service returns the backup service bound to this environment's stores.
func (e *appEnv) service() *backup.Service {
	return backup.NewService(e.store, e.settings, e.blobs, appVersion, logger)
}

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, arg)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD flag value; empty means the zero time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return t.UTC(), nil
}

// parseMonth parses a YYYY-MM flag value; empty means the zero time.
func parseMonth(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", value)
	}
	return t.UTC(), nil
}

// nowUTC returns the current time truncated to seconds in UTC.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// printJSON prints v as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// formatDate renders a timestamp for table output; the zero time renders
// as a dash.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// truncate shortens a label for table output. Counts runes, not bytes,
// so multi-byte names are never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// printLines prints tabwriter output with trailing whitespace trimmed
// from each line.
func printLines(output string) {
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
}
