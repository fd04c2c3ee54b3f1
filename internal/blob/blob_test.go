package blob

import (
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
)

func TestSaveOpenDelete(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Save("tenant/1/lease.pdf", strings.NewReader("lease bytes")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := s.Open("tenant/1/lease.pdf")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "lease bytes" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := s.Delete("tenant/1/lease.pdf"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Open("tenant/1/lease.pdf"); err == nil {
		t.Fatal("expected open to fail after delete")
	}

	// Deleting again is not an error.
	if err := s.Delete("tenant/1/lease.pdf"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestWalkListsRegularFilesOnly(t *testing.T) {
	s := NewStore(t.TempDir())
	files := []string{"a.txt", "nested/b.txt", "nested/deep/c.txt"}
	for _, f := range files {
		if err := s.Save(f, strings.NewReader(f)); err != nil {
			t.Fatal(err)
		}
	}

	var seen []string
	err := s.Walk(func(rel, full string) error {
		seen = append(seen, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	sort.Strings(seen)
	if len(seen) != len(files) {
		t.Fatalf("expected %d files, got %v", len(files), seen)
	}
	for i := range files {
		sorted := append([]string(nil), files...)
		sort.Strings(sorted)
		if seen[i] != sorted[i] {
			t.Fatalf("expected %v, got %v", sorted, seen)
		}
	}
}

func TestWalkMissingRootIsEmpty(t *testing.T) {
	s := NewStore(t.TempDir() + "/nonexistent")
	count := 0
	err := s.Walk(func(rel, full string) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("Walk of missing root failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 files, got %d", count)
	}
}

func TestPathTraversalRejected(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, bad := range []string{"", "../escape.txt", "a/../../escape.txt", "/abs.txt"} {
		err := s.Save(bad, strings.NewReader("x"))
		if !errors.Is(err, ErrPathOutsideRoot) {
			t.Fatalf("expected ErrPathOutsideRoot for %q, got %v", bad, err)
		}
	}
}
