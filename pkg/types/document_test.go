package types

import "testing"

func TestParseEntityKind(t *testing.T) {
	for _, kind := range EntityKinds {
		got, err := ParseEntityKind(string(kind))
		if err != nil {
			t.Fatalf("ParseEntityKind(%q) failed: %v", kind, err)
		}
		if got != kind {
			t.Fatalf("expected %q, got %q", kind, got)
		}
	}

	if _, err := ParseEntityKind("VENDOR"); err != ErrInvalidData {
		t.Fatalf("expected ErrInvalidData for VENDOR, got %v", err)
	}
	if _, err := ParseEntityKind(""); err != ErrInvalidData {
		t.Fatalf("expected ErrInvalidData for empty kind, got %v", err)
	}
}

func TestDocumentValidate(t *testing.T) {
	doc := &Document{
		DocumentName: "lease.pdf",
		FilePath:     "tenant/1/lease.pdf",
		EntityType:   KindTenant,
		EntityID:     1,
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}

	doc.EntityType = "UNKNOWN"
	if err := doc.Validate(); err != ErrInvalidData {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}
