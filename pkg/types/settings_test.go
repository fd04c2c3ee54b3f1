package types

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", s.Currency)
	}
	if s.AppLock {
		t.Fatal("expected app lock disabled by default")
	}
	if len(s.PaymentMethods) != 5 {
		t.Fatalf("expected 5 default payment methods, got %d", len(s.PaymentMethods))
	}
}

func TestDefaultPaymentMethodsIsCopy(t *testing.T) {
	a := DefaultPaymentMethods()
	a[0] = "changed"
	b := DefaultPaymentMethods()
	if b[0] == "changed" {
		t.Fatal("DefaultPaymentMethods must return a fresh copy")
	}
}
