package backup

import "testing"

func TestValidateMetadataLenient(t *testing.T) {
	t.Run("version only", func(t *testing.T) {
		if err := validateMetadata([]byte(`{"version": 2}`)); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	t.Run("backupDate only", func(t *testing.T) {
		if err := validateMetadata([]byte(`{"backupDate": 1700000000000}`)); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	t.Run("neither key", func(t *testing.T) {
		if err := validateMetadata([]byte(`{"appVersion": "1.0"}`)); err == nil {
			t.Fatal("expected validation failure")
		}
	})

	t.Run("not an object", func(t *testing.T) {
		if err := validateMetadata([]byte(`[1, 2, 3]`)); err == nil {
			t.Fatal("expected validation failure")
		}
	})
}

func TestExtractSettingsPerField(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		raw := []byte(`{"version":2,"settings":{"currency":"EUR","appLock":true,"paymentMethods":"Cash,Wire"}}`)
		got := extractSettings(raw)
		if got.Currency == nil || *got.Currency != "EUR" {
			t.Fatalf("currency not extracted: %v", got.Currency)
		}
		if got.AppLock == nil || !*got.AppLock {
			t.Fatalf("appLock not extracted: %v", got.AppLock)
		}
		if got.PaymentMethods == nil || *got.PaymentMethods != "Cash,Wire" {
			t.Fatalf("paymentMethods not extracted: %v", got.PaymentMethods)
		}
	})

	t.Run("one malformed field leaves the others intact", func(t *testing.T) {
		raw := []byte(`{"settings":{"currency":12,"appLock":true,"paymentMethods":"Cash"}}`)
		got := extractSettings(raw)
		if got.Currency != nil {
			t.Fatal("malformed currency should be absent")
		}
		if got.AppLock == nil || !*got.AppLock {
			t.Fatal("appLock should still extract")
		}
		if got.PaymentMethods == nil {
			t.Fatal("paymentMethods should still extract")
		}
	})

	t.Run("no settings object", func(t *testing.T) {
		got := extractSettings([]byte(`{"version":2}`))
		if got.Currency != nil || got.AppLock != nil || got.PaymentMethods != nil {
			t.Fatal("expected nothing extracted")
		}
	})

	t.Run("garbage input", func(t *testing.T) {
		got := extractSettings([]byte(`not json`))
		if got.Currency != nil || got.AppLock != nil || got.PaymentMethods != nil {
			t.Fatal("expected nothing extracted")
		}
	})
}

func TestSplitMethods(t *testing.T) {
	got := splitMethods("Cash, Cheque ,,Bank Transfer")
	want := []string{"Cash", "Cheque", "Bank Transfer"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
