package types

import "testing"

func TestPaymentIsPending(t *testing.T) {
	t.Run("partial with positive pending amount", func(t *testing.T) {
		p := &Payment{PaymentType: PaymentPartial, PendingAmount: 50}
		if !p.IsPending() {
			t.Fatal("expected pending")
		}
	})

	t.Run("partial with zero pending amount", func(t *testing.T) {
		p := &Payment{PaymentType: PaymentPartial, PendingAmount: 0}
		if p.IsPending() {
			t.Fatal("expected not pending")
		}
	})

	t.Run("full with positive pending amount", func(t *testing.T) {
		p := &Payment{PaymentType: PaymentFull, PendingAmount: 50}
		if p.IsPending() {
			t.Fatal("expected not pending")
		}
	})

	t.Run("full with zero pending amount", func(t *testing.T) {
		p := &Payment{PaymentType: PaymentFull}
		if p.IsPending() {
			t.Fatal("expected not pending")
		}
	})
}

func TestPaymentValidate(t *testing.T) {
	t.Run("missing tenant", func(t *testing.T) {
		p := &Payment{PaymentType: PaymentFull}
		if err := p.Validate(); err != ErrInvalidData {
			t.Fatalf("expected ErrInvalidData, got %v", err)
		}
	})

	t.Run("unknown payment type", func(t *testing.T) {
		p := &Payment{TenantID: 1, PaymentType: "INSTALLMENT"}
		if err := p.Validate(); err != ErrInvalidData {
			t.Fatalf("expected ErrInvalidData, got %v", err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		p := &Payment{TenantID: 1, PaymentType: PaymentPartial}
		if err := p.Validate(); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}
