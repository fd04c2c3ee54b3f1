package types

// Settings defaults applied when a value has never been written or a
// read fails.
const (
	DefaultCurrency = "USD"
	DefaultAppLock  = false
)

// DefaultPaymentMethods returns the fixed default list of payment method
// labels. A fresh copy is returned so callers can mutate it freely.
func DefaultPaymentMethods() []string {
	return []string{"Cash", "Cheque", "Bank Transfer", "UPI", "Card"}
}

// Settings holds the three process-wide user preferences.
type Settings struct {
	Currency       string   // ISO currency code
	AppLock        bool     // whether the app-lock gate is enabled
	PaymentMethods []string // ordered list of payment method labels
}

// DefaultSettings returns a Settings populated with every default.
func DefaultSettings() Settings {
	return Settings{
		Currency:       DefaultCurrency,
		AppLock:        DefaultAppLock,
		PaymentMethods: DefaultPaymentMethods(),
	}
}
