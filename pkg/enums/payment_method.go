package enums

import "fmt"

// PaymentMethod tags how the buyer settled the order out-of-band.
type PaymentMethod string

const (
	PaymentMethodEsewa          PaymentMethod = "esewa"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodEsewa,
	PaymentMethodBankTransfer,
	PaymentMethodCashOnDelivery,
}

// IsValid reports whether the value matches the canonical payment method enum.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts the raw string to PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
