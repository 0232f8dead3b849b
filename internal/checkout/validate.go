package checkout

import (
	"strings"

	"github.com/sbaral/bookpasal-backend/pkg/enums"
)

// Fields is the user-entered contact/address/payment data at checkout.
type Fields struct {
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	Province      string
	District      string
	Street        string
	PaymentMethod enums.PaymentMethod
	TransactionID string
}

// FieldError names one missing or invalid checkout field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidateFields collects every failure instead of stopping at the first.
// Ordering is deterministic: contact fields, then address fields when
// shipping is required, then the transaction reference.
func ValidateFields(f Fields, shippingRequired bool) []FieldError {
	var failures []FieldError

	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			failures = append(failures, FieldError{Field: field, Reason: "is required"})
		}
	}

	required("email", f.Email)
	required("first_name", f.FirstName)
	required("last_name", f.LastName)
	required("phone", f.Phone)

	if shippingRequired {
		required("province", f.Province)
		required("district", f.District)
		required("street", f.Street)
	}

	if !f.PaymentMethod.IsValid() {
		failures = append(failures, FieldError{Field: "payment_method", Reason: "is invalid"})
	}
	required("transaction_id", f.TransactionID)

	return failures
}
