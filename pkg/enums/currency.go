package enums

import "fmt"

// Currency is the ISO-4217 code carried on prices and orders.
type Currency string

const (
	CurrencyNPR Currency = "NPR"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = []Currency{
	CurrencyNPR,
	CurrencyUSD,
}

// IsValid reports whether the value matches a supported currency.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCurrency converts the raw string to Currency.
func ParseCurrency(value string) (Currency, error) {
	for _, candidate := range validCurrencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
