package types

import "strings"

// Address is the shipping destination captured at checkout. Stored as jsonb;
// nil on fully digital orders.
type Address struct {
	Province string `json:"province"`
	District string `json:"district"`
	Street   string `json:"street"`
}

// IsComplete reports whether every shipping field is filled.
func (a Address) IsComplete() bool {
	return strings.TrimSpace(a.Province) != "" &&
		strings.TrimSpace(a.District) != "" &&
		strings.TrimSpace(a.Street) != ""
}

// String renders the address as a single mail-friendly line.
func (a Address) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.District, a.Province} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}
