package checkout

import (
	"strings"
	"testing"
)

func TestNewOrderNumberShape(t *testing.T) {
	id := NewOrderNumber()
	if !strings.HasPrefix(id, "BP") {
		t.Fatalf("expected BP prefix, got %q", id)
	}
	// 2 prefix + 13 digit millisecond timestamp + 5 random chars.
	if len(id) != 20 {
		t.Fatalf("expected length 20, got %d (%q)", len(id), id)
	}
	for _, r := range id[2:] {
		if !strings.ContainsRune(orderNumberAlphabet, r) {
			t.Fatalf("unexpected character %q in %q", r, id)
		}
	}
}

func TestNewOrderNumberUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewOrderNumber()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate order number %q after %d draws", id, i)
		}
		seen[id] = struct{}{}
	}
}
