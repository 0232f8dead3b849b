package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/sbaral/bookpasal-backend/internal/cart"
)

// Totals is the money breakdown rendered at checkout. Tax is always zero in
// the current scope.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// ShippingPolicy prices the shipping line for a cart. The rate table is a
// business configuration concern, so it is injected.
type ShippingPolicy interface {
	Cost(state cart.State) decimal.Decimal
}

// FlatRatePolicy charges one configured rate per physical order.
type FlatRatePolicy struct {
	Rate decimal.Decimal
}

func (p FlatRatePolicy) Cost(cart.State) decimal.Decimal {
	return p.Rate
}

// ComputeTotals derives the order money fields from the live cart. Shipping
// is only applied when the cart needs it.
func ComputeTotals(state cart.State, shippingRequired bool, policy ShippingPolicy) Totals {
	subtotal := state.Total

	shipping := decimal.Zero
	if shippingRequired && policy != nil {
		shipping = policy.Cost(state)
	}

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		GrandTotal:   subtotal.Add(shipping),
	}
}
