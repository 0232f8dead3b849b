package cart

import (
	"github.com/shopspring/decimal"

	"github.com/sbaral/bookpasal-backend/pkg/enums"
)

// ItemKey identifies a line uniquely within a cart. The same title in two
// formats is two separate lines.
type ItemKey struct {
	BookID string           `json:"book_id"`
	Format enums.BookFormat `json:"format"`
}

// LineItem is one purchasable unit held in a cart.
type LineItem struct {
	BookID     string           `json:"book_id"`
	Format     enums.BookFormat `json:"format"`
	Title      string           `json:"title"`
	Author     string           `json:"author"`
	CoverImage string           `json:"cover_image,omitempty"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	Currency   enums.Currency   `json:"currency"`
	Quantity   int              `json:"quantity"`
}

// Key returns the composite identity of the line.
func (li LineItem) Key() ItemKey {
	return ItemKey{BookID: li.BookID, Format: li.Format}
}

// LineTotal is unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// State is the cart aggregate. Total is maintained incrementally on every
// mutation and must always equal Recompute().
type State struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Empty returns a cart with no items and a zero total.
func Empty() State {
	return State{Items: nil, Total: decimal.Zero}
}

// IsEmpty reports whether the cart holds no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line for key, if present.
func (s State) Find(key ItemKey) (LineItem, bool) {
	for _, item := range s.Items {
		if item.Key() == key {
			return item, true
		}
	}
	return LineItem{}, false
}

// RequiresShipping reports whether any line is a physical format.
func (s State) RequiresShipping() bool {
	for _, item := range s.Items {
		if item.Format.IsPhysical() {
			return true
		}
	}
	return false
}

// Recompute sums every line from scratch. Used to assert the incremental
// total never drifts.
func (s State) Recompute() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Action is the tagged mutation applied through Reduce. Exactly one of the
// concrete types below.
type Action interface {
	isAction()
}

// AddItem inserts a line or merges quantity into an existing line with the
// same key.
type AddItem struct {
	Item     LineItem
	Quantity int
}

// UpdateQuantity replaces a line's quantity; values below one remove the line.
type UpdateQuantity struct {
	Key      ItemKey
	Quantity int
}

// RemoveItem deletes a line if present.
type RemoveItem struct {
	Key ItemKey
}

// Clear resets the cart after a successful checkout.
type Clear struct{}

func (AddItem) isAction()        {}
func (UpdateQuantity) isAction() {}
func (RemoveItem) isAction()     {}
func (Clear) isAction()          {}

// Reduce applies one action and returns the next state. Pure: the input state
// is never mutated.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		return reduceAdd(s, a)
	case UpdateQuantity:
		if a.Quantity < 1 {
			return reduceRemove(s, RemoveItem{Key: a.Key})
		}
		return reduceUpdate(s, a)
	case RemoveItem:
		return reduceRemove(s, a)
	case Clear:
		return Empty()
	default:
		return s
	}
}

func reduceAdd(s State, a AddItem) State {
	qty := a.Quantity
	if qty < 1 {
		qty = 1
	}

	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)

	key := a.Item.Key()
	for i := range items {
		if items[i].Key() == key {
			// Merge keeps the stored line's price so the running total can
			// never disagree with the line contents.
			items[i].Quantity += qty
			added := items[i].UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
			return State{Items: items, Total: s.Total.Add(added)}
		}
	}

	line := a.Item
	line.Quantity = qty
	return State{Items: append(items, line), Total: s.Total.Add(line.LineTotal())}
}

func reduceUpdate(s State, a UpdateQuantity) State {
	for i, item := range s.Items {
		if item.Key() != a.Key {
			continue
		}
		delta := item.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity - item.Quantity)))
		items := make([]LineItem, len(s.Items))
		copy(items, s.Items)
		items[i].Quantity = a.Quantity
		return State{Items: items, Total: s.Total.Add(delta)}
	}
	return s
}

func reduceRemove(s State, a RemoveItem) State {
	for i, item := range s.Items {
		if item.Key() != a.Key {
			continue
		}
		items := make([]LineItem, 0, len(s.Items)-1)
		items = append(items, s.Items[:i]...)
		items = append(items, s.Items[i+1:]...)
		return State{Items: items, Total: s.Total.Sub(item.LineTotal())}
	}
	return s
}
