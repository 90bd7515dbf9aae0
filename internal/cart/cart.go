package cart

// Item is one selected product. The ID matches a catalog product ID and at
// most one item per ID lives in a cart.
type Item struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	PriceCents         int64  `json:"price_cents"`
	Image              string `json:"image"`
	OriginalPriceCents int64  `json:"original_price_cents,omitempty"`
}

// Cart is the summary payload handlers return. TotalCents and ItemCount are
// always recomputed from Items, never carried as counters.
type Cart struct {
	ID         string `json:"id"`
	Items      []Item `json:"items"`
	TotalCents int64  `json:"total_cents"`
	ItemCount  int    `json:"item_count"`
}

func newCart(id string, items []Item) Cart {
	if items == nil {
		items = []Item{}
	}
	return Cart{
		ID:         id,
		Items:      items,
		TotalCents: totalCents(items),
		ItemCount:  len(items),
	}
}

func totalCents(items []Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.PriceCents
	}
	return sum
}

// addItem appends it unless an item with the same ID exists. First write
// wins: a later add never updates the stored name, price or image. The
// returned bool reports whether the slice changed.
func addItem(items []Item, it Item) ([]Item, bool) {
	for _, have := range items {
		if have.ID == it.ID {
			return items, false
		}
	}
	return append(items, it), true
}

func removeItem(items []Item, id string) ([]Item, bool) {
	for i, have := range items {
		if have.ID == id {
			out := make([]Item, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

func containsItem(items []Item, id string) bool {
	for _, have := range items {
		if have.ID == id {
			return true
		}
	}
	return false
}
