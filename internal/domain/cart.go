package domain

// CartItem pairs a product with the quantity selected for it.
// A cart holds at most one item per product id, and a persisted
// quantity is always at least 1.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartItems is the ordered collection of items in a cart, keyed by product id.
type CartItems []CartItem

// FindIndex returns the index of the item matching the given product id.
// Returns -1 if not found.
func (c CartItems) FindIndex(productID int64) int {
	for i := range c {
		if c[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// TotalPrice calculates the total price of all items in the cart.
func (c CartItems) TotalPrice() float64 {
	var total float64
	for _, item := range c {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all items.
func (c CartItems) ItemCount() int {
	var count int
	for _, item := range c {
		count += item.Quantity
	}
	return count
}

// Normalize drops malformed entries: a missing product id or a non-positive
// quantity disqualifies an item. Applied before every persist and before
// exposing items to subscribers.
func (c CartItems) Normalize() CartItems {
	out := make(CartItems, 0, len(c))
	for _, item := range c {
		if item.Product.ID == 0 || item.Quantity <= 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Clone returns a defensive copy of the collection.
func (c CartItems) Clone() CartItems {
	out := make(CartItems, len(c))
	copy(out, c)
	return out
}
