package models

// Cart is the body of GET /cart.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total,omitempty"`
}

// Count returns the total quantity across all items.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// CartItem is one line of the cart.
type CartItem struct {
	ID       string  `json:"id"`
	BookID   string  `json:"book_id"`
	UserID   string  `json:"user_id,omitempty"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal,omitempty"`
	Book     *Book   `json:"book,omitempty"`
}

// CartAdd is the body of POST /cart.
type CartAdd struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// CartUpdate is the body of PUT /cart/items/:id.
type CartUpdate struct {
	Quantity int `json:"quantity"`
}
