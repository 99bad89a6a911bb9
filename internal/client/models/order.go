package models

// Order is the order header returned by the orders endpoints.
type Order struct {
	ID              string  `json:"id"`
	TotalAmount     float64 `json:"total_amount"`
	OrderDate       string  `json:"order_date,omitempty"`
	Status          string  `json:"order_status"`
	ShippingAddress string  `json:"shipping_address,omitempty"`
	City            string  `json:"city,omitempty"`
	PhoneNumber     string  `json:"phone_number,omitempty"`
	UserID          string  `json:"user_id,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        string  `json:"id"`
	BookID    string  `json:"book_id"`
	BookTitle string  `json:"book_title,omitempty"`
	BookISBN  string  `json:"book_isbn,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderDetails is the body of GET /orders/:id.
type OrderDetails struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderResult is returned when an order is created.
type OrderResult struct {
	Message string `json:"message,omitempty"`
	Order   *Order `json:"order"`
}

// ShippingDetails is the body of order placement and checkout.
type ShippingDetails struct {
	ShippingAddress string `json:"shipping_address"`
	City            string `json:"city"`
	PhoneNumber     string `json:"phone_number"`
}

// OrderStatusUpdate is the body of PUT /admin/orders/:id/status.
type OrderStatusUpdate struct {
	Status string `json:"status"`
}
