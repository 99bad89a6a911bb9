package models

// Book is a catalog item.
type Book struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ISBN          string  `json:"isbn,omitempty"`
	Price         float64 `json:"price"`
	PricePKR      string  `json:"price_pkr,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	AuthorID      string  `json:"author_id,omitempty"`
	CategoryID    string  `json:"category_id,omitempty"`
	InStock       bool    `json:"in_stock"`
	Author        *Ref    `json:"author,omitempty"`
	Category      *Ref    `json:"category,omitempty"`
}

// Ref is the short {id, name} form embedded in a book.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Author is an entry of GET /authors.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"author_name"`
}

// Category is an entry of GET /categories.
type Category struct {
	ID   string `json:"id"`
	Type string `json:"category_type"`
}

// Review is a book review.
type Review struct {
	ID      string `json:"id"`
	BookID  string `json:"book_id"`
	UserID  string `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// BookFilter selects catalog items. Zero-value fields are not sent.
type BookFilter struct {
	CategoryID string
	AuthorID   string
	MinPrice   *float64
	MaxPrice   *float64
}
