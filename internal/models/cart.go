package models

// CartLine is one cart entry: a product snapshot plus its quantity.
// The line ID equals the product ID, so a cart holds at most one line
// per product.
type CartLine struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
