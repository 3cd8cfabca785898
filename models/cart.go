package models

// CartItem is a product snapshot plus the quantity in the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is the effective price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.EffectivePrice() * float64(i.Quantity)
}

type CartSummary struct {
	CartID     string     `json:"cart_id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}
