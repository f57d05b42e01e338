package models

// CartLine is a menu item snapshot with a quantity. Quantity is always >= 1;
// a line that would drop to zero is removed instead.
type CartLine struct {
	ItemID   string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// LineFromItem builds a single-quantity line from a catalog item.
func LineFromItem(item MenuItem) CartLine {
	return CartLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Category: item.Category,
		ImageURL: item.ImageURL,
		Quantity: 1,
	}
}
