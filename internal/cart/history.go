package cart

import "restaurant_pos_backend/internal/models"

// HistoryTotal recomputes an order history total from its item snapshots.
func HistoryTotal(items []models.OrderHistoryItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// HistoryItemEdit changes one field set of a history line. Nil fields are left alone.
type HistoryItemEdit struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	Price    *int64  `json:"price"`
}

// EditHistoryItem applies edit to items[index] and returns a new slice.
// A quantity of zero or less removes the line. An out of range index is a no-op.
func EditHistoryItem(items []models.OrderHistoryItem, index int, edit HistoryItemEdit) []models.OrderHistoryItem {
	out := append(make([]models.OrderHistoryItem, 0, len(items)), items...)
	if index < 0 || index >= len(out) {
		return out
	}
	if edit.Quantity != nil && *edit.Quantity <= 0 {
		return append(out[:index], out[index+1:]...)
	}
	if edit.Quantity != nil {
		out[index].Quantity = *edit.Quantity
	}
	if edit.Price != nil {
		out[index].Price = *edit.Price
	}
	if edit.Name != nil {
		out[index].Name = *edit.Name
	}
	return out
}
