package models

import "time"

// OrderHistoryItem is a snapshot of an ordered line. It is decoupled from the
// live catalog: editing one never affects the other.
type OrderHistoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// OrderHistoryRecord is a completed table order.
type OrderHistoryRecord struct {
	ID          string             `json:"id" db:"id"`
	TableNumber string             `json:"table_number" db:"table_number"`
	Items       []OrderHistoryItem `json:"items" db:"items"`
	Total       int64              `json:"total" db:"total_amount"`
	Timestamp   time.Time          `json:"timestamp" db:"completed_at"`
}

// Clone returns a deep copy so callers never alias stored item slices.
func (r OrderHistoryRecord) Clone() OrderHistoryRecord {
	out := r
	out.Items = append([]OrderHistoryItem(nil), r.Items...)
	return out
}
