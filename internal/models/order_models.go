package models

import "time"

// OrderRow is one persisted order line, written per confirmed pending line.
type OrderRow struct {
	ID         int64     `json:"id" db:"id"`
	TableID    string    `json:"table_id" db:"table_id"`
	MenuItemID string    `json:"menu_item_id" db:"menu_item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  int64     `json:"unit_price" db:"unit_price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TableUpdate is the table state written alongside confirmed order rows.
type TableUpdate struct {
	Status         TableStatus `json:"status"`
	CustomerCount  int         `json:"customer_count"`
	OrderStartTime *time.Time  `json:"order_start_time"`
	TotalAmount    int64       `json:"total_amount"`
}

// TableOrder is the composed view of a table's confirmed and pending lines.
type TableOrder struct {
	Table              Table      `json:"table"`
	Confirmed          []CartLine `json:"confirmed"`
	Pending            []CartLine `json:"pending"`
	ConfirmedTotal     int64      `json:"confirmed_total"`
	PendingTotal       int64      `json:"pending_total"`
	TotalAmount        int64      `json:"total_amount"`
	UnavailableItemIDs []string   `json:"unavailable_item_ids,omitempty"`
}
