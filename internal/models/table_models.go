package models

import (
	"strconv"
	"time"
)

// TableStatus defines the type for dining table statuses
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
	TableStatusReserved  TableStatus = "reserved"
	TableStatusCleaning  TableStatus = "cleaning"
)

// IsValidTableStatus checks if the provided status string is a valid TableStatus.
func IsValidTableStatus(status string) bool {
	switch TableStatus(status) {
	case TableStatusAvailable,
		TableStatusOccupied,
		TableStatusReserved,
		TableStatusCleaning:
		return true
	default:
		return false
	}
}

// Table represents a dining table on the floor
type Table struct {
	ID             string      `json:"id" db:"id"`
	Number         string      `json:"number" db:"number"`
	Status         TableStatus `json:"status" db:"status"`
	TotalAmount    int64       `json:"total_amount" db:"total_amount"`
	OrderStartTime *time.Time  `json:"order_start_time,omitempty" db:"order_start_time"`
	CustomerCount  int         `json:"customer_count" db:"customer_count"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// TableStatusUpdate carries optional occupancy metadata for a status change.
// A nil OrderStartTime keeps the current start time; a zero CustomerCount keeps the current count.
type TableStatusUpdate struct {
	OrderStartTime *time.Time `json:"order_start_time"`
	CustomerCount  int        `json:"customer_count"`
}

// DefaultTables returns n available tables with ids and numbers "1".."n".
func DefaultTables(n int) []Table {
	tables := make([]Table, 0, n)
	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		tables = append(tables, Table{ID: id, Number: id, Status: TableStatusAvailable})
	}
	return tables
}
