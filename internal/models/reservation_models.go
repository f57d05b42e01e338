package models

import "time"

// DateKeyLayout is the calendar-day key format for reservations.
const DateKeyLayout = "2006-01-02"

// Reservation represents a booking on the reservation calendar
type Reservation struct {
	ID            string    `json:"id" db:"id"`
	Date          string    `json:"date" db:"date"` // YYYY-MM-DD
	Time          string    `json:"time" db:"time"` // HH:MM
	CustomerName  string    `json:"customer_name" db:"customer_name"`
	CustomerCount int       `json:"customer_count" db:"customer_count"`
	TableNumber   string    `json:"table_number" db:"table_number"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	MenuRequests  string    `json:"menu_requests,omitempty" db:"menu_requests"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
