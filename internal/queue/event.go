// Package queue publishes kitchen tickets to RabbitMQ when a table's pending
// order is confirmed.
package queue

import (
	"time"

	"github.com/google/uuid"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/store"
)

// TicketLine is one line the kitchen has to prepare.
type TicketLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// OrderConfirmedEvent is published for every confirmation. Lines hold only the
// newly confirmed items, not the whole table order.
type OrderConfirmedEvent struct {
	EventID     string       `json:"event_id"`
	TableID     string       `json:"table_id"`
	Lines       []TicketLine `json:"lines"`
	Subtotal    int64        `json:"subtotal"`
	TableTotal  int64        `json:"table_total"`
	ConfirmedAt string       `json:"confirmed_at"`
}

// NewOrderConfirmedEvent builds a ticket from an order_confirmed store event.
func NewOrderConfirmedEvent(e store.Event, tableTotal int64) OrderConfirmedEvent {
	lines := make([]TicketLine, 0, len(e.Lines))
	var subtotal int64
	for _, l := range e.Lines {
		lines = append(lines, ticketLine(l))
		subtotal += l.Subtotal()
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	return OrderConfirmedEvent{
		EventID:     uuid.NewString(),
		TableID:     e.TableID,
		Lines:       lines,
		Subtotal:    subtotal,
		TableTotal:  tableTotal,
		ConfirmedAt: at.UTC().Format(time.RFC3339),
	}
}

func ticketLine(l models.CartLine) TicketLine {
	return TicketLine{ItemID: l.ItemID, Name: l.Name, Category: l.Category, Quantity: l.Quantity, Price: l.Price}
}

// RoutingKey is the topic key kitchen consumers bind to.
func (e OrderConfirmedEvent) RoutingKey() string {
	return "kitchen.table." + e.TableID
}
