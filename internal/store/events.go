package store

import (
	"time"

	"restaurant_pos_backend/internal/models"
)

// EventKind names a change to the store.
type EventKind string

const (
	EventTableOrderUpdated   EventKind = "table_order_updated"
	EventTableStatusUpdated  EventKind = "table_status_updated"
	EventPendingUpdated      EventKind = "pending_updated"
	EventOrderConfirmed      EventKind = "order_confirmed"
	EventOrderHistoryAdded   EventKind = "order_history_added"
	EventOrderHistoryUpdated EventKind = "order_history_updated"
	EventOrderHistoryDeleted EventKind = "order_history_deleted"
	EventOrderHistoryMerged  EventKind = "order_history_merged"
	EventMenuUpdated         EventKind = "menu_updated"
	EventAvailabilityToggled EventKind = "availability_toggled"
	EventReservationChanged  EventKind = "reservation_changed"
)

// Event describes one committed write. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind         `json:"kind"`
	TableID  string            `json:"table_id,omitempty"`
	RecordID string            `json:"record_id,omitempty"`
	ItemID   string            `json:"item_id,omitempty"`
	Lines    []models.CartLine `json:"lines,omitempty"`
	Total    int64             `json:"total,omitempty"`
	At       time.Time         `json:"at"`
}

// Handler receives events synchronously on the writing goroutine.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Subscribe registers h for every future event and returns a function that
// removes it. Handlers run in registration order, after the write is visible,
// and must not block for long.
func (s *Store) Subscribe(h Handler) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, handler: h})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to all subscribers. Writes inside the store call it after
// releasing the state lock; services use it for events the store does not
// originate, such as a confirmed order.
func (s *Store) Publish(e Event) {
	if e.At.IsZero() {
		e.At = s.now()
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.subMu.Lock()
	subs := append([]subscription(nil), s.subs...)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.handler(e)
	}
}
