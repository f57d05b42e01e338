package store

import (
	"errors"
	"sort"

	"restaurant_pos_backend/internal/models"
)

// ErrNotFound is returned when an order history record or reservation does not exist.
var ErrNotFound = errors.New("record not found")

// GetOrderHistory returns all records, newest first.
func (s *Store) GetOrderHistory() []models.OrderHistoryRecord {
	s.mu.RLock()
	out := make([]models.OrderHistoryRecord, 0, len(s.history))
	for _, r := range s.history {
		out = append(out, r.Clone())
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// OrderHistoryRecord returns one record by id.
func (s *Store) OrderHistoryRecord(id string) (models.OrderHistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.history {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return models.OrderHistoryRecord{}, ErrNotFound
}

// AddOrderHistory appends a record.
func (s *Store) AddOrderHistory(record models.OrderHistoryRecord) {
	s.mu.Lock()
	s.history = append(s.history, record.Clone())
	s.mu.Unlock()

	s.Publish(Event{Kind: EventOrderHistoryAdded, RecordID: record.ID, TableID: record.TableNumber, Total: record.Total})
}

// UpdateOrderHistory overwrites the record with the given id.
func (s *Store) UpdateOrderHistory(id string, record models.OrderHistoryRecord) error {
	s.mu.Lock()
	idx := -1
	for i := range s.history {
		if s.history[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	record.ID = id
	s.history[idx] = record.Clone()
	s.mu.Unlock()

	s.Publish(Event{Kind: EventOrderHistoryUpdated, RecordID: id, Total: record.Total})
	return nil
}

// DeleteOrderHistory removes the record with the given id.
func (s *Store) DeleteOrderHistory(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.history {
		if s.history[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.history = append(s.history[:idx:idx], s.history[idx+1:]...)
	s.mu.Unlock()

	s.Publish(Event{Kind: EventOrderHistoryDeleted, RecordID: id})
	return nil
}

// MergeOrderHistory adds the records whose id is not yet known and returns how
// many were added. Known ids are never overwritten.
func (s *Store) MergeOrderHistory(records []models.OrderHistoryRecord) int {
	s.mu.Lock()
	known := make(map[string]struct{}, len(s.history))
	for _, r := range s.history {
		known[r.ID] = struct{}{}
	}
	added := 0
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		if _, ok := known[r.ID]; ok {
			continue
		}
		known[r.ID] = struct{}{}
		s.history = append(s.history, r.Clone())
		added++
	}
	s.mu.Unlock()

	if added > 0 {
		s.Publish(Event{Kind: EventOrderHistoryMerged})
	}
	return added
}
