package store

import (
	"sort"

	"restaurant_pos_backend/internal/models"
)

// Reservations returns reservations for date (YYYY-MM-DD), or all of them if
// date is empty, ordered by date then time.
func (s *Store) Reservations(date string) []models.Reservation {
	s.mu.RLock()
	out := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if date == "" || r.Date == date {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// Reservation returns one reservation by id.
func (s *Store) Reservation(id string) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reservation{}, ErrNotFound
}

// SetReservations replaces all reservations, used when loading from a database.
func (s *Store) SetReservations(rs []models.Reservation) {
	s.mu.Lock()
	s.reservations = append([]models.Reservation{}, rs...)
	s.mu.Unlock()

	s.Publish(Event{Kind: EventReservationChanged})
}

// AddReservation appends a reservation.
func (s *Store) AddReservation(r models.Reservation) {
	s.mu.Lock()
	s.reservations = append(s.reservations, r)
	s.mu.Unlock()

	s.Publish(Event{Kind: EventReservationChanged, RecordID: r.ID})
}

// UpdateReservation overwrites the reservation with r.ID.
func (s *Store) UpdateReservation(r models.Reservation) error {
	s.mu.Lock()
	for i := range s.reservations {
		if s.reservations[i].ID == r.ID {
			s.reservations[i] = r
			s.mu.Unlock()
			s.Publish(Event{Kind: EventReservationChanged, RecordID: r.ID})
			return nil
		}
	}
	s.mu.Unlock()
	return ErrNotFound
}

// DeleteReservation removes the reservation with id.
func (s *Store) DeleteReservation(id string) error {
	s.mu.Lock()
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations = append(s.reservations[:i:i], s.reservations[i+1:]...)
			s.mu.Unlock()
			s.Publish(Event{Kind: EventReservationChanged, RecordID: id})
			return nil
		}
	}
	s.mu.Unlock()
	return ErrNotFound
}
