package store

import (
	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/models"
)

// MenuItems returns a copy of the catalog in display order.
func (s *Store) MenuItems() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MenuItem{}, s.menu...)
}

// MenuItem looks an item up by id.
func (s *Store) MenuItem(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.menu {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

// SetMenuItems replaces the whole catalog.
func (s *Store) SetMenuItems(items []models.MenuItem) {
	s.mu.Lock()
	s.menu = append([]models.MenuItem{}, items...)
	s.mu.Unlock()

	s.Publish(Event{Kind: EventMenuUpdated})
}

// UpsertMenuItem overwrites the item with the same id in place, or appends it.
func (s *Store) UpsertMenuItem(item models.MenuItem) {
	s.mu.Lock()
	replaced := false
	for i := range s.menu {
		if s.menu[i].ID == item.ID {
			s.menu[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.menu = append(s.menu, item)
	}
	s.mu.Unlock()

	s.Publish(Event{Kind: EventMenuUpdated, ItemID: item.ID})
}

// DeleteMenuItem removes an item from the catalog and from the unavailable set.
// It reports whether the item existed.
func (s *Store) DeleteMenuItem(id string) bool {
	s.mu.Lock()
	found := false
	for i := range s.menu {
		if s.menu[i].ID == id {
			s.menu = append(s.menu[:i:i], s.menu[i+1:]...)
			found = true
			break
		}
	}
	delete(s.unavailable, id)
	s.mu.Unlock()

	if found {
		s.Publish(Event{Kind: EventMenuUpdated, ItemID: id})
	}
	return found
}

// UnavailableItems returns a copy of the unavailable set.
func (s *Store) UnavailableItems() cart.UnavailableSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.NewUnavailableSet(s.unavailable.IDs()...)
}

// IsOrderable reports whether itemID may be added to a cart.
func (s *Store) IsOrderable(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.IsOrderable(itemID, s.unavailable)
}

// ToggleAvailability flips itemID's membership in the unavailable set and
// returns true if the item is now orderable. Open carts are not touched.
func (s *Store) ToggleAvailability(itemID string) bool {
	s.mu.Lock()
	if s.unavailable.Has(itemID) {
		delete(s.unavailable, itemID)
	} else {
		s.unavailable[itemID] = struct{}{}
	}
	orderable := !s.unavailable.Has(itemID)
	s.mu.Unlock()

	s.Publish(Event{Kind: EventAvailabilityToggled, ItemID: itemID})
	return orderable
}
