package cart

import (
	"errors"
	"fmt"

	"restaurant_pos_backend/internal/models"
)

// ErrItemUnavailable is returned when an item on the unavailable list is added to a cart.
var ErrItemUnavailable = errors.New("item is currently unavailable")

// UnavailableSet is the set of menu item ids that cannot be ordered.
type UnavailableSet map[string]struct{}

// NewUnavailableSet builds a set from ids.
func NewUnavailableSet(ids ...string) UnavailableSet {
	s := make(UnavailableSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s UnavailableSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in no particular order.
func (s UnavailableSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// IsOrderable is false iff itemID is in the unavailable set.
func IsOrderable(itemID string, unavailable UnavailableSet) bool {
	return !unavailable.Has(itemID)
}

// AddOrderable is AddLine behind the availability gate. A gated item yields
// ErrItemUnavailable and the cart unchanged.
func AddOrderable(lines []models.CartLine, item models.MenuItem, unavailable UnavailableSet) ([]models.CartLine, error) {
	if !IsOrderable(item.ID, unavailable) {
		return lines, fmt.Errorf("%w: 「%s」は現在提供しておりません", ErrItemUnavailable, item.Name)
	}
	return AddLine(lines, item), nil
}

// UnavailableLines lists the ids of lines whose item has since been marked
// unavailable. Such lines are reported, not purged.
func UnavailableLines(lines []models.CartLine, unavailable UnavailableSet) []string {
	var ids []string
	for _, l := range lines {
		if unavailable.Has(l.ItemID) {
			ids = append(ids, l.ItemID)
		}
	}
	return ids
}
