// Package store is the single owned holder of live restaurant state: tables
// and their orders, the menu catalog, the unavailable set, order history and
// reservations. It is injected into services rather than reached through a
// global, and it notifies subscribers after every write.
package store

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/models"
)

type tableState struct {
	table     models.Table
	confirmed []models.CartLine
	pending   []models.CartLine
}

// Store is safe for concurrent use. Concurrent writers follow last-writer-wins.
type Store struct {
	mu           sync.RWMutex
	tables       map[string]*tableState
	menu         []models.MenuItem
	unavailable  cart.UnavailableSet
	history      []models.OrderHistoryRecord
	reservations []models.Reservation

	subMu     sync.Mutex
	subs      []subscription
	nextSubID int

	// serializes delivery so subscribers observe events in write order
	notifyMu sync.Mutex

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		tables:      make(map[string]*tableState),
		unavailable: cart.NewUnavailableSet(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// tableLocked returns the state for id, creating an available table on first access.
func (s *Store) tableLocked(id string) *tableState {
	ts, ok := s.tables[id]
	if !ok {
		ts = &tableState{table: models.Table{ID: id, Number: id, Status: models.TableStatusAvailable}}
		s.tables[id] = ts
	}
	return ts
}

// SeedTables registers tables that do not exist yet. Existing tables are left untouched.
func (s *Store) SeedTables(tables []models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tables {
		if _, ok := s.tables[t.ID]; ok {
			continue
		}
		s.tables[t.ID] = &tableState{table: t}
	}
}

// GetAllTables returns every known table ordered by number.
func (s *Store) GetAllTables() []models.Table {
	s.mu.RLock()
	tables := make([]models.Table, 0, len(s.tables))
	for _, ts := range s.tables {
		tables = append(tables, ts.table)
	}
	s.mu.RUnlock()

	sort.Slice(tables, func(i, j int) bool {
		return lessNumber(tables[i].Number, tables[j].Number)
	})
	return tables
}

func lessNumber(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// GetTable returns the table, creating it lazily.
func (s *Store) GetTable(id string) models.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableLocked(id).table
}

// GetTableOrders returns the confirmed lines for a table.
func (s *Store) GetTableOrders(tableID string) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Clone(s.tableLocked(tableID).confirmed)
}

// UpdateTableOrder replaces a table's confirmed lines and total.
func (s *Store) UpdateTableOrder(tableID string, lines []models.CartLine, total int64) {
	s.mu.Lock()
	ts := s.tableLocked(tableID)
	ts.confirmed = cart.Clone(lines)
	ts.table.TotalAmount = total
	ts.table.UpdatedAt = s.now()
	s.mu.Unlock()

	s.Publish(Event{Kind: EventTableOrderUpdated, TableID: tableID, Lines: cart.Clone(lines), Total: total})
}

// UpdateTableStatus sets any status on a table. No transition rules apply.
func (s *Store) UpdateTableStatus(tableID string, status models.TableStatus, upd models.TableStatusUpdate) models.Table {
	s.mu.Lock()
	ts := s.tableLocked(tableID)
	ts.table.Status = status
	if upd.OrderStartTime != nil {
		start := *upd.OrderStartTime
		ts.table.OrderStartTime = &start
	}
	if upd.CustomerCount > 0 {
		ts.table.CustomerCount = upd.CustomerCount
	}
	ts.table.UpdatedAt = s.now()
	table := ts.table
	s.mu.Unlock()

	s.Publish(Event{Kind: EventTableStatusUpdated, TableID: tableID})
	return table
}

// ResetTable clears a table's orders and occupancy and sets status.
func (s *Store) ResetTable(tableID string, status models.TableStatus) models.Table {
	s.mu.Lock()
	ts := s.tableLocked(tableID)
	ts.confirmed = nil
	ts.pending = nil
	ts.table.Status = status
	ts.table.TotalAmount = 0
	ts.table.OrderStartTime = nil
	ts.table.CustomerCount = 0
	ts.table.UpdatedAt = s.now()
	table := ts.table
	s.mu.Unlock()

	s.Publish(Event{Kind: EventTableOrderUpdated, TableID: tableID})
	s.Publish(Event{Kind: EventTableStatusUpdated, TableID: tableID})
	return table
}

// GetPendingOrders returns the unconfirmed lines for a table.
func (s *Store) GetPendingOrders(tableID string) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Clone(s.tableLocked(tableID).pending)
}

// SetPendingOrders replaces the unconfirmed lines for a table.
func (s *Store) SetPendingOrders(tableID string, lines []models.CartLine) {
	s.mu.Lock()
	s.tableLocked(tableID).pending = cart.Clone(lines)
	s.mu.Unlock()

	s.Publish(Event{Kind: EventPendingUpdated, TableID: tableID, Lines: cart.Clone(lines), Total: cart.Total(lines)})
}

// AddPendingItem appends item to a table's pending lines behind the
// availability gate. The gate check and the insert happen under one lock.
func (s *Store) AddPendingItem(tableID string, item models.MenuItem) ([]models.CartLine, error) {
	s.mu.Lock()
	ts := s.tableLocked(tableID)
	next, err := cart.AddOrderable(ts.pending, item, s.unavailable)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	ts.pending = next
	s.mu.Unlock()

	s.Publish(Event{Kind: EventPendingUpdated, TableID: tableID, ItemID: item.ID, Lines: cart.Clone(next), Total: cart.Total(next)})
	return cart.Clone(next), nil
}

// RemovePendingItem decrements one pending line.
func (s *Store) RemovePendingItem(tableID, itemID string) []models.CartLine {
	s.mu.Lock()
	ts := s.tableLocked(tableID)
	next := cart.RemoveLine(ts.pending, itemID)
	ts.pending = next
	s.mu.Unlock()

	s.Publish(Event{Kind: EventPendingUpdated, TableID: tableID, ItemID: itemID, Lines: cart.Clone(next), Total: cart.Total(next)})
	return cart.Clone(next)
}

// CommitConfirmation merges the given pending snapshot into the table's
// confirmed order, takes those quantities off the live pending list, and marks
// the table occupied. start becomes the order start time only if none is set;
// a zero start falls back to the store clock.
// Lines added by another terminal after the snapshot was taken stay pending.
func (s *Store) CommitConfirmation(tableID string, pending []models.CartLine, customerCount int, start time.Time) ([]models.CartLine, models.Table) {
	s.mu.Lock()
	ts := s.tableLocked(tableID)
	ts.confirmed = cart.MergeIntoConfirmed(ts.confirmed, pending)
	ts.pending = subtractLines(ts.pending, pending)

	now := s.now()
	ts.table.TotalAmount = cart.Total(ts.confirmed)
	ts.table.Status = models.TableStatusOccupied
	if ts.table.OrderStartTime == nil {
		if start.IsZero() {
			start = now
		}
		ts.table.OrderStartTime = &start
	}
	if customerCount > 0 {
		ts.table.CustomerCount = customerCount
	} else if ts.table.CustomerCount == 0 {
		ts.table.CustomerCount = 1
	}
	ts.table.UpdatedAt = now
	confirmed := cart.Clone(ts.confirmed)
	remaining := cart.Clone(ts.pending)
	table := ts.table
	s.mu.Unlock()

	s.Publish(Event{Kind: EventTableOrderUpdated, TableID: tableID, Lines: cart.Clone(confirmed), Total: table.TotalAmount})
	s.Publish(Event{Kind: EventPendingUpdated, TableID: tableID, Lines: remaining, Total: cart.Total(remaining)})
	s.Publish(Event{Kind: EventTableStatusUpdated, TableID: tableID})
	return confirmed, table
}

func subtractLines(from, taken []models.CartLine) []models.CartLine {
	left := make(map[string]int, len(taken))
	for _, l := range taken {
		left[l.ItemID] += l.Quantity
	}
	out := make([]models.CartLine, 0, len(from))
	for _, l := range from {
		if n := left[l.ItemID]; n > 0 {
			used := n
			if used > l.Quantity {
				used = l.Quantity
			}
			left[l.ItemID] -= used
			l.Quantity -= used
		}
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}
