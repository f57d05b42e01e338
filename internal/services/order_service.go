package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/metrics"
	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/pkg/utils"
)

var (
	ErrNoPendingItems = errors.New("no pending items")
	ErrEmptyOrder     = errors.New("table has no confirmed order")
	ErrPendingItems   = errors.New("unconfirmed items pending")
)

// AddPendingItemRequest adds one unit of a menu item to a table's pending cart.
type AddPendingItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// ConfirmOrderRequest confirms a table's pending cart.
type ConfirmOrderRequest struct {
	CustomerCount  int    `json:"customer_count" binding:"gte=0"`
	IdempotencyKey string `json:"-"`
}

type OrderService interface {
	GetTableOrder(tableID string) (*models.TableOrder, error)
	AddPendingItem(ctx context.Context, tableID string, req AddPendingItemRequest) (*models.TableOrder, error)
	RemovePendingItem(ctx context.Context, tableID, itemID string) (*models.TableOrder, error)
	ConfirmPendingOrder(ctx context.Context, tableID string, req ConfirmOrderRequest) (*models.TableOrder, error)
	CheckoutTable(ctx context.Context, tableID string) (*models.OrderHistoryRecord, error)
}

type orderService struct {
	store   *store.Store
	adapter repositories.StoreAdapter
	metrics *metrics.POSMetrics
	cache   ConfirmationCache
	now     func() time.Time

	tableLocks sync.Map
}

// NewOrderService creates an OrderService. adapter may be nil when no database
// is attached; a nil cache falls back to an in-process one.
func NewOrderService(st *store.Store, adapter repositories.StoreAdapter, m *metrics.POSMetrics, cache ConfirmationCache) OrderService {
	if cache == nil {
		cache = NewMemoryConfirmationCache()
	}
	return &orderService{store: st, adapter: adapter, metrics: m, cache: cache, now: time.Now}
}

// lockTable serializes confirmation and checkout for one table within this process.
func (s *orderService) lockTable(tableID string) func() {
	v, _ := s.tableLocks.LoadOrStore(tableID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func validateTableID(tableID string) error {
	if strings.TrimSpace(tableID) == "" {
		return validationError("table id is required")
	}
	return nil
}

func (s *orderService) GetTableOrder(tableID string) (*models.TableOrder, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}
	return s.tableOrder(tableID), nil
}

func (s *orderService) tableOrder(tableID string) *models.TableOrder {
	table := s.store.GetTable(tableID)
	confirmed := s.store.GetTableOrders(tableID)
	pending := s.store.GetPendingOrders(tableID)
	confirmedTotal := cart.Total(confirmed)
	pendingTotal := cart.Total(pending)
	return &models.TableOrder{
		Table:              table,
		Confirmed:          confirmed,
		Pending:            pending,
		ConfirmedTotal:     confirmedTotal,
		PendingTotal:       pendingTotal,
		TotalAmount:        confirmedTotal + pendingTotal,
		UnavailableItemIDs: cart.UnavailableLines(pending, s.store.UnavailableItems()),
	}
}

func (s *orderService) AddPendingItem(ctx context.Context, tableID string, req AddPendingItemRequest) (*models.TableOrder, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}
	item, ok := s.store.MenuItem(req.ItemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, req.ItemID)
	}

	if _, err := s.store.AddPendingItem(tableID, item); err != nil {
		if errors.Is(err, cart.ErrItemUnavailable) {
			s.metrics.IncUnavailableRejection()
			utils.LogDebug("Rejected unavailable item", map[string]interface{}{"table_id": tableID, "item_id": item.ID})
		}
		return nil, err
	}
	return s.tableOrder(tableID), nil
}

func (s *orderService) RemovePendingItem(ctx context.Context, tableID, itemID string) (*models.TableOrder, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}
	s.store.RemovePendingItem(tableID, itemID)
	return s.tableOrder(tableID), nil
}

// ConfirmPendingOrder merges the pending cart into the confirmed order. With a
// database attached, every pending line and the table update are written in one
// transaction before the in-memory state changes; a failed write leaves both
// untouched. A repeated idempotency key returns the earlier result without
// merging again.
func (s *orderService) ConfirmPendingOrder(ctx context.Context, tableID string, req ConfirmOrderRequest) (*models.TableOrder, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}
	if req.CustomerCount < 0 {
		return nil, validationError("customer count must not be negative")
	}

	unlock := s.lockTable(tableID)
	defer unlock()

	if req.IdempotencyKey != "" {
		cached, ok, err := s.cache.Get(ctx, tableID, req.IdempotencyKey)
		if err != nil {
			utils.LogWarn(err, "Idempotency lookup failed, confirming normally", map[string]interface{}{"table_id": tableID})
		} else if ok {
			utils.LogDebug("Replayed confirmation", map[string]interface{}{"table_id": tableID, "key": req.IdempotencyKey})
			return cached, nil
		}
	}

	started := s.now()
	pending := s.store.GetPendingOrders(tableID)
	if len(pending) == 0 {
		s.metrics.IncConfirmFailure("empty")
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrNoPendingItems)
	}

	start := started
	if t := s.store.GetTable(tableID); t.OrderStartTime != nil {
		start = *t.OrderStartTime
	}

	if s.adapter != nil {
		if err := s.persistConfirmation(ctx, tableID, pending, req.CustomerCount, start); err != nil {
			s.metrics.IncConfirmFailure("persist")
			return nil, err
		}
	}

	_, table := s.store.CommitConfirmation(tableID, pending, req.CustomerCount, start)
	s.store.Publish(store.Event{
		Kind:    store.EventOrderConfirmed,
		TableID: tableID,
		Lines:   cart.Clone(pending),
		Total:   table.TotalAmount,
	})

	pendingTotal := cart.Total(pending)
	s.metrics.ObserveConfirmed(pendingTotal, s.now().Sub(started))
	utils.LogInfo("Order confirmed", map[string]interface{}{
		"table_id": tableID, "lines": len(pending), "amount": pendingTotal, "table_total": table.TotalAmount,
	})

	result := s.tableOrder(tableID)
	if req.IdempotencyKey != "" {
		if err := s.cache.Put(ctx, tableID, req.IdempotencyKey, result); err != nil {
			utils.LogWarn(err, "Failed to remember confirmation result", map[string]interface{}{"table_id": tableID})
		}
	}
	return result, nil
}

// persistConfirmation writes the order rows and table state in one
// transaction. start must be the same value later committed to the store.
func (s *orderService) persistConfirmation(ctx context.Context, tableID string, pending []models.CartLine, customerCount int, start time.Time) error {
	table := s.store.GetTable(tableID)
	merged := cart.MergeIntoConfirmed(s.store.GetTableOrders(tableID), pending)

	count := customerCount
	if count == 0 {
		count = table.CustomerCount
	}
	if count == 0 {
		count = 1
	}

	rows := make([]models.OrderRow, 0, len(pending))
	for _, l := range pending {
		rows = append(rows, models.OrderRow{TableID: tableID, MenuItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.Price})
	}
	upd := models.TableUpdate{
		Status:         models.TableStatusOccupied,
		CustomerCount:  count,
		OrderStartTime: &start,
		TotalAmount:    cart.Total(merged),
	}
	if err := s.adapter.ConfirmOrder(ctx, tableID, rows, upd); err != nil {
		return fmt.Errorf("failed to persist order for table %s: %w", tableID, err)
	}
	return nil
}

// CheckoutTable closes a table: its confirmed lines become an order history
// record and the table is reset to cleaning. It refuses while unconfirmed
// lines are pending so they are never dropped by the reset.
func (s *orderService) CheckoutTable(ctx context.Context, tableID string) (*models.OrderHistoryRecord, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}

	unlock := s.lockTable(tableID)
	defer unlock()

	if pending := s.store.GetPendingOrders(tableID); len(pending) > 0 {
		return nil, fmt.Errorf("%w: %w (%d lines)", ErrValidation, ErrPendingItems, len(pending))
	}
	confirmed := s.store.GetTableOrders(tableID)
	if len(confirmed) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrEmptyOrder)
	}
	table := s.store.GetTable(tableID)

	items := make([]models.OrderHistoryItem, 0, len(confirmed))
	for _, l := range confirmed {
		items = append(items, models.OrderHistoryItem{Name: l.Name, Quantity: l.Quantity, Price: l.Price})
	}
	record := models.OrderHistoryRecord{
		ID:          uuid.NewString(),
		TableNumber: table.Number,
		Items:       items,
		Total:       cart.HistoryTotal(items),
		Timestamp:   s.now(),
	}

	if s.adapter != nil {
		upd := models.TableUpdate{Status: models.TableStatusCleaning}
		if err := s.adapter.CheckoutTable(ctx, tableID, &record, upd); err != nil {
			return nil, fmt.Errorf("failed to persist checkout for table %s: %w", tableID, err)
		}
	}

	s.store.AddOrderHistory(record)
	s.store.ResetTable(tableID, models.TableStatusCleaning)
	utils.LogInfo("Table checked out", map[string]interface{}{"table_id": tableID, "record_id": record.ID, "total": record.Total})
	return &record, nil
}
