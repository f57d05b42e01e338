package services

import (
	"context"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/pkg/utils"
)

// UpdateTableStatusRequest sets a table's status. Any status may follow any other.
type UpdateTableStatusRequest struct {
	Status         string     `json:"status" binding:"required"`
	CustomerCount  int        `json:"customer_count" binding:"gte=0"`
	OrderStartTime *time.Time `json:"order_start_time"`
}

type TableService interface {
	LoadTables(ctx context.Context, count int) error
	GetAllTables() []models.Table
	GetTable(tableID string) (*models.Table, error)
	UpdateTableStatus(ctx context.Context, tableID string, req UpdateTableStatusRequest) (*models.Table, error)
}

type tableService struct {
	store   *store.Store
	adapter repositories.StoreAdapter
}

// NewTableService creates a TableService. adapter may be nil.
func NewTableService(st *store.Store, adapter repositories.StoreAdapter) TableService {
	return &tableService{store: st, adapter: adapter}
}

// LoadTables registers count default tables and, with a database attached,
// restores persisted table state and the confirmed lines of occupied tables.
func (s *tableService) LoadTables(ctx context.Context, count int) error {
	if s.adapter != nil {
		tables, err := s.adapter.GetTables(ctx)
		if err != nil {
			return fmt.Errorf("failed to load tables: %w", err)
		}
		s.store.SeedTables(tables)
		for _, t := range tables {
			if t.Status != models.TableStatusOccupied || t.OrderStartTime == nil {
				continue
			}
			if err := s.restoreConfirmed(ctx, t); err != nil {
				return err
			}
		}
	}
	s.store.SeedTables(models.DefaultTables(count))
	return nil
}

// restoreConfirmed rebuilds a table's confirmed lines from the order rows
// written since its order started.
func (s *tableService) restoreConfirmed(ctx context.Context, t models.Table) error {
	rows, err := s.adapter.GetOrdersByTable(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("failed to load orders for table %s: %w", t.ID, err)
	}

	var lines []models.CartLine
	for _, row := range rows {
		if row.CreatedAt.Before(*t.OrderStartTime) {
			continue
		}
		item, ok := s.store.MenuItem(row.MenuItemID)
		if !ok {
			item = models.MenuItem{ID: row.MenuItemID, Name: row.MenuItemID}
		}
		item.Price = row.UnitPrice
		line := models.LineFromItem(item)
		line.Quantity = row.Quantity
		lines = cart.MergeIntoConfirmed(lines, []models.CartLine{line})
	}
	if len(lines) == 0 {
		return nil
	}
	s.store.UpdateTableOrder(t.ID, lines, cart.Total(lines))
	utils.LogDebug("Restored confirmed order", map[string]interface{}{"table_id": t.ID, "lines": len(lines)})
	return nil
}

func (s *tableService) GetAllTables() []models.Table {
	return s.store.GetAllTables()
}

func (s *tableService) GetTable(tableID string) (*models.Table, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}
	t := s.store.GetTable(tableID)
	return &t, nil
}

func (s *tableService) UpdateTableStatus(ctx context.Context, tableID string, req UpdateTableStatusRequest) (*models.Table, error) {
	if err := validateTableID(tableID); err != nil {
		return nil, err
	}
	if !models.IsValidTableStatus(req.Status) {
		return nil, validationError("invalid table status '%s'", req.Status)
	}
	status := models.TableStatus(req.Status)

	if s.adapter != nil {
		current := s.store.GetTable(tableID)
		upd := models.TableUpdate{
			Status:         status,
			CustomerCount:  current.CustomerCount,
			OrderStartTime: current.OrderStartTime,
			TotalAmount:    current.TotalAmount,
		}
		if req.CustomerCount > 0 {
			upd.CustomerCount = req.CustomerCount
		}
		if req.OrderStartTime != nil {
			upd.OrderStartTime = req.OrderStartTime
		}
		if _, err := s.adapter.UpdateTable(ctx, tableID, upd); err != nil {
			return nil, fmt.Errorf("failed to persist table %s: %w", tableID, err)
		}
	}

	table := s.store.UpdateTableStatus(tableID, status, models.TableStatusUpdate{
		OrderStartTime: req.OrderStartTime,
		CustomerCount:  req.CustomerCount,
	})
	return &table, nil
}
