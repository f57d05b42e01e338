package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/store"
)

// UpdateOrderHistoryRequest replaces a record's table number and lines.
// Lines with a quantity of zero or less are dropped before the remaining
// lines are checked for a name and a non-negative price.
type UpdateOrderHistoryRequest struct {
	TableNumber string                    `json:"table_number"`
	Items       []models.OrderHistoryItem `json:"items"`
	Timestamp   *time.Time                `json:"timestamp"`
}

type OrderHistoryService interface {
	LoadHistory(ctx context.Context) error
	GetOrderHistory() []models.OrderHistoryRecord
	GetOrderHistoryRecord(id string) (*models.OrderHistoryRecord, error)
	UpdateOrderHistory(ctx context.Context, id string, req UpdateOrderHistoryRequest) (*models.OrderHistoryRecord, error)
	EditOrderHistoryItem(ctx context.Context, id string, index int, edit cart.HistoryItemEdit) (*models.OrderHistoryRecord, error)
	DeleteOrderHistory(ctx context.Context, id string) error
}

type orderHistoryService struct {
	store   *store.Store
	adapter repositories.StoreAdapter
}

func NewOrderHistoryService(st *store.Store, adapter repositories.StoreAdapter) OrderHistoryService {
	return &orderHistoryService{store: st, adapter: adapter}
}

func (s *orderHistoryService) LoadHistory(ctx context.Context) error {
	if s.adapter == nil {
		return nil
	}
	records, err := s.adapter.GetOrderHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load order history: %w", err)
	}
	s.store.MergeOrderHistory(records)
	return nil
}

func (s *orderHistoryService) GetOrderHistory() []models.OrderHistoryRecord {
	return s.store.GetOrderHistory()
}

func (s *orderHistoryService) GetOrderHistoryRecord(id string) (*models.OrderHistoryRecord, error) {
	rec, err := s.store.OrderHistoryRecord(id)
	if err != nil {
		return nil, notFound(err, ErrOrderHistoryNotFound, id)
	}
	return &rec, nil
}

func validateHistory(rec *models.OrderHistoryRecord) error {
	rec.TableNumber = strings.TrimSpace(rec.TableNumber)
	if rec.TableNumber == "" {
		return validationError("テーブル番号を入力してください")
	}
	kept := rec.Items[:0]
	for _, it := range rec.Items {
		if it.Quantity <= 0 {
			continue
		}
		if strings.TrimSpace(it.Name) == "" {
			return validationError("item name is required")
		}
		if it.Price < 0 {
			return validationError("price must not be negative")
		}
		kept = append(kept, it)
	}
	rec.Items = kept
	if len(rec.Items) == 0 {
		return validationError("少なくとも1つの商品が必要です")
	}
	rec.Total = cart.HistoryTotal(rec.Items)
	return nil
}

func (s *orderHistoryService) UpdateOrderHistory(ctx context.Context, id string, req UpdateOrderHistoryRequest) (*models.OrderHistoryRecord, error) {
	existing, err := s.store.OrderHistoryRecord(id)
	if err != nil {
		return nil, notFound(err, ErrOrderHistoryNotFound, id)
	}

	rec := existing.Clone()
	rec.TableNumber = req.TableNumber
	rec.Items = append([]models.OrderHistoryItem(nil), req.Items...)
	if req.Timestamp != nil {
		rec.Timestamp = *req.Timestamp
	}
	if err := validateHistory(&rec); err != nil {
		return nil, err
	}
	return s.save(ctx, id, rec)
}

// EditOrderHistoryItem changes one line of a record and recomputes its total.
func (s *orderHistoryService) EditOrderHistoryItem(ctx context.Context, id string, index int, edit cart.HistoryItemEdit) (*models.OrderHistoryRecord, error) {
	existing, err := s.store.OrderHistoryRecord(id)
	if err != nil {
		return nil, notFound(err, ErrOrderHistoryNotFound, id)
	}
	if index < 0 || index >= len(existing.Items) {
		return nil, validationError("item index %d out of range", index)
	}

	rec := existing.Clone()
	rec.Items = cart.EditHistoryItem(rec.Items, index, edit)
	if err := validateHistory(&rec); err != nil {
		return nil, err
	}
	return s.save(ctx, id, rec)
}

func (s *orderHistoryService) save(ctx context.Context, id string, rec models.OrderHistoryRecord) (*models.OrderHistoryRecord, error) {
	if s.adapter != nil {
		if err := s.adapter.UpdateOrderHistory(ctx, &rec); err != nil {
			return nil, notFound(fmt.Errorf("failed to update order history: %w", err), ErrOrderHistoryNotFound, id)
		}
	}
	if err := s.store.UpdateOrderHistory(id, rec); err != nil {
		return nil, notFound(err, ErrOrderHistoryNotFound, id)
	}
	return &rec, nil
}

func (s *orderHistoryService) DeleteOrderHistory(ctx context.Context, id string) error {
	if _, err := s.store.OrderHistoryRecord(id); err != nil {
		return notFound(err, ErrOrderHistoryNotFound, id)
	}
	if s.adapter != nil {
		if err := s.adapter.DeleteOrderHistory(ctx, id); err != nil {
			return notFound(fmt.Errorf("failed to delete order history: %w", err), ErrOrderHistoryNotFound, id)
		}
	}
	if err := s.store.DeleteOrderHistory(id); err != nil {
		return notFound(err, ErrOrderHistoryNotFound, id)
	}
	return nil
}
