package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/pkg/utils"
)

// MenuItemRequest is the body for creating or replacing a menu item.
type MenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       *int64 `json:"price" binding:"required"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// AvailabilityResponse reports an item's orderability after a toggle.
type AvailabilityResponse struct {
	ItemID    string `json:"item_id"`
	Available bool   `json:"available"`
}

type MenuService interface {
	LoadMenu(ctx context.Context, seed bool) error
	GetMenuItems() []models.MenuItem
	GetMenuItem(id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, req MenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, req MenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	ToggleAvailability(id string) (*AvailabilityResponse, error)
	GetUnavailableItems() []string
}

type menuService struct {
	store   *store.Store
	adapter repositories.StoreAdapter
}

// NewMenuService creates a MenuService. adapter may be nil when no database is attached.
func NewMenuService(st *store.Store, adapter repositories.StoreAdapter) MenuService {
	return &menuService{store: st, adapter: adapter}
}

// LoadMenu fills the store from the database, or from the default catalog when
// seed is set and nothing is stored yet.
func (s *menuService) LoadMenu(ctx context.Context, seed bool) error {
	if s.adapter == nil {
		if seed {
			s.store.SetMenuItems(models.DefaultMenu())
		}
		return nil
	}

	items, err := s.adapter.GetMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}
	if len(items) == 0 && seed {
		for _, item := range models.DefaultMenu() {
			created, err := s.adapter.CreateMenuItem(ctx, &item)
			if err != nil {
				return fmt.Errorf("failed to seed menu item %s: %w", item.ID, err)
			}
			items = append(items, *created)
		}
		utils.LogInfo("Seeded default menu", map[string]interface{}{"items": len(items)})
	}
	s.store.SetMenuItems(items)
	return nil
}

func (s *menuService) GetMenuItems() []models.MenuItem {
	return s.store.MenuItems()
}

func (s *menuService) GetMenuItem(id string) (*models.MenuItem, error) {
	item, ok := s.store.MenuItem(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}
	return &item, nil
}

func validateMenuItem(req *MenuItemRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Price == nil {
		return validationError("商品名と価格を入力してください")
	}
	if *req.Price < 0 {
		return validationError("price must not be negative")
	}
	if req.Category == "" {
		req.Category = models.MenuCategories[0]
	}
	if !models.IsValidCategory(req.Category) {
		return validationError("unknown category '%s'", req.Category)
	}
	return nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, req MenuItemRequest) (*models.MenuItem, error) {
	if err := validateMenuItem(&req); err != nil {
		return nil, err
	}

	now := time.Now()
	item := models.MenuItem{
		ID:          "menu-" + uuid.NewString(),
		Name:        req.Name,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.adapter != nil {
		created, err := s.adapter.CreateMenuItem(ctx, &item)
		if err != nil {
			return nil, fmt.Errorf("failed to create menu item: %w", err)
		}
		item = *created
	}

	s.store.UpsertMenuItem(item)
	return &item, nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id string, req MenuItemRequest) (*models.MenuItem, error) {
	if err := validateMenuItem(&req); err != nil {
		return nil, err
	}
	existing, ok := s.store.MenuItem(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}

	item := existing
	item.Name = req.Name
	item.Price = *req.Price
	item.Category = req.Category
	item.ImageURL = req.ImageURL
	item.Description = req.Description
	item.UpdatedAt = time.Now()

	if s.adapter != nil {
		updated, err := s.adapter.UpdateMenuItem(ctx, &item)
		if err != nil {
			return nil, notFound(fmt.Errorf("failed to update menu item: %w", err), ErrMenuItemNotFound, id)
		}
		item = *updated
	}

	s.store.UpsertMenuItem(item)
	return &item, nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, id string) error {
	if _, ok := s.store.MenuItem(id); !ok {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}
	if s.adapter != nil {
		if err := s.adapter.DeleteMenuItem(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to delete menu item: %w", err)
		}
	}
	s.store.DeleteMenuItem(id)
	return nil
}

// ToggleAvailability flips the item in the unavailable set. Carts that already
// hold the item keep it.
func (s *menuService) ToggleAvailability(id string) (*AvailabilityResponse, error) {
	if _, ok := s.store.MenuItem(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}
	available := s.store.ToggleAvailability(id)
	utils.LogInfo("Menu item availability toggled", map[string]interface{}{"item_id": id, "available": available})
	return &AvailabilityResponse{ItemID: id, Available: available}, nil
}

func (s *menuService) GetUnavailableItems() []string {
	ids := s.store.UnavailableItems().IDs()
	sort.Strings(ids)
	return ids
}
