package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/pkg/utils"
)

// MenuRepository persists the menu catalog.
type MenuRepository interface {
	GetMenuItems(ctx context.Context) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

const menuColumns = `id, name, price, category, image_url, description, created_at, updated_at`

func scanMenuItem(row scanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var imageURL, description sql.NullString
	if err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &imageURL, &description, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.ImageURL = imageURL.String
	item.Description = description.String
	return &item, nil
}

func (r *menuRepository) GetMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *menuRepository) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	query := `INSERT INTO menu_items (id, name, price, category, image_url, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING ` + menuColumns
	now := time.Now()
	created, err := scanMenuItem(r.db.QueryRowContext(ctx, query,
		item.ID, item.Name, item.Price, item.Category,
		utils.NullString(item.ImageURL), utils.NullString(item.Description), now, now,
	))
	if err != nil {
		return nil, wrapWriteError(err, fmt.Sprintf("creating menu item '%s'", item.Name))
	}
	return created, nil
}

func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	query := `UPDATE menu_items
	          SET name = $1, price = $2, category = $3, image_url = $4, description = $5, updated_at = $6
	          WHERE id = $7
	          RETURNING ` + menuColumns
	updated, err := scanMenuItem(r.db.QueryRowContext(ctx, query,
		item.Name, item.Price, item.Category,
		utils.NullString(item.ImageURL), utils.NullString(item.Description), time.Now(), item.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapWriteError(err, fmt.Sprintf("updating menu item %s", item.ID))
	}
	return updated, nil
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting menu item %s: %v", ErrDatabaseError, id, err)
	}
	return expectAffected(result)
}
