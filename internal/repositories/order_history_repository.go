package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"restaurant_pos_backend/internal/models"
)

// OrderHistoryRepository persists completed orders. Line items are stored as a jsonb array.
type OrderHistoryRepository interface {
	GetOrderHistory(ctx context.Context) ([]models.OrderHistoryRecord, error)
	SaveOrderHistory(ctx context.Context, record *models.OrderHistoryRecord) error
	UpdateOrderHistory(ctx context.Context, record *models.OrderHistoryRecord) error
	DeleteOrderHistory(ctx context.Context, id string) error
}

type orderHistoryRepository struct {
	db *sql.DB
}

func NewOrderHistoryRepository(db *sql.DB) OrderHistoryRepository {
	return &orderHistoryRepository{db: db}
}

func (r *orderHistoryRepository) GetOrderHistory(ctx context.Context) ([]models.OrderHistoryRecord, error) {
	query := `SELECT id, table_number, items, total_amount, completed_at
	          FROM order_history ORDER BY completed_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting order history: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.OrderHistoryRecord{}
	for rows.Next() {
		var rec models.OrderHistoryRecord
		var items []byte
		if err := rows.Scan(&rec.ID, &rec.TableNumber, &items, &rec.Total, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scanning order history: %v", ErrDatabaseError, err)
		}
		if err := json.Unmarshal(items, &rec.Items); err != nil {
			return nil, fmt.Errorf("%w: decoding items of order %s: %v", ErrDatabaseError, rec.ID, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order history: %v", ErrDatabaseError, err)
	}
	return records, nil
}

func (r *orderHistoryRepository) SaveOrderHistory(ctx context.Context, record *models.OrderHistoryRecord) error {
	return saveOrderHistory(ctx, r.db, record)
}

func saveOrderHistory(ctx context.Context, executor SQLExecutor, record *models.OrderHistoryRecord) error {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("%w: encoding items: %v", ErrDatabaseError, err)
	}
	query := `INSERT INTO order_history (id, table_number, items, total_amount, completed_at)
	          VALUES ($1, $2, $3, $4, $5)`
	if _, err := executor.ExecContext(ctx, query, record.ID, record.TableNumber, items, record.Total, record.Timestamp); err != nil {
		return wrapWriteError(err, fmt.Sprintf("saving order history %s", record.ID))
	}
	return nil
}

func (r *orderHistoryRepository) UpdateOrderHistory(ctx context.Context, record *models.OrderHistoryRecord) error {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("%w: encoding items: %v", ErrDatabaseError, err)
	}
	query := `UPDATE order_history SET table_number = $1, items = $2, total_amount = $3, completed_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, record.TableNumber, items, record.Total, record.Timestamp, record.ID)
	if err != nil {
		return fmt.Errorf("%w: updating order history %s: %v", ErrDatabaseError, record.ID, err)
	}
	return expectAffected(result)
}

func (r *orderHistoryRepository) DeleteOrderHistory(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM order_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting order history %s: %v", ErrDatabaseError, id, err)
	}
	return expectAffected(result)
}
