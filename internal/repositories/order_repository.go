package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// OrderRepository writes confirmed order lines and the table state that goes with them.
type OrderRepository interface {
	CreateOrder(ctx context.Context, executor SQLExecutor, row *models.OrderRow) (*models.OrderRow, error)
	GetOrdersByTable(ctx context.Context, tableID string) ([]models.OrderRow, error)
	UpdateTable(ctx context.Context, executor SQLExecutor, tableID string, upd models.TableUpdate) (*models.Table, error)
	GetTables(ctx context.Context) ([]models.Table, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, executor SQLExecutor, row *models.OrderRow) (*models.OrderRow, error) {
	query := `INSERT INTO orders (table_id, menu_item_id, quantity, unit_price, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	err := executor.QueryRowContext(ctx, query,
		row.TableID, row.MenuItemID, row.Quantity, row.UnitPrice, row.CreatedAt,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating order line for table %s: %v", ErrDatabaseError, row.TableID, err)
	}
	return row, nil
}

func (r *orderRepository) GetOrdersByTable(ctx context.Context, tableID string) ([]models.OrderRow, error) {
	query := `SELECT id, table_id, menu_item_id, quantity, unit_price, created_at
	          FROM orders WHERE table_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, tableID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting orders for table %s: %v", ErrDatabaseError, tableID, err)
	}
	defer rows.Close()

	out := []models.OrderRow{}
	for rows.Next() {
		var o models.OrderRow
		if err := rows.Scan(&o.ID, &o.TableID, &o.MenuItemID, &o.Quantity, &o.UnitPrice, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning order line: %v", ErrDatabaseError, err)
		}
		out = append(out, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order lines: %v", ErrDatabaseError, err)
	}
	return out, nil
}

const tableColumns = `id, number, status, total_amount, order_start_time, customer_count, updated_at`

func scanTable(row scanner) (*models.Table, error) {
	var t models.Table
	var status string
	var start sql.NullTime
	if err := row.Scan(&t.ID, &t.Number, &status, &t.TotalAmount, &start, &t.CustomerCount, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = models.TableStatus(status)
	if start.Valid {
		st := start.Time
		t.OrderStartTime = &st
	}
	return &t, nil
}

// UpdateTable upserts the table row. A table that has never been written is created with its id as number.
func (r *orderRepository) UpdateTable(ctx context.Context, executor SQLExecutor, tableID string, upd models.TableUpdate) (*models.Table, error) {
	query := `INSERT INTO tables (id, number, status, total_amount, order_start_time, customer_count, updated_at)
	          VALUES ($1, $1, $2, $3, $4, $5, $6)
	          ON CONFLICT (id) DO UPDATE
	          SET status = EXCLUDED.status,
	              total_amount = EXCLUDED.total_amount,
	              order_start_time = EXCLUDED.order_start_time,
	              customer_count = EXCLUDED.customer_count,
	              updated_at = EXCLUDED.updated_at
	          RETURNING ` + tableColumns

	var start sql.NullTime
	if upd.OrderStartTime != nil {
		start = sql.NullTime{Time: *upd.OrderStartTime, Valid: true}
	}
	table, err := scanTable(executor.QueryRowContext(ctx, query,
		tableID, string(upd.Status), upd.TotalAmount, start, upd.CustomerCount, time.Now(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating table %s: %v", ErrDatabaseError, tableID, err)
	}
	return table, nil
}

func (r *orderRepository) GetTables(ctx context.Context) ([]models.Table, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: getting tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	out := []models.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		out = append(out, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tables: %v", ErrDatabaseError, err)
	}
	return out, nil
}
