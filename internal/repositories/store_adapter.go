package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant_pos_backend/internal/models"
)

// StoreAdapter is the persistent store the services write through when a
// database is attached.
type StoreAdapter interface {
	GetMenuItems(ctx context.Context) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error

	GetOrderHistory(ctx context.Context) ([]models.OrderHistoryRecord, error)
	SaveOrderHistory(ctx context.Context, record *models.OrderHistoryRecord) error
	UpdateOrderHistory(ctx context.Context, record *models.OrderHistoryRecord) error
	DeleteOrderHistory(ctx context.Context, id string) error

	// CreateOrder writes one order line on its own.
	CreateOrder(ctx context.Context, row models.OrderRow) (*models.OrderRow, error)
	UpdateTable(ctx context.Context, tableID string, upd models.TableUpdate) (*models.Table, error)
	GetTables(ctx context.Context) ([]models.Table, error)
	GetOrdersByTable(ctx context.Context, tableID string) ([]models.OrderRow, error)
	// ConfirmOrder writes every row and the table update in one transaction.
	ConfirmOrder(ctx context.Context, tableID string, rows []models.OrderRow, upd models.TableUpdate) error
	// CheckoutTable saves the history record and resets the table in one transaction.
	CheckoutTable(ctx context.Context, tableID string, record *models.OrderHistoryRecord, upd models.TableUpdate) error

	GetReservations(ctx context.Context, date string) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, res *models.Reservation) error
	UpdateReservation(ctx context.Context, res *models.Reservation) error
	DeleteReservation(ctx context.Context, id string) error

	GetStaffByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	GetStaffByID(ctx context.Context, id int64) (*models.StaffUser, error)
	CreateStaff(ctx context.Context, staff *models.StaffUser) (*models.StaffUser, error)
	CountStaff(ctx context.Context) (int, error)
}

type postgresAdapter struct {
	MenuRepository
	OrderHistoryRepository
	ReservationRepository
	StaffRepository

	orders OrderRepository
	db     *sql.DB
}

// NewPostgresAdapter builds a StoreAdapter over a lib/pq connection pool.
func NewPostgresAdapter(db *sql.DB) StoreAdapter {
	return &postgresAdapter{
		MenuRepository:         NewMenuRepository(db),
		OrderHistoryRepository: NewOrderHistoryRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		StaffRepository:        NewStaffRepository(db),
		orders:                 NewOrderRepository(db),
		db:                     db,
	}
}

func (a *postgresAdapter) CreateOrder(ctx context.Context, row models.OrderRow) (*models.OrderRow, error) {
	return a.orders.CreateOrder(ctx, a.db, &row)
}

func (a *postgresAdapter) UpdateTable(ctx context.Context, tableID string, upd models.TableUpdate) (*models.Table, error) {
	return a.orders.UpdateTable(ctx, a.db, tableID, upd)
}

func (a *postgresAdapter) GetTables(ctx context.Context) ([]models.Table, error) {
	return a.orders.GetTables(ctx)
}

func (a *postgresAdapter) GetOrdersByTable(ctx context.Context, tableID string) ([]models.OrderRow, error) {
	return a.orders.GetOrdersByTable(ctx, tableID)
}

func (a *postgresAdapter) ConfirmOrder(ctx context.Context, tableID string, rows []models.OrderRow, upd models.TableUpdate) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting confirmation for table %s: %v", ErrDatabaseError, tableID, err)
	}
	defer tx.Rollback()

	for i := range rows {
		row := rows[i]
		row.TableID = tableID
		if _, err := a.orders.CreateOrder(ctx, tx, &row); err != nil {
			return err
		}
	}
	if _, err := a.orders.UpdateTable(ctx, tx, tableID, upd); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing confirmation for table %s: %v", ErrDatabaseError, tableID, err)
	}
	return nil
}

func (a *postgresAdapter) CheckoutTable(ctx context.Context, tableID string, record *models.OrderHistoryRecord, upd models.TableUpdate) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting checkout for table %s: %v", ErrDatabaseError, tableID, err)
	}
	defer tx.Rollback()

	if err := saveOrderHistory(ctx, tx, record); err != nil {
		return err
	}
	if _, err := a.orders.UpdateTable(ctx, tx, tableID, upd); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing checkout for table %s: %v", ErrDatabaseError, tableID, err)
	}
	return nil
}
