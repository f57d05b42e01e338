package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_pos_backend/internal/models"
)

func newMockAdapter(t *testing.T) (StoreAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresAdapter(db), mock
}

func confirmRows() []models.OrderRow {
	return []models.OrderRow{
		{MenuItemID: "A", Quantity: 1, UnitPrice: 980},
		{MenuItemID: "B", Quantity: 1, UnitPrice: 200},
	}
}

func tableRow(id string, status models.TableStatus, total int64, start time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "number", "status", "total_amount", "order_start_time", "customer_count", "updated_at"}).
		AddRow(id, id, string(status), total, start, 1, start)
}

func TestConfirmOrderCommitsAllRowsAndTable(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("3", "A", 1, int64(980), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), start))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("3", "B", 1, int64(200), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), start))
	mock.ExpectQuery(`INSERT INTO tables`).
		WithArgs("3", "occupied", int64(1180), sqlmock.AnyArg(), 1, sqlmock.AnyArg()).
		WillReturnRows(tableRow("3", models.TableStatusOccupied, 1180, start))
	mock.ExpectCommit()

	err := adapter.ConfirmOrder(context.Background(), "3", confirmRows(), models.TableUpdate{
		Status: models.TableStatusOccupied, CustomerCount: 1, OrderStartTime: &start, TotalAmount: 1180,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmOrderRollsBackWhenALineFails(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), start))
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := adapter.ConfirmOrder(context.Background(), "3", confirmRows(), models.TableUpdate{Status: models.TableStatusOccupied})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseError))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmOrderRollsBackWhenTableUpdateFails(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), start))
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), start))
	mock.ExpectQuery(`INSERT INTO tables`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := adapter.ConfirmOrder(context.Background(), "3", confirmRows(), models.TableUpdate{Status: models.TableStatusOccupied})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMenuItemsScansNullableColumns(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM menu_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "category", "image_url", "description", "created_at", "updated_at"}).
			AddRow("m1", "緑茶", int64(200), models.CategoryDrink, nil, "温かいお茶", now, now))

	items, err := adapter.GetMenuItems(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "", items[0].ImageURL)
	assert.Equal(t, "温かいお茶", items[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingHistoryReturnsNotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(`DELETE FROM order_history`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.DeleteOrderHistory(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderHistoryItemsRoundTripThroughJSONB(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM order_history`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_number", "items", "total_amount", "completed_at"}).
			AddRow("h1", "2", []byte(`[{"name":"抹茶","quantity":2,"price":350}]`), int64(700), at))

	records, err := adapter.GetOrderHistory(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []models.OrderHistoryItem{{Name: "抹茶", Quantity: 2, Price: 350}}, records[0].Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStaffByUsernameNotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM staff_users WHERE username`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}))

	_, err := adapter.GetStaffByUsername(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReservationsFilteredByDate(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM reservations WHERE reservation_date = \$1`).
		WithArgs("2024-05-02").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_date", "reservation_time", "customer_name", "customer_count", "table_number", "notes", "menu_requests", "created_at"}).
			AddRow("r1", day, "19:00", "山田", 4, "5", nil, nil, day))

	out, err := adapter.GetReservations(context.Background(), "2024-05-02")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2024-05-02", out[0].Date)
	assert.Equal(t, "山田", out[0].CustomerName)
}
