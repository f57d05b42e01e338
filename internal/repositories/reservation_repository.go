package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/pkg/utils"
)

// ReservationRepository persists the reservation calendar.
type ReservationRepository interface {
	GetReservations(ctx context.Context, date string) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, res *models.Reservation) error
	UpdateReservation(ctx context.Context, res *models.Reservation) error
	DeleteReservation(ctx context.Context, id string) error
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// GetReservations returns reservations for date, or all when date is empty.
func (r *reservationRepository) GetReservations(ctx context.Context, date string) ([]models.Reservation, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, reservation_date, reservation_time, customer_name, customer_count,
	                                 table_number, notes, menu_requests, created_at
	                          FROM reservations`)
	args := []interface{}{}
	if date != "" {
		queryBuilder.WriteString(" WHERE reservation_date = $1")
		args = append(args, date)
	}
	queryBuilder.WriteString(" ORDER BY reservation_date, reservation_time")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		var day time.Time
		var notes, menuRequests sql.NullString
		if err := rows.Scan(&res.ID, &day, &res.Time, &res.CustomerName, &res.CustomerCount,
			&res.TableNumber, &notes, &menuRequests, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		res.Date = day.Format(models.DateKeyLayout)
		res.Notes = notes.String
		res.MenuRequests = menuRequests.String
		out = append(out, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservations: %v", ErrDatabaseError, err)
	}
	return out, nil
}

func (r *reservationRepository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}
	query := `INSERT INTO reservations (id, reservation_date, reservation_time, customer_name, customer_count,
	                                    table_number, notes, menu_requests, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, res.ID, res.Date, res.Time, res.CustomerName, res.CustomerCount,
		res.TableNumber, utils.NullString(res.Notes), utils.NullString(res.MenuRequests), res.CreatedAt)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("creating reservation for %s", res.CustomerName))
	}
	return nil
}

func (r *reservationRepository) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	query := `UPDATE reservations
	          SET reservation_date = $1, reservation_time = $2, customer_name = $3, customer_count = $4,
	              table_number = $5, notes = $6, menu_requests = $7
	          WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query, res.Date, res.Time, res.CustomerName, res.CustomerCount,
		res.TableNumber, utils.NullString(res.Notes), utils.NullString(res.MenuRequests), res.ID)
	if err != nil {
		return fmt.Errorf("%w: updating reservation %s: %v", ErrDatabaseError, res.ID, err)
	}
	return expectAffected(result)
}

func (r *reservationRepository) DeleteReservation(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation %s: %v", ErrDatabaseError, id, err)
	}
	return expectAffected(result)
}
