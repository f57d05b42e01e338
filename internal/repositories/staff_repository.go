package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// StaffRepository looks up and creates terminal operators.
type StaffRepository interface {
	GetStaffByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	GetStaffByID(ctx context.Context, id int64) (*models.StaffUser, error)
	CreateStaff(ctx context.Context, staff *models.StaffUser) (*models.StaffUser, error)
	CountStaff(ctx context.Context) (int, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

func scanStaff(row scanner) (*models.StaffUser, error) {
	var s models.StaffUser
	if err := row.Scan(&s.ID, &s.Username, &s.PasswordHash, &s.Role, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) GetStaffByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	query := `SELECT id, username, password_hash, role, created_at FROM staff_users WHERE username = $1`
	staff, err := scanStaff(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding staff by username %s: %v", ErrDatabaseError, username, err)
	}
	return staff, nil
}

func (r *staffRepository) GetStaffByID(ctx context.Context, id int64) (*models.StaffUser, error) {
	query := `SELECT id, username, password_hash, role, created_at FROM staff_users WHERE id = $1`
	staff, err := scanStaff(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding staff by ID %d: %v", ErrDatabaseError, id, err)
	}
	return staff, nil
}

func (r *staffRepository) CreateStaff(ctx context.Context, staff *models.StaffUser) (*models.StaffUser, error) {
	query := `INSERT INTO staff_users (username, password_hash, role, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, staff.Username, staff.PasswordHash, staff.Role, time.Now()).
		Scan(&staff.ID, &staff.CreatedAt)
	if err != nil {
		return nil, wrapWriteError(err, fmt.Sprintf("creating staff user '%s'", staff.Username))
	}
	return staff, nil
}

func (r *staffRepository) CountStaff(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting staff users: %v", ErrDatabaseError, err)
	}
	return n, nil
}
