package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"restaurant_pos_backend/internal/models"
)

// memoryStaffRepository keeps staff accounts in process when no database is attached.
type memoryStaffRepository struct {
	mu     sync.RWMutex
	byID   map[int64]models.StaffUser
	nextID int64
}

// NewMemoryStaffRepository returns an empty in-process StaffRepository.
func NewMemoryStaffRepository() StaffRepository {
	return &memoryStaffRepository{byID: make(map[int64]models.StaffUser)}
}

func (r *memoryStaffRepository) GetStaffByUsername(_ context.Context, username string) (*models.StaffUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.byID {
		if s.Username == username {
			out := s
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryStaffRepository) GetStaffByID(_ context.Context, id int64) (*models.StaffUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *memoryStaffRepository) CreateStaff(_ context.Context, staff *models.StaffUser) (*models.StaffUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.Username == staff.Username {
			return nil, fmt.Errorf("%w: staff user '%s'", ErrDuplicateKey, staff.Username)
		}
	}
	r.nextID++
	staff.ID = r.nextID
	staff.CreatedAt = time.Now()
	r.byID[staff.ID] = *staff
	return staff, nil
}

func (r *memoryStaffRepository) CountStaff(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
