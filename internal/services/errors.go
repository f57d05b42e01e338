package services

import (
	"errors"
	"fmt"

	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/store"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrOrderHistoryNotFound = errors.New("order history record not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrStaffNotFound        = errors.New("staff user not found")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUsernameExists       = errors.New("username already exists")
	ErrTokenGeneration      = errors.New("failed to generate token")
)

// validationError wraps ErrValidation with a reason shown to the caller.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound maps store and repository misses onto the service sentinel.
func notFound(err error, sentinel error, id string) error {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return err
}
