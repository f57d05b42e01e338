package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/pkg/utils"
)

const minPasswordLength = 8

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, staffID int64) (*models.StaffUser, error)
	CreateStaff(ctx context.Context, username, password, role string) (*models.StaffUser, error)
	BootstrapManager(ctx context.Context, username, password string) error
}

type authService struct {
	staff repositories.StaffRepository
}

// NewAuthService creates an AuthService over any staff directory: the
// database adapter or the in-process repository.
func NewAuthService(staff repositories.StaffRepository) AuthService {
	return &authService{staff: staff}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.staff.GetStaffByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = ""
	return &models.LoginResponse{AccessToken: token, ExpiresAt: expiresAt, User: *user}, nil
}

func (s *authService) GetProfile(ctx context.Context, staffID int64) (*models.StaffUser, error) {
	user, err := s.staff.GetStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) CreateStaff(ctx context.Context, username, password, role string) (*models.StaffUser, error) {
	username = strings.TrimSpace(username)
	if utils.IsEmpty(username) {
		return nil, validationError("username is required")
	}
	if !utils.IsValidPasswordLength(password, minPasswordLength) {
		return nil, validationError("password must be at least %d characters", minPasswordLength)
	}
	if role != models.RoleManager && role != models.RoleStaff {
		return nil, validationError("unknown role '%s'", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	created, err := s.staff.CreateStaff(ctx, &models.StaffUser{Username: username, PasswordHash: string(hash), Role: role})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create staff user: %w", err)
	}
	created.PasswordHash = ""
	return created, nil
}

// BootstrapManager creates the first manager account when no staff exist yet.
// Empty credentials skip it.
func (s *authService) BootstrapManager(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	n, err := s.staff.CountStaff(ctx)
	if err != nil {
		return fmt.Errorf("failed to count staff users: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.CreateStaff(ctx, username, password, models.RoleManager); err != nil {
		return err
	}
	utils.LogInfo("Bootstrap manager account created", map[string]interface{}{"username": username})
	return nil
}
