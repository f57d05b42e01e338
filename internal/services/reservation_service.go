package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/store"
)

// ReservationRequest is the body for creating or replacing a reservation.
type ReservationRequest struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerName  string `json:"customer_name"`
	CustomerCount int    `json:"customer_count"`
	TableNumber   string `json:"table_number"`
	Notes         string `json:"notes"`
	MenuRequests  string `json:"menu_requests"`
}

type ReservationService interface {
	LoadReservations(ctx context.Context) error
	GetReservations(date string) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, req ReservationRequest) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, id string, req ReservationRequest) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

type reservationService struct {
	store   *store.Store
	adapter repositories.StoreAdapter
}

// NewReservationService creates a ReservationService. adapter may be nil.
func NewReservationService(st *store.Store, adapter repositories.StoreAdapter) ReservationService {
	return &reservationService{store: st, adapter: adapter}
}

func (s *reservationService) LoadReservations(ctx context.Context) error {
	if s.adapter == nil {
		return nil
	}
	rs, err := s.adapter.GetReservations(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to load reservations: %w", err)
	}
	s.store.SetReservations(rs)
	return nil
}

func validateDateKey(date string) error {
	if _, err := time.Parse(models.DateKeyLayout, date); err != nil {
		return validationError("date must be YYYY-MM-DD, got '%s'", date)
	}
	return nil
}

func (s *reservationService) GetReservations(date string) ([]models.Reservation, error) {
	if date != "" {
		if err := validateDateKey(date); err != nil {
			return nil, err
		}
	}
	return s.store.Reservations(date), nil
}

func validateReservation(req *ReservationRequest) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Time = strings.TrimSpace(req.Time)
	if req.CustomerName == "" || req.Time == "" || req.CustomerCount <= 0 {
		return validationError("必須項目を入力してください")
	}
	if err := validateDateKey(req.Date); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return validationError("time must be HH:MM, got '%s'", req.Time)
	}
	return nil
}

func (s *reservationService) CreateReservation(ctx context.Context, req ReservationRequest) (*models.Reservation, error) {
	if err := validateReservation(&req); err != nil {
		return nil, err
	}
	res := models.Reservation{
		ID:            uuid.NewString(),
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerCount: req.CustomerCount,
		TableNumber:   req.TableNumber,
		Notes:         req.Notes,
		MenuRequests:  req.MenuRequests,
		CreatedAt:     time.Now(),
	}
	if s.adapter != nil {
		if err := s.adapter.CreateReservation(ctx, &res); err != nil {
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}
	}
	s.store.AddReservation(res)
	return &res, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, id string, req ReservationRequest) (*models.Reservation, error) {
	if err := validateReservation(&req); err != nil {
		return nil, err
	}
	existing, err := s.store.Reservation(id)
	if err != nil {
		return nil, notFound(err, ErrReservationNotFound, id)
	}

	res := existing
	res.Date = req.Date
	res.Time = req.Time
	res.CustomerName = req.CustomerName
	res.CustomerCount = req.CustomerCount
	res.TableNumber = req.TableNumber
	res.Notes = req.Notes
	res.MenuRequests = req.MenuRequests

	if s.adapter != nil {
		if err := s.adapter.UpdateReservation(ctx, &res); err != nil {
			return nil, notFound(fmt.Errorf("failed to update reservation: %w", err), ErrReservationNotFound, id)
		}
	}
	if err := s.store.UpdateReservation(res); err != nil {
		return nil, notFound(err, ErrReservationNotFound, id)
	}
	return &res, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, id string) error {
	if _, err := s.store.Reservation(id); err != nil {
		return notFound(err, ErrReservationNotFound, id)
	}
	if s.adapter != nil {
		if err := s.adapter.DeleteReservation(ctx, id); err != nil {
			return notFound(fmt.Errorf("failed to delete reservation: %w", err), ErrReservationNotFound, id)
		}
	}
	return notFound(s.store.DeleteReservation(id), ErrReservationNotFound, id)
}
