package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/services"
)

// ReservationHandler serves the reservation calendar.
type ReservationHandler struct {
	reservationService services.ReservationService
}

func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// GetReservations lists reservations, filtered by ?date=YYYY-MM-DD when given.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	rs, err := h.reservationService.GetReservations(c.Query("date"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch reservations.")
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.ReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.reservationService.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create reservation.")
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var req services.ReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.reservationService.UpdateReservation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update reservation.")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	if err := h.reservationService.DeleteReservation(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete reservation.")
		return
	}
	c.Status(http.StatusNoContent)
}
