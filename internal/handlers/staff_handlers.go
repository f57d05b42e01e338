package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/services"
)

// CreateStaffMemberRequest is the body for adding a terminal operator.
type CreateStaffMemberRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// StaffHandler lets managers add staff accounts.
type StaffHandler struct {
	authService services.AuthService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(as services.AuthService) *StaffHandler {
	return &StaffHandler{authService: as}
}

// CreateStaffMember handles the creation of a new staff account.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req CreateStaffMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.CreateStaff(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		respondServiceError(c, err, "Failed to create staff member.")
		return
	}
	c.JSON(http.StatusCreated, user)
}
