package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles staff sign-in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to sign in.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurrentUser returns the signed-in staff profile.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	staffID, ok := c.Get(utils.ContextStaffIDKey)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", "Missing staff ID"))
		return
	}
	id, _ := staffID.(int64)

	user, err := h.authService.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load profile.")
		return
	}
	c.JSON(http.StatusOK, user)
}
