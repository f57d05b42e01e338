package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"
)

// respondServiceError maps service and repository sentinels onto API errors.
// message describes the failed action for the 500 case.
func respondServiceError(c *gin.Context, err error, message string) {
	var apiErr *utils.APIError
	switch {
	case errors.Is(err, cart.ErrItemUnavailable):
		apiErr = utils.NewAPIError(http.StatusConflict, utils.ErrCodeItemUnavailable, err.Error(), "")
	case errors.Is(err, services.ErrValidation):
		apiErr = utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), "")
	case errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrOrderHistoryNotFound),
		errors.Is(err, services.ErrReservationNotFound),
		errors.Is(err, services.ErrStaffNotFound),
		errors.Is(err, repositories.ErrNotFound):
		apiErr = utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), "")
	case errors.Is(err, services.ErrInvalidCredentials):
		apiErr = utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", "")
	case errors.Is(err, services.ErrUsernameExists), errors.Is(err, repositories.ErrDuplicateKey):
		apiErr = utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), "")
	case errors.Is(err, repositories.ErrDatabaseError):
		utils.LogError(err, message)
		apiErr = utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, message, "persistent store attached: true")
	default:
		utils.LogError(err, message)
		apiErr = utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, message, "Internal error")
	}
	utils.RespondWithError(c, apiErr)
}

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return false
	}
	return true
}
