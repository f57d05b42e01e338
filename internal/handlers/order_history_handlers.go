package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"
)

type OrderHistoryHandler struct {
	historyService services.OrderHistoryService
}

func NewOrderHistoryHandler(hs services.OrderHistoryService) *OrderHistoryHandler {
	return &OrderHistoryHandler{historyService: hs}
}

// GetOrderHistory lists completed orders, newest first.
func (h *OrderHistoryHandler) GetOrderHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.historyService.GetOrderHistory())
}

func (h *OrderHistoryHandler) GetOrderHistoryByID(c *gin.Context) {
	rec, err := h.historyService.GetOrderHistoryRecord(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch order history.")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *OrderHistoryHandler) UpdateOrderHistory(c *gin.Context) {
	var req services.UpdateOrderHistoryRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.historyService.UpdateOrderHistory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update order history.")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// EditOrderHistoryItem changes one line of a record by index.
func (h *OrderHistoryHandler) EditOrderHistoryItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondValidationFailed(c, "index must be an integer")
		return
	}
	var edit cart.HistoryItemEdit
	if !bindJSON(c, &edit) {
		return
	}
	rec, err := h.historyService.EditOrderHistoryItem(c.Request.Context(), c.Param("id"), index, edit)
	if err != nil {
		respondServiceError(c, err, "Failed to update order history item.")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *OrderHistoryHandler) DeleteOrderHistory(c *gin.Context) {
	if err := h.historyService.DeleteOrderHistory(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete order history.")
		return
	}
	c.Status(http.StatusNoContent)
}
