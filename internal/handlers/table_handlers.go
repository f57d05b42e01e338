package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"
)

// TableHandler serves the floor: tables, their carts, confirmation and checkout.
type TableHandler struct {
	tableService services.TableService
	orderService services.OrderService
}

func NewTableHandler(ts services.TableService, os services.OrderService) *TableHandler {
	return &TableHandler{tableService: ts, orderService: os}
}

func (h *TableHandler) GetTables(c *gin.Context) {
	c.JSON(http.StatusOK, h.tableService.GetAllTables())
}

func (h *TableHandler) GetTableByID(c *gin.Context) {
	table, err := h.tableService.GetTable(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch table.")
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTableStatus sets any status; there are no transition rules.
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	var req services.UpdateTableStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	table, err := h.tableService.UpdateTableStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update table status.")
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *TableHandler) GetTableOrder(c *gin.Context) {
	view, err := h.orderService.GetTableOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch table order.")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TableHandler) AddPendingItem(c *gin.Context) {
	var req services.AddPendingItemRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.orderService.AddPendingItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to add item.")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TableHandler) RemovePendingItem(c *gin.Context) {
	view, err := h.orderService.RemovePendingItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove item.")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmOrder merges the pending cart into the confirmed order. An
// Idempotency-Key header makes retries return the first result.
func (h *TableHandler) ConfirmOrder(c *gin.Context) {
	var req services.ConfirmOrderRequest
	if c.Request.ContentLength != 0 && c.Request.Body != http.NoBody {
		// a chunked request may still carry no body at all
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
			return
		}
	}
	req.IdempotencyKey = c.GetHeader("Idempotency-Key")

	view, err := h.orderService.ConfirmPendingOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to confirm order.")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TableHandler) Checkout(c *gin.Context) {
	record, err := h.orderService.CheckoutTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to check out table.")
		return
	}
	c.JSON(http.StatusCreated, record)
}
