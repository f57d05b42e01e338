package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/services"
)

// MenuHandler serves the menu catalog and the availability toggle.
type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.menuService.GetMenuItems())
}

func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	item, err := h.menuService.GetMenuItem(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.menuService.CreateMenuItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create menu item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.menuService.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete menu item.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleAvailability flips whether an item can be added to carts.
func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	res, err := h.menuService.ToggleAvailability(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to toggle availability.")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MenuHandler) GetUnavailableItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"item_ids": h.menuService.GetUnavailableItems()})
}
