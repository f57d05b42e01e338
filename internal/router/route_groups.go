package router

import (
	"github.com/gin-gonic/gin"

	"restaurant_pos_backend/internal/handlers"
	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/models"
)

// SetupStaffRoutes sets up staff account management. Managers only.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	staffRoutes.Use(middleware.RoleAuthMiddleware(models.RoleManager))
	{
		staffRoutes.POST("", staffHandler.CreateStaffMember)
	}
}

// SetupMenuRoutes sets up the menu routes. Catalog writes are for managers.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := authenticatedGroup.Group("/menu-items")
	{
		menuRoutes.GET("", menuHandler.GetMenuItems)
		menuRoutes.GET("/unavailable", menuHandler.GetUnavailableItems)
		menuRoutes.GET("/:id", menuHandler.GetMenuItemByID)

		managerRoutes := menuRoutes.Group("")
		managerRoutes.Use(middleware.RoleAuthMiddleware(models.RoleManager))
		{
			managerRoutes.POST("", menuHandler.CreateMenuItem)
			managerRoutes.PUT("/:id", menuHandler.UpdateMenuItem)
			managerRoutes.DELETE("/:id", menuHandler.DeleteMenuItem)
			managerRoutes.POST("/:id/toggle-availability", menuHandler.ToggleAvailability)
		}
	}
}

// SetupTableRoutes sets up table status, cart, confirmation and checkout routes.
func SetupTableRoutes(authenticatedGroup *gin.RouterGroup, tableHandler *handlers.TableHandler) {
	tableRoutes := authenticatedGroup.Group("/tables")
	tableRoutes.Use(middleware.RoleAuthMiddleware(models.RoleManager, models.RoleStaff))
	{
		tableRoutes.GET("", tableHandler.GetTables)
		tableRoutes.GET("/:id", tableHandler.GetTableByID)
		tableRoutes.PATCH("/:id/status", tableHandler.UpdateTableStatus)
		tableRoutes.GET("/:id/order", tableHandler.GetTableOrder)
		tableRoutes.POST("/:id/pending-items", tableHandler.AddPendingItem)
		tableRoutes.DELETE("/:id/pending-items/:itemId", tableHandler.RemovePendingItem)
		tableRoutes.POST("/:id/confirm", tableHandler.ConfirmOrder)
		tableRoutes.POST("/:id/checkout", tableHandler.Checkout)
	}
}

// SetupOrderHistoryRoutes sets up the order history routes.
func SetupOrderHistoryRoutes(authenticatedGroup *gin.RouterGroup, historyHandler *handlers.OrderHistoryHandler) {
	historyRoutes := authenticatedGroup.Group("/order-history")
	historyRoutes.Use(middleware.RoleAuthMiddleware(models.RoleManager, models.RoleStaff))
	{
		historyRoutes.GET("", historyHandler.GetOrderHistory)
		historyRoutes.GET("/:id", historyHandler.GetOrderHistoryByID)
		historyRoutes.PUT("/:id", historyHandler.UpdateOrderHistory)
		historyRoutes.PATCH("/:id/items/:index", historyHandler.EditOrderHistoryItem)
		historyRoutes.DELETE("/:id", historyHandler.DeleteOrderHistory)
	}
}

// SetupReservationRoutes sets up the reservation calendar routes.
func SetupReservationRoutes(authenticatedGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler) {
	reservationRoutes := authenticatedGroup.Group("/reservations")
	reservationRoutes.Use(middleware.RoleAuthMiddleware(models.RoleManager, models.RoleStaff))
	{
		reservationRoutes.GET("", reservationHandler.GetReservations)
		reservationRoutes.POST("", reservationHandler.CreateReservation)
		reservationRoutes.PUT("/:id", reservationHandler.UpdateReservation)
		reservationRoutes.DELETE("/:id", reservationHandler.DeleteReservation)
	}
}
