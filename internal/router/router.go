package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restaurant_pos_backend/internal/handlers"
	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"
)

// Deps are the services and settings the HTTP surface is built from.
type Deps struct {
	Menu         services.MenuService
	Tables       services.TableService
	Orders       services.OrderService
	History      services.OrderHistoryService
	Reservations services.ReservationService
	Auth         services.AuthService

	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// New builds the engine with logging, CORS and every route mounted.
func New(deps Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), utils.GinLogger())

	config := cors.DefaultConfig()
	config.AllowOrigins = deps.AllowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Idempotency-Key"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	Setup(engine, deps)
	return engine
}

// Setup mounts the /api/v1 routes.
func Setup(engine *gin.Engine, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.Auth)
	staffHandler := handlers.NewStaffHandler(deps.Auth)
	menuHandler := handlers.NewMenuHandler(deps.Menu)
	tableHandler := handlers.NewTableHandler(deps.Tables, deps.Orders)
	historyHandler := handlers.NewOrderHistoryHandler(deps.History)
	reservationHandler := handlers.NewReservationHandler(deps.Reservations)

	apiV1 := engine.Group("/api/v1")
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupTableRoutes(authenticated, tableHandler)
		SetupOrderHistoryRoutes(authenticated, historyHandler)
		SetupReservationRoutes(authenticated, reservationHandler)
	}
}

func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}
