package routes

import (
	"kalasangam_backend/internal/handlers"
	"kalasangam_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Middlewares - общие проверки, собранные в app.
type Middlewares struct {
	APIKey      gin.HandlerFunc
	RequireAuth gin.HandlerFunc
	AuthLimit   gin.HandlerFunc
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	mw Middlewares,
) {
	// health, metrics и swagger без apikey
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	appHandlers.SetupHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(mw.APIKey)
	{
		appHandlers.AuthHandler.RegisterRoutes(protected, mw.RequireAuth, mw.AuthLimit)
		appHandlers.SessionHandler.RegisterRoutes(protected, mw.RequireAuth)
		appHandlers.ProfileHandler.RegisterRoutes(protected, mw.RequireAuth)
		appHandlers.ProjectHandler.RegisterRoutes(protected, mw.RequireAuth)
		appHandlers.DashboardHandler.RegisterRoutes(protected, mw.RequireAuth)
		appHandlers.SkillingHandler.RegisterRoutes(protected)
		appHandlers.CoachHandler.RegisterRoutes(protected, mw.RequireAuth)
	}

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}

// RegisterSetupRoutes - маршруты режима настройки: только /api/v1/setup и health.
func RegisterSetupRoutes(ginRouter *gin.Engine, setup *handlers.SetupHandler, health *handlers.HealthHandler) {
	health.RegisterRoutes(ginRouter)
	setup.RegisterRoutes(ginRouter.Group("/api/v1"))
}
