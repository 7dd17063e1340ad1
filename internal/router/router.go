package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrifast/backend/internal/api"
	"github.com/nutrifast/backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *api.AuthHandler
	Profile *api.ProfileHandler
	Fasting *api.FastingHandler
	Food    *api.FoodHandler
	Recipe  *api.RecipeHandler
	Health  *api.HealthHandler

	TokenValidator    middleware.TokenValidator
	FoodLogLimiter    *middleware.RateLimiter
	FoodSearchLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	h.Health.RegisterRoutes(v1)
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(h.TokenValidator))
	{
		h.Profile.RegisterRoutes(protected)
		h.Fasting.RegisterRoutes(protected)
		h.Food.RegisterRoutes(protected,
			h.FoodLogLimiter.RateLimitMiddleware(),
			h.FoodSearchLimiter.RateLimitMiddleware())
		h.Recipe.RegisterRoutes(protected)
	}

	return router
}
