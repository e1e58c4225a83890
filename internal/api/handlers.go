package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth        service.IAuthService
	Profile     service.IProfileService
	Ingredients service.IIngredientService
	Recipes     service.IRecipeService
	Tracker     service.IDailyEatsService
	Search      service.ISearchService
	Feed        LiveFeed

	// SearchLimiter is optional; searches are unlimited without it.
	SearchLimiter *middleware.RateLimiter
}

// HealthCheck reports whether the API and, when db is set, the database
// are reachable.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := database.HealthCheck(ctx, db); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Recipe tracker API is running",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, svc Services, log logging.Logger) {
	router.GET("/health", HealthCheck(db))

	v1 := router.Group("/api/v1")
	NewAuthHandler(svc.Auth, log).RegisterRoutes(v1)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(svc.Auth))

	NewProfileHandler(svc.Profile, log).RegisterRoutes(authed)
	NewIngredientHandler(svc.Ingredients, log).RegisterRoutes(authed)
	NewRecipeHandler(svc.Recipes, svc.Tracker, log).RegisterRoutes(authed)
	NewSearchHandler(svc.Search, svc.SearchLimiter, log).RegisterRoutes(authed)

	tracker := NewTrackerHandler(svc.Tracker, svc.Feed, log)
	tracker.RegisterRoutes(authed)
	if svc.Feed != nil {
		v1.GET("/tracker/ws", middleware.QueryTokenAuth(svc.Auth), tracker.Subscribe)
	}
}
