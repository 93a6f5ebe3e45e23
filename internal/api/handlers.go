package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/myfiorentina/progetto-fitness/internal/database"
	"github.com/myfiorentina/progetto-fitness/internal/middleware"
	"github.com/myfiorentina/progetto-fitness/internal/service"
)

// Version is reported by the health endpoint.
const Version = "v1.0.0"

// Dependencies groups what RegisterRoutes needs to build the handlers.
type Dependencies struct {
	DB       *gorm.DB
	Ingester service.MealIngester
	History  service.HistoryReader
	Limiter  *middleware.RateLimiter
	Logger   logrus.FieldLogger
}

// HealthCheck returns the health status of the API. When db is set the
// store is pinged too.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := database.HealthCheck(ctx, db); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "Database is not reachable",
					"version": Version,
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Meal tracker API is running",
			"version": Version,
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router gin.IRouter, deps Dependencies) {
	health := HealthCheck(deps.DB)
	router.GET("/health", health)
	router.GET("/api/health", health)

	NewMealHandler(deps.Ingester, deps.History, deps.Limiter, deps.Logger).RegisterRoutes(router)

	if deps.DB != nil {
		NewSchemaHandler(deps.DB, deps.Logger).RegisterRoutes(router)
	}
}
