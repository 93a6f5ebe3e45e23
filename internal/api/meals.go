package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/myfiorentina/progetto-fitness/internal/middleware"
	"github.com/myfiorentina/progetto-fitness/internal/models"
	"github.com/myfiorentina/progetto-fitness/internal/service"
)

// MealHandler serves meal submission and the meal history.
type MealHandler struct {
	ingester service.MealIngester
	history  service.HistoryReader
	limiter  *middleware.RateLimiter
	logger   logrus.FieldLogger
}

// NewMealHandler creates a new MealHandler. limiter may be nil.
func NewMealHandler(ingester service.MealIngester, history service.HistoryReader, limiter *middleware.RateLimiter, logger logrus.FieldLogger) *MealHandler {
	return &MealHandler{
		ingester: ingester,
		history:  history,
		limiter:  limiter,
		logger:   logger,
	}
}

// RegisterRoutes registers the meal routes together with their legacy aliases.
func (h *MealHandler) RegisterRoutes(router gin.IRouter) {
	submit := []gin.HandlerFunc{h.ProcessMeal}
	if h.limiter != nil {
		submit = append([]gin.HandlerFunc{h.limiter.Middleware()}, submit...)
	}

	router.POST("/meals", submit...)
	router.GET("/meal-history", h.MealHistory)

	router.POST("/api/process-food", submit...)
	router.GET("/api/food-history", h.MealHistory)
}

// ProcessMeal handles POST /meals
func (h *MealHandler) ProcessMeal(c *gin.Context) {
	var req ProcessMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No meal text provided."})
		return
	}

	log := h.requestLogger(c)

	// The pipeline runs to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	result, err := h.ingester.Ingest(ctx, req.Text)
	if err == nil {
		c.JSON(http.StatusOK, ProcessMealResponse{
			Message:       "Meal analyzed and saved.",
			TotalCalories: result.FormattedTotal(),
			ItemsSaved:    result.Persisted,
			ItemsSkipped:  result.Skipped,
		})
		return
	}

	var tagged *service.Error
	if !errors.As(err, &tagged) {
		log.WithError(err).Error("meal ingestion failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Unable to process the meal."})
		return
	}

	log = log.WithFields(logrus.Fields{"kind": tagged.Kind, "cause": tagged.Cause})

	switch tagged.Kind {
	case service.KindInvalidInput:
		log.Warn("meal submission rejected")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No meal text provided."})
	case service.KindExtractionFailed:
		log.Error("meal text could not be analyzed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Unable to analyze the meal text.",
			Details: tagged.Cause,
		})
	case service.KindPersistenceFailed:
		log.WithField("details", tagged.Details).Error("meal items could not be saved")
		resp := ErrorResponse{
			Error:   "Some food items could not be saved.",
			Details: tagged.Details,
		}
		if result != nil {
			resp.TotalCalories = result.FormattedTotal()
			saved := result.Persisted
			resp.ItemsSaved = &saved
		}
		c.JSON(http.StatusInternalServerError, resp)
	default:
		log.Error("meal ingestion failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Unable to process the meal."})
	}
}

// MealHistory handles GET /meal-history
func (h *MealHandler) MealHistory(c *gin.Context) {
	limit := service.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	entries, err := h.history.RecentEntries(context.WithoutCancel(c.Request.Context()), limit)
	if err != nil {
		details := []string{err.Error()}
		var tagged *service.Error
		if errors.As(err, &tagged) && len(tagged.Details) > 0 {
			details = tagged.Details
		}
		h.requestLogger(c).WithError(err).Error("meal history unavailable")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Unable to retrieve the meal history.",
			Details: details,
		})
		return
	}

	if entries == nil {
		entries = []models.MealEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *MealHandler) requestLogger(c *gin.Context) logrus.FieldLogger {
	return h.logger.WithField("request_id", middleware.GetRequestID(c))
}
