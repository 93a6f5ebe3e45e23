package api

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/myfiorentina/progetto-fitness/internal/database"
)

// SchemaHandler exposes the maintenance route that creates the ledger tables.
type SchemaHandler struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

func NewSchemaHandler(db *gorm.DB, logger logrus.FieldLogger) *SchemaHandler {
	return &SchemaHandler{db: db, logger: logger}
}

func (h *SchemaHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/admin/setup-schema", h.SetupSchema)
}

// SetupSchema handles GET /admin/setup-schema. It is safe to call repeatedly.
func (h *SchemaHandler) SetupSchema(c *gin.Context) {
	if err := database.EnsureSchema(context.WithoutCancel(c.Request.Context()), h.db); err != nil {
		h.logger.WithError(err).Error("schema setup failed")
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
			[]byte(fmt.Sprintf("<h1>Schema setup failed</h1><p>%s</p>", html.EscapeString(err.Error()))))
		return
	}

	h.logger.Info("schema setup completed")
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<h1>Schema ready</h1><p>The meal_entries and body_measurements tables exist.</p>"))
}
