package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/myfiorentina/progetto-fitness/config"
	"github.com/myfiorentina/progetto-fitness/internal/api"
	"github.com/myfiorentina/progetto-fitness/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger logrus.FieldLogger
}

// New builds the gin engine, installs the middleware chain and registers
// every route.
func New(cfg *config.Config, deps api.Dependencies) *Server {
	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := deps.Logger
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	api.RegisterRoutes(router, deps)
	serveStatic(router, cfg.StaticDir, logger)

	return &Server{
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.http.Addr).Info("Starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// serveStatic serves the browser client from dir for any unmatched GET.
func serveStatic(router *gin.Engine, dir string, logger logrus.FieldLogger) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.WithField("dir", dir).Warn("static directory not found, not serving static files")
		return
	}

	files := http.FileServer(http.Dir(dir))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
}
