// Package http provides the catalog HTTP server, its router and shared middleware.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/catalog/internal/auth/http"
	authService "github.com/allisson/catalog/internal/auth/service"
	catalogHTTP "github.com/allisson/catalog/internal/catalog/http"
	"github.com/allisson/catalog/internal/config"
	"github.com/allisson/catalog/internal/metrics"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Routes are registered by SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// listen runs server until it is shut down. http.ErrServerClosed is not an error.
func listen(server *http.Server, logger *slog.Logger, name string) error {
	logger.Info("starting "+name, slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// SetupRouter builds the gin engine with middleware and every catalog route.
//
// Product writes (POST, PUT, DELETE) require the admin bearer token when
// cfg.AdminTokenHash is set. ctx bounds background work such as the rate
// limiter's stale-entry cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	productHandler *catalogHTTP.ProductHandler,
	referenceHandler *catalogHTTP.ReferenceHandler,
	tokenService authService.AdminTokenService,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	if cfg.RateLimitEnabled {
		api.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	var writeGuard []gin.HandlerFunc
	if cfg.AdminTokenHash != "" {
		writeGuard = append(writeGuard, authHTTP.AdminTokenMiddleware(tokenService, cfg.AdminTokenHash, s.logger))
	} else {
		s.logger.Warn("ADMIN_TOKEN_HASH not set - product write endpoints are unauthenticated")
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.ListHandler)
		products.GET("/stats/all", productHandler.StatisticsHandler)
		products.GET("/:id", productHandler.GetHandler)
		products.POST("", append(writeGuard, productHandler.CreateHandler)...)
		products.PUT("/:id", append(writeGuard, productHandler.UpdateHandler)...)
		products.DELETE("/:id", append(writeGuard, productHandler.DeleteHandler)...)
	}

	api.GET("/categories", referenceHandler.ListCategoriesHandler)
	api.GET("/materials", referenceHandler.ListMaterialsHandler)

	s.router = router
	s.server.Handler = router
	if cfg.ServerReadTimeout > 0 {
		s.server.ReadTimeout = cfg.ServerReadTimeout
	}
	if cfg.ServerWriteTimeout > 0 {
		s.server.WriteTimeout = cfg.ServerWriteTimeout
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return fmt.Errorf("router not configured")
	}

	return listen(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
