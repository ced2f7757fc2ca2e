// Package http provides HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jowenthebui/PO-Tracking/internal/application/service"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// UploadDir is served read-only under /uploads
	UploadDir string

	// Assets holds the browser UI; nil disables the UI routes
	Assets fs.FS
}

// HealthProbe reports overall health and a status line per component
type HealthProbe func(ctx context.Context) (bool, map[string]string)

// Services are the application services the handlers call
type Services struct {
	Months  service.MonthService
	POs     service.POService
	Steps   service.StepService
	Tracker service.TrackerService
	Alerts  service.AlertService
	Export  service.ExportService
	Links   service.Links

	// Health is optional; without it /health always reports healthy
	Health HealthProbe
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, logger Logger) *Server {
	router := gin.New()

	server := &Server{
		config:   config,
		router:   router,
		services: services,
		logger:   logger,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(corsMiddleware())
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := NewHandlers(s.services, s.logger)

	s.router.GET("/health", h.HealthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/months", h.ListMonths)
		api.POST("/months", h.CreateMonth)
		api.GET("/months/:id/export", h.ExportMonth)
		api.GET("/tree", h.Tree)
		api.GET("/links", h.QuickLinks)
		api.GET("/alerts", h.Alerts)

		api.POST("/po", h.CreatePO)
		api.GET("/po/:id", h.GetPO)
		api.PATCH("/step/:id", h.UpdateStep)
		api.POST("/step/:id/upload", h.UploadStepFile)

		tracker := api.Group("/tracker")
		{
			tracker.GET("/stages", h.ListStages)
			tracker.GET("/pos", h.ListTrackedPOs)
			tracker.POST("/pos", h.CreateTrackedPO)
			tracker.GET("/pos/:id", h.GetTrackedPO)
			tracker.PATCH("/pos/:id", h.UpdateTrackedPO)
			tracker.POST("/pos/:id/documents", h.AddTrackedPODocument)
		}
	}

	if s.config.UploadDir != "" {
		s.router.Static("/uploads", s.config.UploadDir)
	}

	if s.config.Assets != nil {
		s.router.GET("/", h.Page(s.config.Assets, "index.html"))
		s.router.GET("/tracker.html", h.Page(s.config.Assets, "tracker.html"))
		s.router.StaticFS("/static", http.FS(s.config.Assets))
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", s.config.Addr)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return s.config.Addr
}
