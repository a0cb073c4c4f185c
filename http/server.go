package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/groundlog/borelog-viewer/config"
	"github.com/groundlog/borelog-viewer/db"
	"github.com/groundlog/borelog-viewer/litho"
)

// Server bundles router and dependencies for the viewer service.
type Server struct {
	cfg      config.Config
	store    db.Store
	renderer *litho.Renderer
	engine   *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, store db.Store) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(corsMiddleware())

	renderer, err := litho.NewRenderer()
	if err != nil {
		return nil, err
	}

	server := &Server{cfg: cfg, store: store, renderer: renderer, engine: engine}
	server.registerRoutes()
	return server, nil
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api/v1")
	if s.cfg.BearerToken != "" {
		api.Use(bearerAuthMiddleware(s.cfg.BearerToken))
	}
	{
		api.GET("/locations", s.handleListLocations)
		api.GET("/locations.geojson", s.handleLocationsGeoJSON)
		api.GET("/locations/nearest", s.handleNearestLocation)
		api.GET("/locations/:id", s.handleGetLocation)
		api.GET("/locations/:id/intervals", s.handleListIntervals)
		api.GET("/locations/:id/column.svg", s.handleColumnSVG)
		api.GET("/locations/:id/column.png", s.handleColumnPNG)
		api.GET("/formations", s.handleFormations)
		api.GET("/viewport", s.handleViewport)
	}
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		zap.L().Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
