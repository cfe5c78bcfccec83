package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/config"
	"github.com/waterway-crossing/internal/delivery/http/handler"
	"github.com/waterway-crossing/internal/delivery/http/middleware"
)

// Server hosts the service façade: route processing, health and stats.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	routeHandler  *handler.RouteHandler
	healthHandler *handler.HealthHandler
	statsHandler  *handler.StatsHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	routeHandler *handler.RouteHandler,
	healthHandler *handler.HealthHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Waterway Crossing Service",
		BodyLimit:    cfg.Upload.MaxTrackBytes,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		routeHandler:  routeHandler,
		healthHandler: healthHandler,
		statsHandler:  statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	api.Post("/routes/crossings", s.routeHandler.ProcessRoute)
	api.Get("/health", s.healthHandler.Check)
	api.Get("/stats", s.statsHandler.GetStatistics)
}

func (s *Server) Start() error {
	return s.app.Listen(s.config.GetServerAddr())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}
