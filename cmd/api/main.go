package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/config"
	httpDelivery "github.com/waterway-crossing/internal/delivery/http"
	"github.com/waterway-crossing/internal/delivery/http/handler"
	"github.com/waterway-crossing/internal/domain/repository"
	"github.com/waterway-crossing/internal/geo"
	"github.com/waterway-crossing/internal/pkg/logger"
	"github.com/waterway-crossing/internal/repository/cache"
	"github.com/waterway-crossing/internal/repository/postgres"
	"github.com/waterway-crossing/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Waterway Crossing Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to the waterway store. The pool is the single
	// long-lived store handle; everything downstream borrows it.
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis when the response cache is enabled.
	var cacheRepo repository.CacheRepository
	var redisConn *cache.Redis
	if cfg.Redis.Enabled {
		redisConn, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisConn.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisConn)
	} else {
		log.Info("Response cache disabled")
	}

	// 5. Health check the store before serving.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	// 6. Initialize repositories and use cases
	waterwayRepo := postgres.NewWaterwayRepository(db)

	crossingUC := usecase.NewCrossingUseCase(
		waterwayRepo,
		cacheRepo,
		geo.NewPlanar(),
		log,
		cfg.Cache.CrossingsCacheTTL,
	)
	healthUC := usecase.NewHealthUseCase(db, waterwayRepo, log)
	statsUC := usecase.NewStatsUseCase(waterwayRepo, log)

	if count, err := waterwayRepo.Count(ctx); err != nil {
		log.Warn("Waterway store not readable yet; build it with cmd/builder", zap.Error(err))
	} else {
		log.Info("Waterway store loaded", zap.Int64("waterways", count))
	}

	// 7. Initialize HTTP handlers and server
	routeHandler := handler.NewRouteHandler(crossingUC, log, cfg.Upload.MaxTrackBytes)
	healthHandler := handler.NewHealthHandler(healthUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	server := httpDelivery.NewServer(cfg, log, routeHandler, healthHandler, statsHandler)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
