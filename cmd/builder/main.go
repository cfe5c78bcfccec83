package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/config"
	"github.com/waterway-crossing/internal/ingest"
	"github.com/waterway-crossing/internal/pkg/logger"
	"github.com/waterway-crossing/internal/repository/postgres"
)

// The builder is the operational end of the waterway store lifecycle:
// it reads the GeoParquet feature dataset produced by the external ETL
// pipeline and rebuilds the store wholesale. It is meant to run
// offline, not against serving traffic.
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

	datasetDir := cfg.Ingest.DatasetDir
	if len(os.Args) > 1 {
		datasetDir = os.Args[1]
	}
	if datasetDir == "" {
		log.Fatal("No dataset location; set INGEST_DATASET_DIR or pass a directory argument")
	}

	log.Info("Starting waterway store build",
		zap.String("dataset", datasetDir),
		zap.Int("batch_size", cfg.Ingest.BatchSize),
	)

	// 3. Connect to the store
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Build. A failed build exits non-zero and leaves the previous
	// store untouched.
	builder := ingest.NewBuilder(postgres.NewStoreWriter(db), log, cfg.Ingest.BatchSize)

	count, err := builder.Build(context.Background(), datasetDir)
	if err != nil {
		log.Fatal("Store build failed", zap.Error(err))
	}

	log.Info("Store build complete", zap.Int("waterways", count))
}
