package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS waterways (
		osm_id        TEXT NOT NULL,
		feature_type  TEXT NOT NULL,
		name          TEXT NOT NULL,
		waterway_type TEXT,
		geom          geometry(Geometry, 4326) NOT NULL
	)
`

const insertSQL = `
	INSERT INTO waterways (osm_id, feature_type, name, waterway_type, geom)
	VALUES (:osm_id, :feature_type, :name, :waterway_type, ST_SetSRID(ST_GeomFromWKB(:geom), 4326))
`

// StoreWriter owns the write side of the waterway store. A rebuild is
// always total: the spatial index is dropped, the table truncated and
// reloaded, and the index recreated over the final record set, all in
// one transaction. A failed rebuild rolls back and leaves the previous
// store untouched.
type StoreWriter struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStoreWriter(db *DB) *StoreWriter {
	return &StoreWriter{
		db:     db.DB,
		logger: db.logger,
	}
}

// Rebuild replaces the stored record set with waterways. batchSize
// bounds how many rows go into a single INSERT.
func (w *StoreWriter) Rebuild(ctx context.Context, waterways []domain.Waterway, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 1000
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to open rebuild transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create waterways table: %w", err)
	}

	// Drop before load so the index never holds stale entries; it is
	// rebuilt from scratch over the final record set below.
	if _, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS waterways_geom_idx`); err != nil {
		return fmt.Errorf("failed to drop spatial index: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `TRUNCATE waterways`); err != nil {
		return fmt.Errorf("failed to truncate waterways: %w", err)
	}

	for start := 0; start < len(waterways); start += batchSize {
		end := start + batchSize
		if end > len(waterways) {
			end = len(waterways)
		}
		if _, err := tx.NamedExecContext(ctx, insertSQL, waterways[start:end]); err != nil {
			return fmt.Errorf("failed to insert waterways batch at %d: %w", start, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `CREATE INDEX waterways_geom_idx ON waterways USING GIST (geom)`); err != nil {
		return fmt.Errorf("failed to create spatial index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rebuild: %w", err)
	}

	w.logger.Info("Waterway store rebuilt",
		zap.Int("records", len(waterways)),
	)

	return nil
}
