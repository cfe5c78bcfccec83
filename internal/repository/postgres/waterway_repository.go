package postgres

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
	"github.com/waterway-crossing/internal/domain/repository"
	pkgerrors "github.com/waterway-crossing/internal/pkg/errors"
)

type waterwayRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewWaterwayRepository creates the read side of the waterway store.
func NewWaterwayRepository(db *DB) repository.WaterwayRepository {
	return &waterwayRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Candidates returns every waterway whose bounding box overlaps bound.
// The && operator is served entirely by the GiST index, so cost scales
// with the candidate count, not the table size. Geometry comes back as
// WKB for the exact predicate to decode.
func (r *waterwayRepository) Candidates(ctx context.Context, bound orb.Bound) ([]domain.Waterway, error) {
	query := `
		SELECT
			osm_id,
			feature_type,
			name,
			COALESCE(waterway_type, '') AS waterway_type,
			ST_AsBinary(geom) AS geom
		FROM waterways
		WHERE geom && ST_MakeEnvelope($1, $2, $3, $4, 4326)
	`

	rows, err := r.db.QueryxContext(ctx, query,
		bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		r.logger.Error("failed to query waterway candidates", zap.Error(err))
		return nil, pkgerrors.ErrStoreUnavailable
	}
	defer rows.Close()

	var waterways []domain.Waterway
	for rows.Next() {
		var w domain.Waterway
		if err := rows.StructScan(&w); err != nil {
			r.logger.Error("failed to scan waterway row", zap.Error(err))
			continue
		}
		waterways = append(waterways, w)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("waterway candidate scan aborted", zap.Error(err))
		return nil, pkgerrors.ErrStoreUnavailable
	}

	return waterways, nil
}

// Count reports how many waterways the store holds. Used as the
// liveness signal on the health endpoint.
func (r *waterwayRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM waterways`); err != nil {
		if isUndefinedTable(err) {
			return 0, nil
		}
		r.logger.Error("failed to count waterways", zap.Error(err))
		return 0, pkgerrors.ErrStoreUnavailable
	}
	return count, nil
}

func (r *waterwayRepository) CountByWaterwayType(ctx context.Context) ([]domain.TypeCount, error) {
	query := `
		SELECT
			COALESCE(NULLIF(waterway_type, ''), 'unknown') AS type,
			COUNT(*) AS count
		FROM waterways
		GROUP BY 1
		ORDER BY count DESC
	`
	return r.countGrouped(ctx, query)
}

func (r *waterwayRepository) CountByFeatureType(ctx context.Context) ([]domain.TypeCount, error) {
	query := `
		SELECT
			feature_type AS type,
			COUNT(*) AS count
		FROM waterways
		GROUP BY 1
		ORDER BY count DESC
	`
	return r.countGrouped(ctx, query)
}

func (r *waterwayRepository) countGrouped(ctx context.Context, query string) ([]domain.TypeCount, error) {
	var counts []domain.TypeCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		r.logger.Error("failed to aggregate waterway counts", zap.Error(err))
		return nil, pkgerrors.ErrStoreUnavailable
	}
	return counts, nil
}

// isUndefinedTable matches SQLSTATE 42P01. Before the first store
// build the waterways table does not exist; queries against it answer
// "no waterways" rather than failing, so a fresh deployment serves
// empty results until the builder has run. Both pgconn.PgError and
// pq.Error expose SQLState, so the check holds across drivers.
func isUndefinedTable(err error) bool {
	var sqlErr interface{ SQLState() string }
	return errors.As(err, &sqlErr) && sqlErr.SQLState() == "42P01"
}
