package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
	"github.com/waterway-crossing/internal/domain/repository"
	"github.com/waterway-crossing/internal/geo"
	"github.com/waterway-crossing/internal/gpx"
	"github.com/waterway-crossing/internal/usecase/dto"
)

// CrossingUseCase runs the extract → query → aggregate pipeline for one
// uploaded track. The store repository supplies the broad phase
// (index-pruned candidates), the geo predicate the narrow phase.
type CrossingUseCase struct {
	waterways repository.WaterwayRepository
	cache     repository.CacheRepository
	predicate geo.Predicate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewCrossingUseCase wires the pipeline. cache may be nil, in which
// case every request is computed from the store.
func NewCrossingUseCase(
	waterways repository.WaterwayRepository,
	cache repository.CacheRepository,
	predicate geo.Predicate,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *CrossingUseCase {
	return &CrossingUseCase{
		waterways: waterways,
		cache:     cache,
		predicate: predicate,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// ProcessTrack answers which waterways the uploaded track crosses.
func (uc *CrossingUseCase) ProcessTrack(ctx context.Context, raw []byte) (*dto.TrackCrossings, error) {
	cacheKey := crossingsCacheKey(raw)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return &dto.TrackCrossings{Waterways: cached, CacheHit: true}, nil
	}

	var result dto.TrackCrossings

	parseStart := time.Now()
	route, err := gpx.Extract(raw)
	if err != nil {
		return nil, err
	}
	result.Timings.ParseMs = msSince(parseStart)

	queryStart := time.Now()
	hits, err := uc.FindIntersections(ctx, route)
	if err != nil {
		return nil, err
	}
	result.Timings.QueryMs = msSince(queryStart)

	aggStart := time.Now()
	result.Waterways = Aggregate(hits)
	result.Timings.AggregateMs = msSince(aggStart)

	uc.logger.Info("Track processed",
		zap.Int("route_points", len(route)),
		zap.Int("raw_hits", len(hits)),
		zap.Int("crossings", len(result.Waterways)),
		zap.Float64("parse_ms", result.Timings.ParseMs),
		zap.Float64("query_ms", result.Timings.QueryMs),
	)

	uc.toCache(ctx, cacheKey, result.Waterways)

	return &result, nil
}

// FindIntersections returns every stored waterway whose geometry truly
// intersects the route. Broad phase: the spatial index returns all
// records whose bounding box overlaps the route's. Narrow phase: the
// exact predicate rejects the bounding-box false positives. The result
// is deterministic for a fixed store and route; ordering is whatever
// the index returned and may contain duplicates, both of which the
// aggregator resolves.
func (uc *CrossingUseCase) FindIntersections(ctx context.Context, route orb.LineString) ([]domain.Waterway, error) {
	candidates, err := uc.waterways.Candidates(ctx, route.Bound())
	if err != nil {
		return nil, err
	}

	hits := make([]domain.Waterway, 0, len(candidates))
	for _, candidate := range candidates {
		geometry, err := geo.DecodeWKB(candidate.Geometry)
		if err != nil {
			uc.logger.Error("failed to decode stored geometry",
				zap.String("id", candidate.ID),
				zap.Error(err))
			continue
		}
		if uc.predicate.Intersects(route, geometry) {
			hits = append(hits, candidate)
		}
	}

	return hits, nil
}

// Aggregate deduplicates raw hits by record id, preserving
// first-encountered order. A route crossing one waterway at several
// disjoint points legitimately produces repeated hits for the same id;
// the response must list the waterway once. Zero intersections is a
// valid outcome and yields an empty list, never nil.
func Aggregate(hits []domain.Waterway) []domain.Crossing {
	crossings := make([]domain.Crossing, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, hit := range hits {
		if _, ok := seen[hit.ID]; ok {
			continue
		}
		seen[hit.ID] = struct{}{}
		crossings = append(crossings, domain.Crossing{
			ID:           hit.ID,
			Name:         hit.Name,
			WaterwayType: hit.WaterwayType,
		})
	}
	return crossings
}

func (uc *CrossingUseCase) fromCache(ctx context.Context, key string) []domain.Crossing {
	if uc.cache == nil {
		return nil
	}
	data, err := uc.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var crossings []domain.Crossing
	if err := json.Unmarshal(data, &crossings); err != nil {
		uc.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	return crossings
}

// toCache is best effort: a failing cache degrades to uncached
// service, never to a failed request.
func (uc *CrossingUseCase) toCache(ctx context.Context, key string, crossings []domain.Crossing) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(crossings)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("failed to cache crossings", zap.String("key", key), zap.Error(err))
	}
}

func crossingsCacheKey(raw []byte) string {
	digest := sha256.Sum256(raw)
	return "crossings:" + hex.EncodeToString(digest[:])
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
