package repository

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/waterway-crossing/internal/domain"
)

// WaterwayRepository is the read side of the waterway store. Candidates
// is the broad phase of the two-phase intersection query: it returns
// every record whose indexed bounding region overlaps bound. False
// positives are expected; the exact predicate filters them out.
type WaterwayRepository interface {
	Candidates(ctx context.Context, bound orb.Bound) ([]domain.Waterway, error)
	Count(ctx context.Context) (int64, error)
	CountByWaterwayType(ctx context.Context) ([]domain.TypeCount, error)
	CountByFeatureType(ctx context.Context) ([]domain.TypeCount, error)
}
