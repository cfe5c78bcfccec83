package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
	pkgerrors "github.com/waterway-crossing/internal/pkg/errors"
)

// StoreWriter is the write side of the waterway store.
type StoreWriter interface {
	Rebuild(ctx context.Context, waterways []domain.Waterway, batchSize int) error
}

// Builder turns a feature dataset into a freshly indexed waterway
// store. Build is an exclusive maintenance operation: it never runs
// against serving traffic, and a failed run leaves the previous store
// untouched.
type Builder struct {
	writer    StoreWriter
	logger    *zap.Logger
	batchSize int
}

func NewBuilder(writer StoreWriter, logger *zap.Logger, batchSize int) *Builder {
	return &Builder{
		writer:    writer,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Build reads the dataset under datasetDir, drops unnamed features and
// replaces the store contents. It returns the number of records loaded.
func (b *Builder) Build(ctx context.Context, datasetDir string) (int, error) {
	features, err := ReadDataset(datasetDir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", pkgerrors.ErrStoreBuild, err)
	}

	waterways := namedWaterways(features)
	if len(waterways) == 0 {
		return 0, fmt.Errorf("%w: dataset %s holds no named waterway features", pkgerrors.ErrStoreBuild, datasetDir)
	}

	b.logger.Info("Feature dataset read",
		zap.String("dataset", datasetDir),
		zap.Int("features", len(features)),
		zap.Int("named", len(waterways)),
	)

	if err := b.writer.Rebuild(ctx, waterways, b.batchSize); err != nil {
		return 0, fmt.Errorf("%w: %v", pkgerrors.ErrStoreBuild, err)
	}

	return len(waterways), nil
}

// namedWaterways converts dataset rows to store records, dropping any
// feature without a name tag. The upstream transform already filters
// unnamed features, but the store invariant is enforced here again so
// a looser dataset cannot violate it.
func namedWaterways(features []Feature) []domain.Waterway {
	waterways := make([]domain.Waterway, 0, len(features))
	for _, f := range features {
		name := f.Tags["name"]
		if name == "" || len(f.Geometry) == 0 {
			continue
		}
		waterways = append(waterways, domain.Waterway{
			ID:           f.ID(),
			FeatureType:  f.OSMType,
			Name:         name,
			WaterwayType: f.Tags["waterway"],
			Geometry:     f.Geometry,
		})
	}
	return waterways
}
