package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain/repository"
	"github.com/waterway-crossing/internal/usecase/dto"
)

// StatsUseCase aggregates store contents for operational visibility.
type StatsUseCase struct {
	waterways repository.WaterwayRepository
	logger    *zap.Logger
}

func NewStatsUseCase(waterways repository.WaterwayRepository, logger *zap.Logger) *StatsUseCase {
	return &StatsUseCase{
		waterways: waterways,
		logger:    logger,
	}
}

func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*dto.StatsResponse, error) {
	count, err := uc.waterways.Count(ctx)
	if err != nil {
		return nil, err
	}

	byWaterway, err := uc.waterways.CountByWaterwayType(ctx)
	if err != nil {
		return nil, err
	}

	byFeature, err := uc.waterways.CountByFeatureType(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		WaterwayCount:  count,
		ByWaterwayType: byWaterway,
		ByFeatureType:  byFeature,
	}, nil
}
