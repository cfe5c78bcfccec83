package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
	"github.com/waterway-crossing/internal/domain/repository"
)

// Pinger reports whether the store connection is alive.
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthUseCase derives the service health from the waterway store:
// an unreachable store is down, a reachable but empty store is
// degraded, a loaded store is ok.
type HealthUseCase struct {
	store     Pinger
	waterways repository.WaterwayRepository
	logger    *zap.Logger
}

func NewHealthUseCase(store Pinger, waterways repository.WaterwayRepository, logger *zap.Logger) *HealthUseCase {
	return &HealthUseCase{
		store:     store,
		waterways: waterways,
		logger:    logger,
	}
}

func (uc *HealthUseCase) Check(ctx context.Context) *domain.Health {
	if err := uc.store.Health(ctx); err != nil {
		uc.logger.Error("store ping failed", zap.Error(err))
		return &domain.Health{Status: domain.HealthDown}
	}

	count, err := uc.waterways.Count(ctx)
	if err != nil {
		uc.logger.Error("waterway count failed", zap.Error(err))
		return &domain.Health{Status: domain.HealthDegraded}
	}

	status := domain.HealthOK
	if count == 0 {
		status = domain.HealthDegraded
	}

	return &domain.Health{
		Status:        status,
		WaterwayCount: count,
	}
}
