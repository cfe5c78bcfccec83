package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
	pkgerrors "github.com/waterway-crossing/internal/pkg/errors"
	"github.com/waterway-crossing/internal/usecase"
)

func TestGetStatistics(t *testing.T) {
	repo := &MockWaterwayRepository{}
	uc := usecase.NewStatsUseCase(repo, zap.NewNop())

	repo.On("Count", mock.Anything).Return(int64(3), nil)
	repo.On("CountByWaterwayType", mock.Anything).Return([]domain.TypeCount{
		{Type: "river", Count: 2},
		{Type: "canal", Count: 1},
	}, nil)
	repo.On("CountByFeatureType", mock.Anything).Return([]domain.TypeCount{
		{Type: "way", Count: 3},
	}, nil)

	stats, err := uc.GetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.WaterwayCount)
	require.Len(t, stats.ByWaterwayType, 2)
	assert.Equal(t, "river", stats.ByWaterwayType[0].Type)
}

func TestGetStatistics_StoreUnavailable(t *testing.T) {
	repo := &MockWaterwayRepository{}
	uc := usecase.NewStatsUseCase(repo, zap.NewNop())

	repo.On("Count", mock.Anything).Return(int64(0), pkgerrors.ErrStoreUnavailable)

	_, err := uc.GetStatistics(context.Background())
	assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
}
