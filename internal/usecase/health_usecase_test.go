package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
	pkgerrors "github.com/waterway-crossing/internal/pkg/errors"
	"github.com/waterway-crossing/internal/usecase"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHealthCheck_OK(t *testing.T) {
	pinger := &MockPinger{}
	repo := &MockWaterwayRepository{}
	uc := usecase.NewHealthUseCase(pinger, repo, zap.NewNop())

	pinger.On("Health", mock.Anything).Return(nil)
	repo.On("Count", mock.Anything).Return(int64(1234), nil)

	health := uc.Check(context.Background())

	assert.Equal(t, domain.HealthOK, health.Status)
	assert.Equal(t, int64(1234), health.WaterwayCount)
}

func TestHealthCheck_EmptyStoreIsDegraded(t *testing.T) {
	pinger := &MockPinger{}
	repo := &MockWaterwayRepository{}
	uc := usecase.NewHealthUseCase(pinger, repo, zap.NewNop())

	pinger.On("Health", mock.Anything).Return(nil)
	repo.On("Count", mock.Anything).Return(int64(0), nil)

	health := uc.Check(context.Background())

	assert.Equal(t, domain.HealthDegraded, health.Status)
}

func TestHealthCheck_UnreachableStoreIsDown(t *testing.T) {
	pinger := &MockPinger{}
	repo := &MockWaterwayRepository{}
	uc := usecase.NewHealthUseCase(pinger, repo, zap.NewNop())

	pinger.On("Health", mock.Anything).Return(assert.AnError)

	health := uc.Check(context.Background())

	assert.Equal(t, domain.HealthDown, health.Status)
	repo.AssertNotCalled(t, "Count")
}

func TestHealthCheck_CountFailureIsDegraded(t *testing.T) {
	pinger := &MockPinger{}
	repo := &MockWaterwayRepository{}
	uc := usecase.NewHealthUseCase(pinger, repo, zap.NewNop())

	pinger.On("Health", mock.Anything).Return(nil)
	repo.On("Count", mock.Anything).Return(int64(0), pkgerrors.ErrStoreUnavailable)

	health := uc.Check(context.Background())

	assert.Equal(t, domain.HealthDegraded, health.Status)
}
