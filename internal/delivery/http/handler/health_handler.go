package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/waterway-crossing/internal/domain"
	"github.com/waterway-crossing/internal/usecase"
)

type HealthHandler struct {
	healthUC *usecase.HealthUseCase
	logger   *zap.Logger
}

func NewHealthHandler(healthUC *usecase.HealthUseCase, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		healthUC: healthUC,
		logger:   logger,
	}
}

// Check handles GET /api/v1/health. A down store answers 503 so load
// balancers can take the instance out of rotation.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	health := h.healthUC.Check(c.Context())

	status := http.StatusOK
	if health.Status == domain.HealthDown {
		status = http.StatusServiceUnavailable
	}

	return c.Status(status).JSON(health)
}
