package handler

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	pkgerrors "github.com/waterway-crossing/internal/pkg/errors"
	"github.com/waterway-crossing/internal/pkg/utils"
	"github.com/waterway-crossing/internal/usecase"
	"github.com/waterway-crossing/internal/usecase/dto"
)

// RouteHandler accepts track uploads and reports crossed waterways.
type RouteHandler struct {
	crossingUC    *usecase.CrossingUseCase
	logger        *zap.Logger
	maxTrackBytes int
}

func NewRouteHandler(crossingUC *usecase.CrossingUseCase, logger *zap.Logger, maxTrackBytes int) *RouteHandler {
	return &RouteHandler{
		crossingUC:    crossingUC,
		logger:        logger,
		maxTrackBytes: maxTrackBytes,
	}
}

// ProcessRoute handles POST /api/v1/routes/crossings.
//
// The track arrives either as a multipart form field "file" or as the
// raw request body. The handler owns the request wall clock; all
// geometric work happens in the use case.
func (h *RouteHandler) ProcessRoute(c *fiber.Ctx) error {
	start := time.Now()

	raw, err := h.trackBytes(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.crossingUC.ProcessTrack(c.Context(), raw)
	if err != nil {
		h.logger.Warn("track processing failed",
			zap.Int("track_bytes", len(raw)),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return c.JSON(dto.CrossingsResponse{
		Waterways:             result.Waterways,
		ProcessingTimeSeconds: time.Since(start).Seconds(),
		TimingsMs:             result.Timings,
		Cached:                result.CacheHit,
	})
}

func (h *RouteHandler) trackBytes(c *fiber.Ctx) ([]byte, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > int64(h.maxTrackBytes) {
			return nil, pkgerrors.ErrTrackTooLarge
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, pkgerrors.ErrMissingTrackFile
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, pkgerrors.ErrMissingTrackFile
		}
		return raw, nil
	}

	// Raw-body fallback for clients that skip multipart.
	raw := c.Body()
	if len(raw) == 0 {
		return nil, pkgerrors.ErrMissingTrackFile
	}
	if len(raw) > h.maxTrackBytes {
		return nil, pkgerrors.ErrTrackTooLarge
	}
	return raw, nil
}
