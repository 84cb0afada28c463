package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/ritik0027/SnapTube-Backend/internal/middleware"
	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// writeError maps service errors onto the API error envelope. Unexpected
// errors are logged and reported with fallback as the message.
func writeError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, model.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrConflict):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "CONFLICT", "The reaction changed concurrently, retry the request")
	case errors.Is(err, model.ErrStorageUnavailable):
		middleware.Logger.Error().Err(err).Str("path", middleware.SanitizePath(c.Path())).Msg("storage unavailable")
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "TIMEOUT", "Request timed out")
	}
	middleware.Logger.Error().Err(err).Str("path", middleware.SanitizePath(c.Path())).Msg(fallback)
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}
