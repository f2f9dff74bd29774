package handlers

import (
	"errors"
	"strconv"

	"github.com/casefeed/backend/internal/http/dto"
	"github.com/casefeed/backend/internal/middleware"
	"github.com/casefeed/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps service errors to status codes. Unclassified errors are
// logged and reported as a generic 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	reqID := middleware.GetRequestID(c)
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidID):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	default:
		log.Error("request failed", zap.String("request_id", reqID), zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(dto.ErrorResponse{Error: "internal error", RequestID: reqID})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
