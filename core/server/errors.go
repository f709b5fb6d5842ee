package server

import (
	"errors"

	"holotable/core/apperr"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps apperr kinds to HTTP status codes so handlers can
// simply return their errors.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		status := fiber.StatusInternalServerError
		switch apperr.KindOf(err) {
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		case apperr.KindUpstream:
			status = fiber.StatusBadGateway
		case apperr.KindParse, apperr.KindUnavailable:
			status = fiber.StatusServiceUnavailable
		}

		if status == fiber.StatusInternalServerError {
			logger.Error("Unclassified handler error", zap.Error(err))
		}

		return c.Status(status).JSON(fiber.Map{
			"kind":  string(apperr.KindOf(err)),
			"error": err.Error(),
		})
	}
}
