package events

import (
	"holotable/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the event schedule.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the events routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/events", h.HandleEvents)
}

// HandleEvents serves the upstream event schedule.
// @Summary Get Events
// @Description Returns the currently scheduled in-game events. Responses are cached for the configured TTL.
// @Tags events
// @Produce json
// @Success 200 {object} object
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	raw, err := h.service.GetEvents(c.Context())
	if err != nil {
		l.Warn("Events fetch failed", zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}
