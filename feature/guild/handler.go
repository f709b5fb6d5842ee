package guild

import (
	"holotable/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for guild records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the guild routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/guild/:allyCode", h.HandleGuild)
}

// HandleGuild serves the guild a player belongs to.
// @Summary Get Guild
// @Description Resolves the guild of the given ally code. With roster=true every member's player record is fetched with bounded concurrency; partial member failures are tolerated.
// @Tags guild
// @Produce json
// @Param allyCode path string true "Ally code of any guild member"
// @Param roster query boolean false "Expand the full roster"
// @Success 200 {object} guild.View
// @Failure 404 {object} map[string]string "Player Not In A Guild"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /guild/{allyCode} [get]
func (h *Handler) HandleGuild(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	expand := c.Query("roster") == "true"

	view, err := h.service.GetGuild(c.Context(), c.Params("allyCode"), expand)
	if err != nil {
		l.Warn("Guild fetch failed",
			zap.String("ally_code", c.Params("allyCode")),
			zap.Bool("roster", expand),
			zap.Error(err))
		return err
	}
	return c.JSON(view)
}
