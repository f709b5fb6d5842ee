package player

import (
	"holotable/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for player records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the player routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/player/:allyCode", h.HandlePlayer)
	app.Post("/players", h.HandlePlayers)
}

// PlayersRequest is the batch fetch request body.
type PlayersRequest struct {
	AllyCodes []string `json:"allyCodes"`
}

// HandlePlayer serves one player record.
// @Summary Get Player
// @Description Returns the upstream player record for an ally code. Responses are cached for the configured TTL.
// @Tags player
// @Produce json
// @Param allyCode path string true "Ally code (123456789 or 123-456-789)"
// @Success 200 {object} object
// @Failure 404 {object} map[string]string "Invalid Ally Code"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /player/{allyCode} [get]
func (h *Handler) HandlePlayer(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	raw, err := h.service.GetPlayer(c.Context(), c.Params("allyCode"))
	if err != nil {
		l.Warn("Player fetch failed", zap.String("ally_code", c.Params("allyCode")), zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// HandlePlayers serves a batch of player records.
// @Summary Get Players
// @Description Returns the upstream records for a batch of ally codes, fetched with bounded concurrency. Individual failures are tolerated as long as one fetch succeeds.
// @Tags player
// @Accept json
// @Produce json
// @Param request body player.PlayersRequest true "Ally codes to fetch"
// @Success 200 {array} object
// @Failure 400 {object} map[string]string "Malformed Request Body"
// @Failure 404 {object} map[string]string "No Ally Codes Given"
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /players [post]
func (h *Handler) HandlePlayers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req PlayersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	records, err := h.service.GetPlayers(c.Context(), req.AllyCodes)
	if err != nil {
		l.Warn("Batch player fetch failed", zap.Int("count", len(req.AllyCodes)), zap.Error(err))
		return err
	}
	return c.JSON(records)
}
