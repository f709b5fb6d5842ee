package gamedata

import (
	"holotable/core/logger"
	"holotable/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for game-data state and collections.
type Handler struct {
	service   *Service
	validated *store.Validated
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, validated *store.Validated) *Handler {
	return &Handler{service: service, validated: validated}
}

// RegisterRoutes registers the game-data routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/version", h.HandleVersion)
	app.Post("/refresh", h.HandleRefresh)
	app.Get("/data/:collection", h.HandleCollection)
	app.Get("/localization/:lang", h.HandleLocalization)
	app.Get("/lookup/:table", h.HandleLookup)
}

// HandleVersion returns the current version state.
// @Summary Current Version State
// @Description Returns the game-data and localization versions currently persisted, plus the known collections.
// @Tags gamedata
// @Produce json
// @Success 200 {object} gamedata.VersionState
// @Router /version [get]
func (h *Handler) HandleVersion(c *fiber.Ctx) error {
	return c.JSON(h.service.State())
}

// HandleRefresh runs an update check against upstream.
// @Summary Run Update Check
// @Description Compares local versions against upstream metadata and synchronizes stale tracks. Use force=true to resynchronize regardless.
// @Tags gamedata
// @Produce json
// @Param force query boolean false "Force a full resynchronization"
// @Success 200 {object} gamedata.VersionState
// @Failure 502 {object} map[string]string "Upstream Error"
// @Router /refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	force := c.Query("force") == "true"
	l.Info("Refresh requested", zap.Bool("force", force))

	state, err := h.service.UpdateCheck(c.Context(), "", "", force)
	if err != nil {
		l.Error("Refresh failed", zap.Error(err))
		return err
	}
	return c.JSON(state)
}

// HandleCollection serves a persisted game-data collection.
// @Summary Get Collection
// @Description Returns a raw game-data collection at the current version. A stale or unreadable collection triggers one recovery synchronization before failing.
// @Tags gamedata
// @Produce json
// @Param collection path string true "Collection name (e.g. units, skill, equipment)"
// @Success 200 {array} object
// @Failure 404 {object} map[string]string "Unknown Collection"
// @Failure 503 {object} map[string]string "Collection Unavailable"
// @Router /data/{collection} [get]
func (h *Handler) HandleCollection(c *fiber.Ctx) error {
	name := c.Params("collection")
	data, err := h.validated.ReadValidated(c.Context(), name, h.service.State().GameDataVersion)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleLocalization serves a persisted language map.
// @Summary Get Localization Map
// @Description Returns the key to display-text mapping for one language at the current localization version.
// @Tags gamedata
// @Produce json
// @Param lang path string true "Language (e.g. ENG_US)"
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Language Unavailable"
// @Router /localization/{lang} [get]
func (h *Handler) HandleLocalization(c *fiber.Ctx) error {
	lang := c.Params("lang")
	data, err := h.validated.ReadValidated(c.Context(), lang, h.service.State().LocalizationVersion)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleLookup serves a derived lookup table.
// @Summary Get Lookup Table
// @Description Returns one of the derived display-metadata tables (unitLookup, skillLookup, equipmentLookup, modLookup).
// @Tags gamedata
// @Produce json
// @Param table path string true "Lookup table name"
// @Success 200 {object} object
// @Failure 404 {object} map[string]string "Unknown Table"
// @Router /lookup/{table} [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	data, err := h.service.Lookup(c.Context(), c.Params("table"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
