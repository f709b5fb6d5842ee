package gamedata

import (
	"holotable/core/client"
	"holotable/core/config"
	"holotable/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the game-data feature: the synchronization engine plus
// its HTTP surface. The returned feature's Service also backs the
// self-healing reads of the other features.
func NewFeature(c client.Client, s *store.Store, cfg config.DataConfig, logger *zap.Logger) *Feature {
	svc := NewService(c, s, cfg, logger)
	validated := store.NewValidated(s, svc, logger)
	h := NewHandler(svc, validated)
	return &Feature{service: svc, handler: h}
}

// Service exposes the synchronization engine for wiring (poller callbacks,
// other features' version checks).
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "gamedata"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
