package player

import (
	"holotable/core/cache"
	"holotable/core/client"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new player feature. concurrency caps in-flight
// upstream fetches for batch reads.
func NewFeature(c client.Client, playerCache *cache.Cache, concurrency int, logger *zap.Logger) *Feature {
	svc := NewService(c, playerCache, concurrency, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "player"
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
