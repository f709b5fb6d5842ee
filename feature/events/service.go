package events

import (
	"context"
	"encoding/json"

	"holotable/core/cache"
	"holotable/core/client"

	"go.uber.org/zap"
)

// cacheKey is the single entry the event schedule lives under.
const cacheKey = "events"

// Service serves the upstream event schedule with a shielding cache. Event
// schedules change rarely, so one cached entry covers all readers.
type Service struct {
	client client.Client
	cache  *cache.Cache
	logger *zap.Logger
}

// NewService creates a new events service.
func NewService(c client.Client, eventCache *cache.Cache, logger *zap.Logger) *Service {
	return &Service{client: c, cache: eventCache, logger: logger}
}

// GetEvents returns the currently scheduled in-game events, from cache
// when fresh enough.
func (s *Service) GetEvents(ctx context.Context) (json.RawMessage, error) {
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(json.RawMessage), nil
	}

	raw, err := s.client.GetEvents(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, raw)
	return raw, nil
}
