package player

import (
	"context"
	"encoding/json"
	"strings"

	"holotable/core/apperr"
	"holotable/core/cache"
	"holotable/core/client"
	"holotable/core/pool"

	"go.uber.org/zap"
)

// Service serves player records with an upstream-shielding cache.
type Service struct {
	client      client.Client
	cache       *cache.Cache
	concurrency int
	logger      *zap.Logger
}

// NewService creates a new player service. The cache is shared with the
// guild feature so a roster expansion warms individual player reads too.
func NewService(c client.Client, playerCache *cache.Cache, concurrency int, logger *zap.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{client: c, cache: playerCache, concurrency: concurrency, logger: logger}
}

// GetPlayer returns the player record for an ally code, from cache when
// fresh enough.
func (s *Service) GetPlayer(ctx context.Context, allyCode string) (json.RawMessage, error) {
	code, err := NormalizeAllyCode(allyCode)
	if err != nil {
		return nil, err
	}

	key := CacheKey(code)
	if v, ok := s.cache.Get(key); ok {
		return v.(json.RawMessage), nil
	}

	raw, err := s.client.GetPlayer(ctx, code)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, raw)
	return raw, nil
}

// GetPlayers returns the records for a batch of ally codes, at most the
// configured concurrency in flight upstream. Individual failures are
// tolerated as long as one fetch succeeds; every success fills the cache.
func (s *Service) GetPlayers(ctx context.Context, allyCodes []string) ([]json.RawMessage, error) {
	if len(allyCodes) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "no ally codes given")
	}

	records, err := pool.Fetch(ctx, allyCodes, s.concurrency, s.GetPlayer)
	if err != nil {
		return nil, err
	}
	if len(records) < len(allyCodes) {
		s.logger.Warn("Partial batch player fetch",
			zap.Int("requested", len(allyCodes)),
			zap.Int("fetched", len(records)))
	}
	return records, nil
}

// CacheKey returns the cache key for a normalized ally code.
func CacheKey(allyCode string) string {
	return "player:" + allyCode
}

// NormalizeAllyCode strips separators from an ally code and validates its
// shape (nine digits, optionally dash-grouped as 123-456-789).
func NormalizeAllyCode(allyCode string) (string, error) {
	code := strings.ReplaceAll(strings.TrimSpace(allyCode), "-", "")
	if len(code) != 9 {
		return "", apperr.Newf(apperr.KindNotFound, "invalid ally code %q", allyCode)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", apperr.Newf(apperr.KindNotFound, "invalid ally code %q", allyCode)
		}
	}
	return code, nil
}
