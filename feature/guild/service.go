package guild

import (
	"context"
	"encoding/json"
	"fmt"

	"holotable/core/apperr"
	"holotable/core/cache"
	"holotable/core/client"
	"holotable/core/pool"
	"holotable/feature/player"

	"go.uber.org/zap"
)

// Minimal projections of the upstream records; everything else is passed
// through untouched.
type playerRecord struct {
	GuildID string `json:"guildId"`
}

type guildRecord struct {
	Roster []rosterMember `json:"roster"`
}

type rosterMember struct {
	AllyCode string `json:"allyCode"`
}

// View is the served guild shape: the raw guild record, optionally joined
// with the full player record of every roster member.
type View struct {
	Guild  json.RawMessage   `json:"guild"`
	Roster []json.RawMessage `json:"roster,omitempty"`
}

// Service serves guild records, resolving them through the requesting
// player and expanding rosters with bounded upstream concurrency.
type Service struct {
	client      client.Client
	guildCache  *cache.Cache
	playerCache *cache.Cache
	concurrency int
	logger      *zap.Logger
}

// NewService creates a new guild service.
func NewService(c client.Client, guildCache, playerCache *cache.Cache, concurrency int, logger *zap.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		client:      c,
		guildCache:  guildCache,
		playerCache: playerCache,
		concurrency: concurrency,
		logger:      logger,
	}
}

// GetGuild resolves the guild of the given ally code. With expandRoster the
// full player record of every member is fetched through the worker pool;
// individual member failures are tolerated as long as one fetch succeeds.
func (s *Service) GetGuild(ctx context.Context, allyCode string, expandRoster bool) (*View, error) {
	code, err := player.NormalizeAllyCode(allyCode)
	if err != nil {
		return nil, err
	}

	rawPlayer, err := s.fetchPlayer(ctx, code)
	if err != nil {
		return nil, err
	}

	var p playerRecord
	if err := json.Unmarshal(rawPlayer, &p); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "cannot decode player record", err)
	}
	if p.GuildID == "" {
		return nil, apperr.Newf(apperr.KindNotFound, "player %s is not in a guild", code)
	}

	rawGuild, err := s.fetchGuild(ctx, p.GuildID)
	if err != nil {
		return nil, err
	}

	view := &View{Guild: rawGuild}
	if !expandRoster {
		return view, nil
	}

	roster, err := s.expandRoster(ctx, rawGuild)
	if err != nil {
		return nil, err
	}
	view.Roster = roster
	return view, nil
}

// expandRoster fetches every member's player record, at most s.concurrency
// in flight.
func (s *Service) expandRoster(ctx context.Context, rawGuild json.RawMessage) ([]json.RawMessage, error) {
	var g guildRecord
	if err := json.Unmarshal(rawGuild, &g); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "cannot decode guild roster", err)
	}

	codes := make([]string, 0, len(g.Roster))
	for _, m := range g.Roster {
		if m.AllyCode != "" {
			codes = append(codes, m.AllyCode)
		}
	}
	if len(codes) == 0 {
		return nil, nil
	}

	members, err := pool.Fetch(ctx, codes, s.concurrency, s.fetchPlayer)
	if err != nil {
		return nil, fmt.Errorf("roster expansion failed: %w", err)
	}

	if len(members) < len(codes) {
		s.logger.Warn("Partial roster expansion",
			zap.Int("requested", len(codes)),
			zap.Int("fetched", len(members)))
	}
	return members, nil
}

func (s *Service) fetchPlayer(ctx context.Context, allyCode string) (json.RawMessage, error) {
	key := player.CacheKey(allyCode)
	if v, ok := s.playerCache.Get(key); ok {
		return v.(json.RawMessage), nil
	}

	raw, err := s.client.GetPlayer(ctx, allyCode)
	if err != nil {
		return nil, err
	}
	s.playerCache.Set(key, raw)
	return raw, nil
}

func (s *Service) fetchGuild(ctx context.Context, guildID string) (json.RawMessage, error) {
	key := "guild:" + guildID
	if v, ok := s.guildCache.Get(key); ok {
		return v.(json.RawMessage), nil
	}

	raw, err := s.client.GetGuild(ctx, guildID, true)
	if err != nil {
		return nil, err
	}
	s.guildCache.Set(key, raw)
	return raw, nil
}
