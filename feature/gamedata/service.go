package gamedata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"holotable/core/client"
	"holotable/core/config"
	"holotable/core/store"

	"go.uber.org/zap"
)

// Document names for the two version records.
const (
	dataVersionDoc = "dataVersion"
	locVersionDoc  = "localizationVersion"
)

// VersionState is the engine's view of what is currently persisted. It is
// replaced wholesale after a successful update, never partially mutated.
type VersionState struct {
	GameDataVersion     string   `json:"gameDataVersion"`
	LocalizationVersion string   `json:"localizationVersion"`
	KnownCollections    []string `json:"knownCollections"`
}

// Service is the versioned synchronization engine. It decides when local
// data is stale, fetches and persists new collections and localization
// bundles, and rebuilds the derived lookup tables.
type Service struct {
	client client.Client
	store  *store.Store
	cfg    config.DataConfig
	logger *zap.Logger

	// mu serializes updates and guards state and lookups. All mutation of
	// VersionState happens under it; readers get copies.
	mu      sync.Mutex
	state   VersionState
	lookups map[string]json.RawMessage
}

// NewService creates the synchronization engine.
func NewService(c client.Client, s *store.Store, cfg config.DataConfig, logger *zap.Logger) *Service {
	return &Service{
		client:  c,
		store:   s,
		cfg:     cfg,
		logger:  logger,
		lookups: make(map[string]json.RawMessage),
	}
}

// Init loads the last persisted version records and lookup tables. When no
// usable records exist it forces a full synchronization so the process never
// starts empty-handed.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loadPersistedState(ctx)
	s.mu.Unlock()

	if loaded {
		s.logger.Info("Loaded persisted version state",
			zap.String("game_data_version", s.State().GameDataVersion),
			zap.String("localization_version", s.State().LocalizationVersion))
		return nil
	}

	s.logger.Info("No usable version records found, forcing full synchronization")
	_, err := s.UpdateCheck(ctx, "", "", true)
	return err
}

// State returns a copy of the current version state.
func (s *Service) State() VersionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ForceSync runs a forced full update. It is the recovery hook invoked by
// the self-healing store when a read comes back stale or unreadable.
func (s *Service) ForceSync(ctx context.Context) error {
	_, err := s.UpdateCheck(ctx, "", "", true)
	return err
}

// UpdateCheck is the single entry point used by initialization, the poller
// and the refresh endpoint. If either version is unknown or force is set it
// queries upstream metadata first, then updates each track independently
// only if needed. Calling it twice with identical remote versions performs
// no redundant work the second time.
func (s *Service) UpdateCheck(ctx context.Context, gameVersion, locVersion string, force bool) (VersionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needMeta := gameVersion == "" || force
	if locVersion == "" && !s.cfg.DisableLocalization {
		needMeta = true
	}
	if needMeta {
		meta, err := s.client.GetMetadata(ctx)
		if err != nil {
			return s.snapshotLocked(), fmt.Errorf("update check: %w", err)
		}
		gameVersion = meta.LatestGamedataVersion
		locVersion = meta.LatestLocalizationBundleVersion
	}

	if s.needsGameDataUpdate(gameVersion, force) {
		if err := s.updateGameData(ctx, gameVersion); err != nil {
			return s.snapshotLocked(), err
		}
	}

	if s.needsLocalizationUpdate(locVersion, force) {
		if err := s.updateLocalizationBundle(ctx, locVersion); err != nil {
			return s.snapshotLocked(), err
		}
	}

	return s.snapshotLocked(), nil
}

// needsGameDataUpdate reports whether the game-data track is stale. Any
// exact-string difference counts, downgrades included; an empty known
// collection set also forces a run because there is nothing to serve.
func (s *Service) needsGameDataUpdate(remoteVersion string, force bool) bool {
	if force {
		return true
	}
	return remoteVersion != s.state.GameDataVersion || len(s.state.KnownCollections) == 0
}

func (s *Service) needsLocalizationUpdate(remoteVersion string, force bool) bool {
	if s.cfg.DisableLocalization {
		return false
	}
	return force || remoteVersion != s.state.LocalizationVersion
}

// updateGameData fetches and persists all collections for remoteVersion,
// then rebuilds the lookup tables. Any error aborts the update and leaves
// the previous VersionState intact; retry is the caller's responsibility.
// Callers must hold s.mu.
func (s *Service) updateGameData(ctx context.Context, remoteVersion string) error {
	s.logger.Info("Updating game data",
		zap.String("version", remoteVersion),
		zap.Bool("segmented", s.cfg.UseSegments))

	var (
		files []string
		err   error
	)
	if s.cfg.UseSegments {
		files, err = s.fetchSegmented(ctx, remoteVersion)
	} else {
		files, err = s.fetchWhole(ctx, remoteVersion)
	}
	if err != nil {
		return fmt.Errorf("game data update to %s failed: %w", remoteVersion, err)
	}

	record := store.Document{Version: remoteVersion, Data: mustMarshal(files)}
	if err := s.store.Write(ctx, dataVersionDoc, record); err != nil {
		return fmt.Errorf("game data update to %s failed: %w", remoteVersion, err)
	}

	s.state.GameDataVersion = remoteVersion
	s.state.KnownCollections = files

	s.logger.Info("Game data updated",
		zap.String("version", remoteVersion),
		zap.Int("collections", len(files)))

	// Lookup tables are derived; they must never drift from the game data
	// they summarize, so the rebuild is unconditional.
	if err := s.rebuildLookups(ctx); err != nil {
		return fmt.Errorf("lookup rebuild after update to %s failed: %w", remoteVersion, err)
	}
	return nil
}

// fetchWhole requests every collection in one upstream call.
func (s *Service) fetchWhole(ctx context.Context, remoteVersion string) ([]string, error) {
	collections, err := s.client.GetGameData(ctx, remoteVersion, s.cfg.IncludePveUnits, 0)
	if err != nil {
		return nil, err
	}
	return s.persistCollections(ctx, remoteVersion, collections, nil)
}

// fetchSegmented iterates the upstream segment enum, one round trip per
// segment, trading latency for lower peak memory. Empty identifiers are
// skipped, as is the final enumerated segment, which upstream uses as an
// unknown-value sentinel.
func (s *Service) fetchSegmented(ctx context.Context, remoteVersion string) ([]string, error) {
	segments, err := s.client.GetSegmentEnum(ctx)
	if err != nil {
		return nil, err
	}

	var files []string
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if i == len(segments)-1 {
			// If upstream ever makes the last segment carry real data this
			// will drop collections, hence the loud log.
			s.logger.Warn("Skipping final segment as sentinel", zap.String("segment", segment))
			continue
		}

		collections, err := s.client.GetGameData(ctx, remoteVersion, s.cfg.IncludePveUnits, i)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", segment, err)
		}
		files, err = s.persistCollections(ctx, remoteVersion, collections, files)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", segment, err)
		}
	}
	return files, nil
}

// persistCollections writes each non-empty collection as its own versioned
// document and appends the written names to files.
func (s *Service) persistCollections(ctx context.Context, remoteVersion string, collections map[string]json.RawMessage, files []string) ([]string, error) {
	for name, raw := range collections {
		if name == "" || isEmptyJSON(raw) {
			continue
		}
		doc := store.Document{Version: remoteVersion, Data: raw}
		if err := s.store.Write(ctx, name, doc); err != nil {
			return nil, err
		}
		files = append(files, name)
	}
	return files, nil
}

// loadPersistedState restores VersionState and lookup tables from disk.
// Returns false when either version record is missing or unreadable.
// Callers must hold s.mu.
func (s *Service) loadPersistedState(ctx context.Context) bool {
	var dataRecord store.Document
	if err := s.store.Read(ctx, dataVersionDoc, &dataRecord); err != nil {
		return false
	}
	var files []string
	if err := json.Unmarshal(dataRecord.Data, &files); err != nil || len(files) == 0 {
		return false
	}

	state := VersionState{
		GameDataVersion:  dataRecord.Version,
		KnownCollections: files,
	}

	if !s.cfg.DisableLocalization {
		var locRecord store.Document
		if err := s.store.Read(ctx, locVersionDoc, &locRecord); err != nil {
			return false
		}
		state.LocalizationVersion = locRecord.Version
	}

	s.state = state

	for _, table := range lookupTableNames {
		var raw json.RawMessage
		if err := s.store.Read(ctx, table, &raw); err == nil {
			s.lookups[table] = raw
		}
	}
	return true
}

func (s *Service) snapshotLocked() VersionState {
	out := s.state
	out.KnownCollections = append([]string(nil), s.state.KnownCollections...)
	return out
}

// isEmptyJSON reports whether raw carries no records.
func isEmptyJSON(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
