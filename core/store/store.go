package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"holotable/core/apperr"

	"go.uber.org/zap"
)

// Document is the unit of persistence for every collection and for each
// language's localization map. A document is only valid when its version
// matches the currently expected one; existence on disk is not enough.
type Document struct {
	Version string          `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Store persists named documents as one JSON file per name under the data
// path. Writes fully replace prior contents; atomicity is whatever the
// filesystem gives a single-file overwrite. Concurrent writers to the same
// name are not supported.
type Store struct {
	dataPath string
	mirror   Mirror
	logger   *zap.Logger
}

// New creates a store rooted at cfg.DataPath. When cfg.Backend is s3, a
// mirror client is attached.
func New(cfg Config, logger *zap.Logger) (*Store, error) {
	if !cfg.IsValidBackend() {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	s := &Store{dataPath: cfg.DataPath, logger: logger}

	if cfg.Backend == BackendS3 {
		mirror, err := NewMirror(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create store mirror: %w", err)
		}
		s.mirror = mirror
	}

	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data path: %w", err)
	}

	return s, nil
}

// WithMirror attaches a mirror client. Used by tests to inject mocks.
func (s *Store) WithMirror(m Mirror) *Store {
	s.mirror = m
	return s
}

// Write serializes v to the named document file, replacing prior contents.
func (s *Store) Write(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", name, err)
	}

	if err := os.WriteFile(s.fileName(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}

	if s.mirror != nil {
		if err := s.mirror.Put(ctx, objectName(name), data); err != nil {
			// The local write already succeeded; the mirror catches up on
			// the next write of this document.
			s.logger.Warn("Failed to mirror document", zap.String("name", name), zap.Error(err))
		}
	}

	return nil
}

// Read decodes the named document into out. A missing file yields a
// KindNotFound error, a malformed one KindParse. With a mirror attached, a
// locally missing document is fetched from the bucket and re-materialized
// on disk before decoding.
func (s *Store) Read(ctx context.Context, name string, out any) error {
	data, err := os.ReadFile(s.fileName(name))
	if err != nil {
		// Only a genuinely absent file is NotFound. Anything else is an
		// operational failure and must not look like a missing document.
		if !os.IsNotExist(err) {
			return apperr.Wrap(apperr.KindUnavailable, fmt.Sprintf("cannot read document %s", name), err)
		}
		if s.mirror == nil {
			return apperr.Newf(apperr.KindNotFound, "document %s does not exist", name)
		}
		data, err = s.recoverFromMirror(ctx, name)
		if err != nil {
			return err
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Wrap(apperr.KindParse, fmt.Sprintf("document %s is malformed", name), err)
	}
	return nil
}

// Exists reports whether the named document is present locally.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.fileName(name))
	return err == nil
}

func (s *Store) recoverFromMirror(ctx context.Context, name string) ([]byte, error) {
	data, err := s.mirror.Get(ctx, objectName(name))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("document %s missing locally and from mirror", name), err)
	}

	s.logger.Info("Recovered document from mirror", zap.String("name", name))
	if err := os.WriteFile(s.fileName(name), data, 0o644); err != nil {
		s.logger.Warn("Failed to re-materialize mirrored document", zap.String("name", name), zap.Error(err))
	}
	return data, nil
}

func (s *Store) fileName(name string) string {
	return filepath.Join(s.dataPath, name+".json")
}

func objectName(name string) string {
	return name + ".json"
}
