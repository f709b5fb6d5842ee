package store

import (
	"context"
	"encoding/json"
	"fmt"

	"holotable/core/apperr"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Syncer triggers a forced full synchronization against the upstream
// service. Implemented by the gamedata engine.
type Syncer interface {
	ForceSync(ctx context.Context) error
}

// Validated is the self-healing read path over the store. A read that fails
// or comes back at the wrong version triggers one forced synchronization and
// one retry; a second failure is terminal for that read, so a persistently
// broken upstream cannot cause an update loop.
type Validated struct {
	store  *Store
	syncer Syncer
	sf     singleflight.Group
	logger *zap.Logger
}

// NewValidated wraps the store with the self-healing read path.
func NewValidated(s *Store, syncer Syncer, logger *zap.Logger) *Validated {
	return &Validated{store: s, syncer: syncer, logger: logger}
}

// ReadValidated returns the named document's data if its persisted version
// equals expectedVersion, healing stale or unreadable documents with a
// single forced synchronization.
func (v *Validated) ReadValidated(ctx context.Context, name, expectedVersion string) (json.RawMessage, error) {
	data, err := v.readAt(ctx, name, expectedVersion)
	if err == nil {
		return data, nil
	}

	v.logger.Warn("Document read failed, forcing synchronization",
		zap.String("name", name),
		zap.String("expected_version", expectedVersion),
		zap.Error(err))

	// Collapse concurrent readers of broken documents into one sync.
	if _, syncErr, _ := v.sf.Do("force-sync", func() (any, error) {
		return nil, v.syncer.ForceSync(ctx)
	}); syncErr != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, fmt.Sprintf("collection %s: recovery synchronization failed", name), syncErr)
	}

	data, err = v.readAt(ctx, name, expectedVersion)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, fmt.Sprintf("collection %s unavailable after recovery", name), err)
	}
	return data, nil
}

func (v *Validated) readAt(ctx context.Context, name, expectedVersion string) (json.RawMessage, error) {
	var doc Document
	if err := v.store.Read(ctx, name, &doc); err != nil {
		return nil, err
	}
	if doc.Version != expectedVersion {
		return nil, apperr.Newf(apperr.KindNotFound, "document %s is at version %s, expected %s", name, doc.Version, expectedVersion)
	}
	return doc.Data, nil
}
