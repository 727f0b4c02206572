package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/events"
	"finanzas/internal/logger"
	"finanzas/internal/metrics"
	"finanzas/internal/models"
	"finanzas/internal/store"
)

// snapshotField is the document field holding per-period snapshots.
const snapshotField = "periodSnapshots"

// persistenceGateway maps working states onto the document store.
type persistenceGateway struct {
	store     store.DocumentStore
	breaker   *gobreaker.CircuitBreaker
	publisher events.Publisher
	metrics   *metrics.Metrics
}

// NewPersistenceGateway creates a PersistenceGateway on docs. publisher and
// m may be nil.
func NewPersistenceGateway(docs store.DocumentStore, publisher events.Publisher, m *metrics.Metrics) PersistenceGateway {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &persistenceGateway{
		store:     docs,
		breaker:   newStoreBreaker("document-store"),
		publisher: publisher,
		metrics:   m,
	}
}

// Load decodes the stored document. Top-level fields the document lacks take
// their defaults.
func (g *persistenceGateway) Load(ctx context.Context, userID string) (*models.Document, error) {
	raw, err := g.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistenceUnavailable, err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	doc, err := models.DecodeDocument(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("decode document of %s: %w", userID, err))
	}
	return doc, nil
}

// Save merge-writes the flat fields and periodSnapshots.<YYYY-MM> in one call.
func (g *persistenceGateway) Save(ctx context.Context, userID string, state models.BudgetState) error {
	fields, err := saveFields(state)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	start := time.Now()
	_, err = g.breaker.Execute(func() (interface{}, error) {
		return nil, g.store.Merge(ctx, userID, fields)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			g.metrics.RecordSave(metrics.SaveRejected, 0)
		} else {
			g.metrics.RecordSave(metrics.SaveFailure, time.Since(start))
		}
		return apperrors.Wrap(apperrors.ErrPersistenceUnavailable, err)
	}
	g.metrics.RecordSave(metrics.SaveSuccess, time.Since(start))

	msg := events.NewStateSaved(userID, state.Period().Key(), len(state.Buckets))
	if err := g.publisher.PublishStateSaved(ctx, msg); err != nil {
		logger.Named("persistence").Warnw("failed to publish state saved event",
			"user_id", userID, "period", msg.Period, "error", err)
	}
	return nil
}

func saveFields(state models.BudgetState) (map[string]any, error) {
	flat, err := toFields(state.Clone())
	if err != nil {
		return nil, err
	}
	snapshot, err := toFields(state.Snapshot())
	if err != nil {
		return nil, err
	}
	flat[snapshotField+"."+state.Period().Key()] = snapshot
	return flat, nil
}

func toFields(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
