// Package chartdata defines the ChartDataStore collaborator contract spec
// §6 describes: the interactive-editor save/load surface the browser-side
// overlay (internal/chartgen's editor overlay) POSTs and GETs against.
//
// Per spec §5 ("the core never holds a DB connection") and §7's explicit
// out-of-scope list, this package intentionally carries no database
// driver and no HTTP handlers — those belong to a deployment's own
// collaborator service. What it does carry is the interface the rest of
// this module programs against, grounded on the teacher's own
// interface-first storage style (internal/infrastructure/database/redis's
// Cache interface, internal/infrastructure/database/postgres/repositories'
// per-entity repository interfaces), and a NoopStore so cmd/ wiring and
// tests have something concrete to hand to callers without requiring a
// real backing store.
package chartdata

import (
	"context"
	"time"

	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// ChartRecord is one saved editor payload, keyed by (ChartID, PresentationID).
type ChartRecord struct {
	ChartID        string                 `json:"chart_id"`
	PresentationID string                 `json:"presentation_id"`
	Payload        map[string]interface{} `json:"payload"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// Store is the ChartDataStore contract spec §6 names: upsert a chart's
// edited payload and fetch every saved record for a presentation. The
// uniqueness key is (ChartID, PresentationID) — an Upsert for an existing
// pair replaces its Payload and UpdatedAt rather than creating a second
// record.
type Store interface {
	// UpsertChartData saves payload under (chartID, presentationID),
	// replacing any existing record for that key, and returns the
	// server-assigned update timestamp.
	UpsertChartData(ctx context.Context, chartID, presentationID string, payload map[string]interface{}) (time.Time, error)

	// GetChartData returns every saved record for presentationID, in no
	// particular order. An empty slice (not an error) is returned when
	// nothing has been saved yet.
	GetChartData(ctx context.Context, presentationID string) ([]ChartRecord, error)
}

// NoopStore is a Store that accepts every upsert with a non-empty chart_id
// and presentation_id without persisting it, and returns no records on fetch. It exists for local development and
// for wiring code paths that need a non-nil Store but have no backing
// database configured (spec.md lists the persistence endpoints as an
// external collaborator, not core scope).
type NoopStore struct{}

var _ Store = NoopStore{}

func (NoopStore) UpsertChartData(ctx context.Context, chartID, presentationID string, payload map[string]interface{}) (time.Time, error) {
	if chartID == "" {
		return time.Time{}, apperrors.ValidationError(apperrors.CodeEmptyField, "chart_id", "chart_id is required", "")
	}
	if presentationID == "" {
		return time.Time{}, apperrors.ValidationError(apperrors.CodeEmptyField, "presentation_id", "presentation_id is required", "")
	}
	return time.Now().UTC(), nil
}

func (NoopStore) GetChartData(ctx context.Context, presentationID string) ([]ChartRecord, error) {
	if presentationID == "" {
		return nil, apperrors.ValidationError(apperrors.CodeEmptyField, "presentation_id", "presentation_id is required", "")
	}
	return []ChartRecord{}, nil
}
