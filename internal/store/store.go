// Package store persists user-confirmed code overrides and batch score-run
// audit rows. Both backends key updates by company id and write each record
// in a single atomic upsert, so a reader can never observe a truncated or
// half-updated row and concurrent writers for the same company serialize in
// the storage engine.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
)

// ErrNotFound is returned by operations that require an existing row.
var ErrNotFound = eris.New("store: not found")

// UpdateFilter specifies criteria for listing confirmed updates.
type UpdateFilter struct {
	Actor  string `json:"actor,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for confirmed updates.
type Store interface {
	// Confirmed updates. UpsertUpdate is last-write-wins per company id.
	UpsertUpdate(ctx context.Context, rec model.UpdateRecord) error
	GetUpdate(ctx context.Context, companyID string) (*model.UpdateRecord, error)
	ListUpdates(ctx context.Context, filter UpdateFilter) ([]model.UpdateRecord, error)

	// Batch score-run audit trail.
	CreateScoreRun(ctx context.Context, source string, total int) (*model.ScoreRun, error)
	CompleteScoreRun(ctx context.Context, runID string, scored int) error
	ListScoreRuns(ctx context.Context, limit int) ([]model.ScoreRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
