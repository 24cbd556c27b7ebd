// Package updates validates and persists user-confirmed code overrides.
// Validation happens here so the stores stay dumb: a record that reaches
// UpsertUpdate is already known to carry a real catalog code and a sane
// accuracy, and an invalid confirmation never touches the prior record.
package updates

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/catalog"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/store"
)

var (
	// ErrInvalidCode is returned when the confirmed code is not in the catalog.
	ErrInvalidCode = eris.New("updates: code not in catalog")

	// ErrInvalidAccuracy is returned when an accuracy falls outside 0..100.
	ErrInvalidAccuracy = eris.New("updates: accuracy out of range")

	// ErrMissingCompany is returned when the request has no company id.
	ErrMissingCompany = eris.New("updates: missing company id")
)

// Service confirms code overrides against the catalog and writes them through
// the configured store.
type Service struct {
	cat   *catalog.Catalog
	store store.Store
}

// New creates an update service over a loaded catalog and an open store.
func New(cat *catalog.Catalog, st store.Store) *Service {
	return &Service{cat: cat, store: st}
}

// Confirm validates the request and upserts the override. Re-confirming the
// same company overwrites the previous record (last write wins).
func (s *Service) Confirm(ctx context.Context, req model.UpdateRequest) (*model.UpdateRecord, error) {
	companyID := strings.TrimSpace(req.CompanyID)
	if companyID == "" {
		return nil, ErrMissingCompany
	}

	newCode := strings.TrimSpace(req.NewCode)
	if _, ok := s.cat.Lookup(newCode); !ok {
		return nil, eris.Wrapf(ErrInvalidCode, "code %q", req.NewCode)
	}
	if req.NewAccuracy < 0 || req.NewAccuracy > 100 {
		return nil, eris.Wrapf(ErrInvalidAccuracy, "new_accuracy %.2f", req.NewAccuracy)
	}
	if req.OldAccuracy < 0 || req.OldAccuracy > 100 {
		return nil, eris.Wrapf(ErrInvalidAccuracy, "old_accuracy %.2f", req.OldAccuracy)
	}

	confidence := req.Confidence
	if confidence == 0 {
		confidence = req.NewAccuracy / 100
	}
	if confidence < 0 || confidence > 1 {
		return nil, eris.Wrapf(ErrInvalidAccuracy, "confidence %.2f", req.Confidence)
	}

	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		actor = "system"
	}

	rec := model.UpdateRecord{
		CompanyID:   companyID,
		OldCode:     strings.TrimSpace(req.OldCode),
		NewCode:     newCode,
		OldAccuracy: req.OldAccuracy,
		NewAccuracy: req.NewAccuracy,
		Confidence:  confidence,
		UpdatedAt:   time.Now().UTC(),
		Actor:       actor,
	}

	if err := s.store.UpsertUpdate(ctx, rec); err != nil {
		return nil, eris.Wrapf(err, "updates: confirm %s", companyID)
	}

	zap.L().Info("updates: confirmed",
		zap.String("company_id", rec.CompanyID),
		zap.String("new_code", rec.NewCode),
		zap.Float64("new_accuracy", rec.NewAccuracy),
		zap.String("actor", rec.Actor),
	)
	return &rec, nil
}

// Get returns the confirmed override for a company, or nil if none exists.
func (s *Service) Get(ctx context.Context, companyID string) (*model.UpdateRecord, error) {
	return s.store.GetUpdate(ctx, strings.TrimSpace(companyID))
}

// List returns confirmed overrides matching the filter, most recent first.
func (s *Service) List(ctx context.Context, filter store.UpdateFilter) ([]model.UpdateRecord, error) {
	return s.store.ListUpdates(ctx, filter)
}
