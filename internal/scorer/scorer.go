// Package scorer computes dual classification accuracy for companies: how
// well the currently assigned SIC code fits the business description, and how
// well a predicted code fits. Scoring is deterministic; any demo or
// randomized behavior belongs in fixtures, never here.
package scorer

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/catalog"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/config"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/match"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/normalize"
)

// Scorer scores codes against business descriptions. It is stateless over an
// immutable catalog and safe for unrestricted concurrent use.
type Scorer struct {
	cat    *catalog.Catalog
	engine *match.Engine
	cfg    config.ScorerConfig
}

// New creates a Scorer over a loaded catalog.
func New(cat *catalog.Catalog, cfg config.ScorerConfig) *Scorer {
	if cfg.SectorBoost <= 0 {
		cfg.SectorBoost = 15
	}
	return &Scorer{
		cat:    cat,
		engine: match.New(cfg.Match),
		cfg:    cfg,
	}
}

// Engine exposes the underlying match engine for callers that want the full
// ranked candidate list.
func (s *Scorer) Engine() *match.Engine {
	return s.engine
}

// ComputeOldAccuracy scores the currently assigned code against the business
// description. An empty description is not evaluable; a code missing from
// the catalog is a confidently bad match, not an error.
func (s *Scorer) ComputeOldAccuracy(currentCode, description string) model.AccuracyResult {
	tokens := normalize.Tokens(description)
	if len(tokens) == 0 {
		return model.AccuracyResult{Code: currentCode, Evaluable: false}
	}

	entry, ok := s.cat.Entry(currentCode)
	if !ok {
		// Unknown code with a real description: zero accuracy, but we did
		// have enough information to judge.
		return model.AccuracyResult{Code: currentCode, Evaluable: true}
	}

	sim := s.engine.Similarity(tokens, entry.Tokens)
	return model.AccuracyResult{
		Code:          currentCode,
		RawSimilarity: sim,
		Accuracy:      sim * 100,
		Evaluable:     true,
	}
}

// ComputeNewAccuracy scores a predicted code against the description and
// applies sector boosts when keyword evidence corroborates the prediction.
func (s *Scorer) ComputeNewAccuracy(predictedCode, description string) model.AccuracyResult {
	tokens := normalize.Tokens(description)
	if len(tokens) == 0 {
		return model.AccuracyResult{Code: predictedCode, Evaluable: false}
	}

	entry, ok := s.cat.Entry(predictedCode)
	if !ok {
		return model.AccuracyResult{Code: predictedCode, Evaluable: true}
	}

	sim := s.engine.Similarity(tokens, entry.Tokens)
	result := model.AccuracyResult{
		Code:          predictedCode,
		RawSimilarity: sim,
		Accuracy:      sim * 100,
		Evaluable:     true,
	}
	s.applySectorBoost(&result, tokens)
	return result
}

// Predict returns the engine's best catalog match for a description together
// with its boosted accuracy. ok=false means no prediction is available; the
// caller must surface that, not fabricate a code.
func (s *Scorer) Predict(description string) (model.MatchCandidate, model.AccuracyResult, bool) {
	tokens := normalize.Tokens(description)
	best, ok := s.engine.BestMatch(tokens, s.cat)
	if !ok {
		return model.MatchCandidate{}, model.AccuracyResult{}, false
	}
	return best, s.ComputeNewAccuracy(best.Code, description), true
}

// ScoreCompany computes the dual accuracy for one company record.
func (s *Scorer) ScoreCompany(c model.CompanyRecord) model.CompanyScore {
	score := model.CompanyScore{
		Company: c,
		Old:     s.ComputeOldAccuracy(c.CurrentCode, c.BusinessDescription),
	}

	predicted, newAcc, ok := s.Predict(c.BusinessDescription)
	if ok {
		score.Predicted = &predicted
		score.New = newAcc
	} else {
		score.New = model.AccuracyResult{Evaluable: false}
	}
	return score
}

// applySectorBoost adds a fixed number of percentage points when the
// description tokens intersect a sector keyword set and the code falls in
// that sector's numeric range. The result is capped at 100.
func (s *Scorer) applySectorBoost(r *model.AccuracyResult, tokens []string) {
	code, err := strconv.Atoi(r.Code)
	if err != nil {
		// Non-numeric codes sit outside every sector range.
		return
	}

	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}

	for _, rule := range s.cfg.Sectors {
		if code < rule.CodeLow || code > rule.CodeHigh {
			continue
		}
		if !anyKeyword(tokenSet, rule.Keywords) {
			continue
		}

		boost := rule.Boost
		if boost <= 0 {
			boost = s.cfg.SectorBoost
		}
		r.BoostApplied = boost
		r.BoostReason = rule.Name
		r.Accuracy += boost
		if r.Accuracy > 100 {
			r.Accuracy = 100
		}

		zap.L().Debug("scorer: sector boost applied",
			zap.String("code", r.Code),
			zap.String("sector", rule.Name),
			zap.Float64("boost", boost),
			zap.Float64("accuracy", r.Accuracy),
		)
		return
	}
}

func anyKeyword(tokens map[string]struct{}, keywords []string) bool {
	for _, kw := range keywords {
		if _, ok := tokens[kw]; ok {
			return true
		}
	}
	return false
}
