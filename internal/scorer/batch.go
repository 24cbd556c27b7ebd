package scorer

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
)

// ScoreBatch computes dual accuracy for every company with bounded
// concurrency. Output order matches input order, and a bad row degrades to
// its sentinel result instead of aborting the batch.
func (s *Scorer) ScoreBatch(ctx context.Context, companies []model.CompanyRecord, workers int) ([]model.CompanyScore, error) {
	if workers <= 0 {
		workers = 8
	}

	results := make([]model.CompanyScore, len(companies))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range companies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.ScoreCompany(c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	evaluable := 0
	for _, r := range results {
		if r.Old.Evaluable || r.New.Evaluable {
			evaluable++
		}
	}
	zap.L().Info("scorer: batch complete",
		zap.Int("companies", len(companies)),
		zap.Int("evaluable", evaluable),
		zap.Int("workers", workers),
	)
	return results, nil
}
