package predict

import (
	"context"
	"log/slog"

	"github.com/kiranshivaraju/healthassist/internal/store"
	"github.com/kiranshivaraju/healthassist/pkg/models"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Section is one disease's block on the records page.
type Section struct {
	Disease *models.Disease
	Records []*models.PredictionRecord
	Err     error
	Summary Summary
}

// Empty reports whether the section has nothing to show.
func (s Section) Empty() bool { return len(s.Records) == 0 }

// Summary aggregates the rows currently shown in a section.
type Summary struct {
	Count        int
	PositiveRate float64
	// Means holds the mean of each feature column, in field order.
	Means []float64
}

// Overview fetches the newest rows for every disease concurrently. Each
// fetch is independent; a failure only affects its own section.
func (s *Service) Overview(ctx context.Context, diseases []*models.Disease) []Section {
	sections := make([]Section, len(diseases))

	var g errgroup.Group
	for i, d := range diseases {
		g.Go(func() error {
			sec := Section{Disease: d}
			recs, err := s.store.ListRecentPredictions(ctx, d, store.DefaultRecentLimit)
			if err != nil {
				slog.Error("fetch recent predictions failed", "table", d.Table, "error", err)
				sec.Err = err
				sec.Records = []*models.PredictionRecord{}
			} else {
				sec.Records = recs
				sec.Summary = Summarize(len(d.Fields), recs)
			}
			sections[i] = sec
			return nil
		})
	}
	_ = g.Wait()
	return sections
}

// Summarize computes the positive rate and per-feature means of records.
func Summarize(numFeatures int, records []*models.PredictionRecord) Summary {
	sum := Summary{Count: len(records)}
	if len(records) == 0 {
		return sum
	}

	preds := make(stats.Float64Data, len(records))
	for i, r := range records {
		preds[i] = float64(r.Prediction)
	}
	sum.PositiveRate, _ = stats.Mean(preds)

	sum.Means = make([]float64, numFeatures)
	col := make(stats.Float64Data, len(records))
	for j := 0; j < numFeatures; j++ {
		for i, r := range records {
			col[i] = r.Features[j]
		}
		sum.Means[j], _ = stats.Mean(col)
	}
	return sum
}
