// Package predict runs the form-to-record flow shared by every disease page.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kiranshivaraju/healthassist/internal/disease"
	"github.com/kiranshivaraju/healthassist/internal/store"
	"github.com/kiranshivaraju/healthassist/pkg/models"
)

var (
	// ErrInvalidInput aliases disease.ErrInvalidInput so callers need one import.
	ErrInvalidInput = disease.ErrInvalidInput
	ErrModel        = errors.New("model prediction failed")
	ErrNoModel      = errors.New("no model loaded for disease")
)

// Stage is how far a submission progressed.
type Stage int

const (
	StageIdle Stage = iota
	StageSubmitted
	StageComputed
	StagePersisted
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSubmitted:
		return "submitted"
	case StageComputed:
		return "computed"
	case StagePersisted:
		return "persisted"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Outcome is the result of one form submission. Record is set once the
// prediction is computed; PersistErr is set when the insert failed.
type Outcome struct {
	Stage      Stage
	Record     *models.PredictionRecord
	PersistErr error
}

// Persisted reports whether the record reached the database.
func (o *Outcome) Persisted() bool { return o.Stage == StagePersisted }

// Service owns the loaded classifiers and the store for all disease pages.
type Service struct {
	store       store.Store
	classifiers map[string]models.Classifier
}

// NewService creates a Service. classifiers is keyed by disease slug.
func NewService(st store.Store, classifiers map[string]models.Classifier) *Service {
	return &Service{store: st, classifiers: classifiers}
}

// Prepare makes sure the disease's table exists. Callers display the error
// and keep rendering.
func (s *Service) Prepare(ctx context.Context, d *models.Disease) error {
	if err := s.store.EnsureTable(ctx, d); err != nil {
		slog.Warn("ensure table failed", "table", d.Table, "error", err)
		return err
	}
	return nil
}

// Submit parses raw inputs, predicts, derives the diagnosis and stores the
// record. Input and model errors are returned and nothing is written.
// A failed insert is reported through Outcome.PersistErr with the
// diagnosis still available.
func (s *Service) Submit(ctx context.Context, d *models.Disease, inputs map[string]string) (*Outcome, error) {
	out := &Outcome{Stage: StageSubmitted}

	features, err := disease.ParseInputs(d, inputs)
	if err != nil {
		return out, err
	}

	clf, ok := s.classifiers[d.Slug]
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrNoModel, d.Slug)
	}

	prediction, err := clf.Predict(ctx, features)
	if err != nil {
		slog.Error("prediction failed", "disease", d.Slug, "model", clf.Kind(), "error", err)
		return out, fmt.Errorf("%w: %s: %w", ErrModel, d.Slug, err)
	}
	if prediction != 0 && prediction != 1 {
		return out, fmt.Errorf("%w: %s: non-binary output %d", ErrModel, d.Slug, prediction)
	}

	out.Record = &models.PredictionRecord{
		Features:   features,
		Prediction: prediction,
		Diagnosis:  d.Diagnosis(prediction),
	}
	out.Stage = StageComputed

	if err := s.store.InsertPrediction(ctx, d, out.Record); err != nil {
		slog.Error("store prediction failed", "table", d.Table, "error", err)
		out.PersistErr = err
		return out, nil
	}
	out.Stage = StagePersisted

	slog.Info("prediction recorded",
		"disease", d.Slug,
		"id", out.Record.ID,
		"prediction", prediction,
	)
	return out, nil
}

// Recent returns up to limit of the newest records for a disease.
func (s *Service) Recent(ctx context.Context, d *models.Disease, limit int) ([]*models.PredictionRecord, error) {
	return s.store.ListRecentPredictions(ctx, d, limit)
}
