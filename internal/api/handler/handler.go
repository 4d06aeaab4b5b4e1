package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/healthassist/internal/disease"
	"github.com/kiranshivaraju/healthassist/internal/predict"
	"github.com/kiranshivaraju/healthassist/pkg/models"
)

// Predictor defines the interface the handlers depend on.
type Predictor interface {
	Prepare(ctx context.Context, d *models.Disease) error
	Submit(ctx context.Context, d *models.Disease, inputs map[string]string) (*predict.Outcome, error)
	Recent(ctx context.Context, d *models.Disease, limit int) ([]*models.PredictionRecord, error)
	Overview(ctx context.Context, diseases []*models.Disease) []predict.Section
}

var _ Predictor = (*predict.Service)(nil)

// diseaseParam resolves the {disease} URL parameter.
func diseaseParam(r *http.Request) (*models.Disease, bool) {
	return disease.Lookup(chi.URLParam(r, "disease"))
}
