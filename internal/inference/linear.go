// Package inference loads the exported classifier artifacts and evaluates
// them on feature vectors.
package inference

import (
	"context"
	"fmt"
	"math"

	"github.com/kiranshivaraju/healthassist/pkg/models"
	"gonum.org/v1/gonum/floats"
)

const (
	KindLinearSVC          = "linear_svc"
	KindLogisticRegression = "logistic_regression"
)

// Scaler standardizes features as (x - mean) / scale before the decision
// function is applied.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LinearModel is a binary linear classifier. Class 1 is predicted when the
// decision value w·x + b is strictly positive.
type LinearModel struct {
	kind      string
	coef      []float64
	intercept float64
	scaler    *Scaler
}

var _ models.Classifier = (*LinearModel)(nil)

func (m *LinearModel) Kind() string { return m.kind }

// Dim returns the number of features the model expects.
func (m *LinearModel) Dim() int { return len(m.coef) }

// Decision returns the raw decision value for a feature vector.
func (m *LinearModel) Decision(features []float64) (float64, error) {
	if len(features) != len(m.coef) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(m.coef))
	}
	for _, x := range features {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, ErrNonFinite
		}
	}

	x := make([]float64, len(features))
	copy(x, features)
	if m.scaler != nil {
		floats.Sub(x, m.scaler.Mean)
		floats.Div(x, m.scaler.Scale)
	}
	return floats.Dot(m.coef, x) + m.intercept, nil
}

// Predict returns 1 for a positive decision value and 0 otherwise.
func (m *LinearModel) Predict(_ context.Context, features []float64) (int, error) {
	z, err := m.Decision(features)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}
