package mock

import (
	"context"

	"github.com/kiranshivaraju/healthassist/pkg/models"
)

// MockClassifier satisfies models.Classifier for testing.
type MockClassifier struct {
	Kind_       string
	PredictFunc func(ctx context.Context, features []float64) (int, error)

	// Calls records every feature vector passed to Predict.
	Calls [][]float64
}

func (m *MockClassifier) Kind() string { return m.Kind_ }

func (m *MockClassifier) Predict(ctx context.Context, features []float64) (int, error) {
	m.Calls = append(m.Calls, append([]float64(nil), features...))
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, features)
	}
	return 0, nil
}

// NewFixedClassifier returns a MockClassifier that always predicts class.
func NewFixedClassifier(class int) *MockClassifier {
	return &MockClassifier{
		Kind_: "mock",
		PredictFunc: func(_ context.Context, _ []float64) (int, error) {
			return class, nil
		},
	}
}

// NewFailingClassifier returns a MockClassifier that always returns err.
func NewFailingClassifier(err error) *MockClassifier {
	return &MockClassifier{
		Kind_: "mock-failing",
		PredictFunc: func(_ context.Context, _ []float64) (int, error) {
			return 0, err
		},
	}
}

// Compile-time check that MockClassifier implements Classifier.
var _ models.Classifier = (*MockClassifier)(nil)
