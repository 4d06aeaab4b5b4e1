package models

import "context"

// Classifier is the interface every loaded model artifact satisfies.
// Handlers and services never touch a concrete model type.
type Classifier interface {
	// Predict returns 0 or 1 for a feature vector in form order.
	Predict(ctx context.Context, features []float64) (int, error)
	// Kind identifies the estimator, e.g. "linear_svc".
	Kind() string
}
