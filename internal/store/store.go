package store

import (
	"context"
	"errors"

	"github.com/kiranshivaraju/healthassist/pkg/models"
)

// DefaultRecentLimit is the number of rows the records page shows per disease.
const DefaultRecentLimit = 100

var ErrInvalidRecord = errors.New("record does not match disease fields")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	// EnsureTable creates the disease's prediction table if it is absent.
	EnsureTable(ctx context.Context, d *models.Disease) error
	// InsertPrediction stores rec and fills in its ID and CreatedAt.
	InsertPrediction(ctx context.Context, d *models.Disease, rec *models.PredictionRecord) error
	// ListRecentPredictions returns up to limit rows, newest first.
	ListRecentPredictions(ctx context.Context, d *models.Disease, limit int) ([]*models.PredictionRecord, error)
}

// ClampLimit bounds a requested row count to [1, DefaultRecentLimit].
// Zero or negative means the default.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > DefaultRecentLimit {
		return DefaultRecentLimit
	}
	return limit
}
