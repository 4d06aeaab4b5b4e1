package models

import "time"

// PredictionRecord is one persisted row: a feature vector, the model's
// binary output and the diagnosis derived from it.
type PredictionRecord struct {
	ID         int64     `db:"id"         json:"id"`
	Features   []float64 `db:"-"          json:"features"`
	Prediction int       `db:"prediction" json:"prediction"`
	Diagnosis  string    `db:"diagnosis"  json:"diagnosis"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
