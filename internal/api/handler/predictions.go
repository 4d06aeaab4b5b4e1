package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kiranshivaraju/healthassist/internal/api/response"
	"github.com/kiranshivaraju/healthassist/internal/disease"
	"github.com/kiranshivaraju/healthassist/internal/predict"
	"github.com/kiranshivaraju/healthassist/internal/store"
	"github.com/kiranshivaraju/healthassist/pkg/models"
)

type predictionResponse struct {
	ID         int64              `json:"id,omitempty"`
	Disease    string             `json:"disease"`
	Features   map[string]float64 `json:"features"`
	Prediction int                `json:"prediction"`
	Diagnosis  string             `json:"diagnosis"`
	CreatedAt  string             `json:"created_at,omitempty"`
}

func toPredictionResponse(d *models.Disease, rec *models.PredictionRecord) predictionResponse {
	features := make(map[string]float64, len(d.Fields))
	for i, f := range d.Fields {
		if i < len(rec.Features) {
			features[f.Column] = rec.Features[i]
		}
	}
	resp := predictionResponse{
		ID:         rec.ID,
		Disease:    d.Slug,
		Features:   features,
		Prediction: rec.Prediction,
		Diagnosis:  rec.Diagnosis,
	}
	if !rec.CreatedAt.IsZero() {
		resp.CreatedAt = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// NewListDiseasesHandler returns an http.HandlerFunc for GET /api/v1/diseases.
func NewListDiseasesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, disease.All())
	}
}

// NewCreatePredictionHandler returns an http.HandlerFunc for
// POST /api/v1/predictions/{disease}.
func NewCreatePredictionHandler(svc Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := diseaseParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Unknown disease", nil)
			return
		}

		var req struct {
			Inputs map[string]any `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		inputs, bad := stringifyInputs(req.Inputs)
		if len(bad) > 0 {
			response.Error(w, http.StatusUnprocessableEntity, "INVALID_INPUT",
				"Every input must be a number", bad)
			return
		}

		// Table creation failures are not fatal; the insert reports its own error.
		_ = svc.Prepare(r.Context(), d)

		out, err := svc.Submit(r.Context(), d, inputs)
		if err != nil {
			var inputErr *disease.InputError
			switch {
			case errors.As(err, &inputErr):
				response.Error(w, http.StatusUnprocessableEntity, "INVALID_INPUT",
					"Every input must be a number", inputErr.Fields)
			case errors.Is(err, predict.ErrModel), errors.Is(err, predict.ErrNoModel):
				response.Error(w, http.StatusInternalServerError, "MODEL_ERROR",
					"The model could not produce a prediction", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		if !out.Persisted() {
			response.Error(w, http.StatusServiceUnavailable, "DATABASE_ERROR",
				"The prediction could not be saved", toPredictionResponse(d, out.Record))
			return
		}

		response.Created(w, toPredictionResponse(d, out.Record))
	}
}

// NewListPredictionsHandler returns an http.HandlerFunc for
// GET /api/v1/predictions/{disease}.
func NewListPredictionsHandler(svc Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := diseaseParam(r)
		if !ok {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Unknown disease", nil)
			return
		}

		limit := store.DefaultRecentLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"limit must be a positive integer", nil)
				return
			}
			limit = store.ClampLimit(n)
		}

		recs, err := svc.Recent(r.Context(), d, limit)
		if err != nil {
			response.Error(w, http.StatusServiceUnavailable, "DATABASE_ERROR",
				"Predictions could not be fetched", nil)
			return
		}

		out := make([]predictionResponse, 0, len(recs))
		for _, rec := range recs {
			out = append(out, toPredictionResponse(d, rec))
		}
		response.Collection(w, out, response.ListMeta{Count: len(out), Limit: limit})
	}
}

// stringifyInputs turns JSON numbers and strings into the raw text the
// form path parses. Other JSON types are rejected per key.
func stringifyInputs(in map[string]any) (map[string]string, map[string]string) {
	out := make(map[string]string, len(in))
	bad := map[string]string{}
	for k, v := range in {
		switch x := v.(type) {
		case float64:
			out[k] = strconv.FormatFloat(x, 'g', -1, 64)
		case string:
			out[k] = x
		default:
			bad[k] = "must be a number"
		}
	}
	return out, bad
}
