package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/healthassist/internal/api/handler"
	mw "github.com/kiranshivaraju/healthassist/internal/api/middleware"
	"github.com/kiranshivaraju/healthassist/internal/api/response"
)

const apiPrefix = "/api/v1"

// Dependencies holds all handler and middleware dependencies for the router.
// RateLimit is nil when no Redis is configured.
type Dependencies struct {
	RateLimit *mw.RateLimit
	Pages     *handler.Pages

	HealthHandler           http.HandlerFunc
	ListDiseasesHandler     http.HandlerFunc
	CreatePredictionHandler http.HandlerFunc
	ListPredictionsHandler  http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	var pageErr mw.PageError
	if deps.Pages != nil {
		pageErr = deps.Pages.Error
	}

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.NewRecovery(pageErr))

	limit := func(next http.Handler) http.Handler { return next }
	if deps.RateLimit != nil {
		limit = deps.RateLimit.WithPageError(pageErr).Limit
	}

	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/health", orNotImplemented(deps.HealthHandler))
		r.Get("/diseases", orNotImplemented(deps.ListDiseasesHandler))

		r.Get("/predictions/{disease}", orNotImplemented(deps.ListPredictionsHandler))
		r.With(limit).Post("/predictions/{disease}", orNotImplemented(deps.CreatePredictionHandler))
	})

	if deps.Pages != nil {
		r.Get("/", deps.Pages.Home)
		r.Get("/records", deps.Pages.Records)
		r.Get("/{disease}", deps.Pages.Form)
		r.With(limit).Post("/{disease}", deps.Pages.Submit)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if deps.Pages == nil || mw.IsAPI(req) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
			return
		}
		deps.Pages.NotFound(w, req)
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
