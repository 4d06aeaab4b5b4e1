package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/healthassist/internal/api/handler"
	"github.com/kiranshivaraju/healthassist/internal/disease"
	clfmock "github.com/kiranshivaraju/healthassist/internal/inference/mock"
	"github.com/kiranshivaraju/healthassist/internal/predict"
	storemock "github.com/kiranshivaraju/healthassist/internal/store/mock"
	"github.com/kiranshivaraju/healthassist/internal/web"
	"github.com/kiranshivaraju/healthassist/pkg/models"
	"github.com/stretchr/testify/require"
)

// ─── fixtures ────────────────────────────────────────────────────────────────

type fixture struct {
	store  *storemock.MockStore
	clfs   map[string]*clfmock.MockClassifier
	router http.Handler
}

func newFixture(t *testing.T, class int) *fixture {
	t.Helper()

	f := &fixture{
		store: storemock.NewMockStore(),
		clfs: map[string]*clfmock.MockClassifier{
			disease.SlugDiabetes:     clfmock.NewFixedClassifier(class),
			disease.SlugHeartDisease: clfmock.NewFixedClassifier(class),
			disease.SlugParkinsons:   clfmock.NewFixedClassifier(class),
		},
	}
	classifiers := map[string]models.Classifier{}
	for slug, c := range f.clfs {
		classifiers[slug] = c
	}
	svc := predict.NewService(f.store, classifiers)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	pages := handler.NewPages(svc, renderer)

	r := chi.NewRouter()
	r.Get("/", pages.Home)
	r.Get("/records", pages.Records)
	r.Get("/{disease}", pages.Form)
	r.Post("/{disease}", pages.Submit)
	r.Get("/api/v1/diseases", handler.NewListDiseasesHandler())
	r.Get("/api/v1/predictions/{disease}", handler.NewListPredictionsHandler(svc))
	r.Post("/api/v1/predictions/{disease}", handler.NewCreatePredictionHandler(svc))
	f.router = r
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func diabetesForm() url.Values {
	return url.Values{
		"pregnancies":                {"2"},
		"glucose":                    {"120"},
		"blood_pressure":             {"70"},
		"skin_thickness":             {"30"},
		"insulin":                    {"80"},
		"bmi":                        {"25.5"},
		"diabetes_pedigree_function": {"0.5"},
		"age":                        {"33"},
	}
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
