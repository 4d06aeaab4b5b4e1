package handler

import (
	"errors"
	"net/http"

	"github.com/kiranshivaraju/healthassist/internal/disease"
	"github.com/kiranshivaraju/healthassist/internal/predict"
	"github.com/kiranshivaraju/healthassist/internal/web"
)

// Pages serves the browser-facing forms and the records view.
type Pages struct {
	svc      Predictor
	renderer *web.Renderer
}

// NewPages creates the HTML handlers.
func NewPages(svc Predictor, renderer *web.Renderer) *Pages {
	return &Pages{svc: svc, renderer: renderer}
}

// Home handles GET / by sending the user to the first disease page.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+disease.All()[0].Slug, http.StatusFound)
}

// Form handles GET /{disease}.
func (p *Pages) Form(w http.ResponseWriter, r *http.Request) {
	d, ok := diseaseParam(r)
	if !ok {
		p.NotFound(w, r)
		return
	}

	view := web.FormView{
		Page:        web.NewPage(d.Title, disease.All(), "/"+d.Slug),
		Disease:     d,
		Values:      map[string]string{},
		FieldErrors: map[string]string{},
	}
	if err := p.svc.Prepare(r.Context(), d); err != nil {
		view.SetupError = err.Error()
	}
	p.renderer.Render(w, http.StatusOK, web.PageForm, view)
}

// Submit handles POST /{disease}.
func (p *Pages) Submit(w http.ResponseWriter, r *http.Request) {
	d, ok := diseaseParam(r)
	if !ok {
		p.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		p.renderError(w, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}

	values := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		values[f.Column] = r.PostForm.Get(f.Column)
	}

	view := web.FormView{
		Page:        web.NewPage(d.Title, disease.All(), "/"+d.Slug),
		Disease:     d,
		Values:      values,
		FieldErrors: map[string]string{},
	}
	if err := p.svc.Prepare(r.Context(), d); err != nil {
		view.SetupError = err.Error()
	}

	out, err := p.svc.Submit(r.Context(), d, values)
	if err != nil {
		var inputErr *disease.InputError
		switch {
		case errors.As(err, &inputErr):
			view.FieldErrors = inputErr.Fields
			view.Error = "Please enter a number in every field."
			p.renderer.Render(w, http.StatusUnprocessableEntity, web.PageForm, view)
		case errors.Is(err, predict.ErrModel), errors.Is(err, predict.ErrNoModel):
			view.Error = "The model could not produce a prediction: " + err.Error()
			p.renderer.Render(w, http.StatusInternalServerError, web.PageForm, view)
		default:
			view.Error = "An unexpected error occurred."
			p.renderer.Render(w, http.StatusInternalServerError, web.PageForm, view)
		}
		return
	}

	view.Record = out.Record
	if out.Persisted() {
		view.SavedTo = d.Table
	} else if out.PersistErr != nil {
		view.PersistError = out.PersistErr.Error()
	}
	p.renderer.Render(w, http.StatusOK, web.PageForm, view)
}

// Records handles GET /records. Every request re-fetches all sections.
func (p *Pages) Records(w http.ResponseWriter, r *http.Request) {
	diseases := disease.All()
	p.renderer.Render(w, http.StatusOK, web.PageRecords, web.RecordsView{
		Page:     web.NewPage("View Data", diseases, web.RecordsPath),
		Sections: p.svc.Overview(r.Context(), diseases),
	})
}

// NotFound renders the HTML 404 page.
func (p *Pages) NotFound(w http.ResponseWriter, _ *http.Request) {
	p.renderError(w, http.StatusNotFound, "Page not found", "There is no such page. Pick one from the menu.")
}

// Error renders a full error page. Its signature matches
// middleware.PageError so middleware can answer browser routes in HTML.
func (p *Pages) Error(w http.ResponseWriter, _ *http.Request, status int, title, message string) {
	p.renderError(w, status, title, message)
}

func (p *Pages) renderError(w http.ResponseWriter, status int, title, msg string) {
	p.renderer.Render(w, status, web.PageError, web.ErrorView{
		Page:    web.NewPage(title, disease.All(), ""),
		Message: msg,
	})
}
