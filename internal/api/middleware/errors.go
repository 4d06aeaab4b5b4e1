package middleware

import (
	"net/http"
	"strings"

	"github.com/kiranshivaraju/healthassist/internal/api/response"
)

// APIPrefix marks the JSON routes. Everything else is a browser page.
const APIPrefix = "/api/"

// PageError renders a full HTML error page for browser routes.
type PageError func(w http.ResponseWriter, r *http.Request, status int, title, message string)

// IsAPI reports whether r targets the JSON API.
func IsAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, APIPrefix)
}

// writeError answers with the JSON envelope on API routes and with page on
// browser routes. A nil page always yields JSON.
func writeError(w http.ResponseWriter, r *http.Request, page PageError, status int, code, title, message string) {
	if page != nil && !IsAPI(r) {
		page(w, r, status, title, message)
		return
	}
	response.Error(w, status, code, message, nil)
}
