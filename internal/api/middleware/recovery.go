package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery turns a panic in a handler into a JSON 500 and logs the stack.
func Recovery(next http.Handler) http.Handler {
	return NewRecovery(nil)(next)
}

// NewRecovery is Recovery with browser routes answered by page.
func NewRecovery(page PageError) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					reqID, _ := GetRequestID(r)
					slog.Error("panic recovered",
						"error", err,
						"request_id", reqID,
						"stack", string(debug.Stack()),
						"method", r.Method,
						"path", r.URL.Path,
					)
					writeError(w, r, page, http.StatusInternalServerError,
						"INTERNAL_ERROR", "Something went wrong", "An unexpected error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
