package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/kiranshivaraju/healthassist/internal/cache"
)

const (
	defaultRequestsPerMinute = 30
	rateWindow               = 60 * time.Second
)

// RateLimit caps form and API submissions per client address using a
// fixed one-minute window counted in Redis.
type RateLimit struct {
	cache          cache.Cache
	requestsPerMin int
	page           PageError
}

// NewRateLimit creates a new RateLimit middleware.
func NewRateLimit(c cache.Cache, requestsPerMin int) *RateLimit {
	if requestsPerMin <= 0 {
		requestsPerMin = defaultRequestsPerMinute
	}
	return &RateLimit{cache: c, requestsPerMin: requestsPerMin}
}

// WithPageError returns a copy of rl that answers browser routes with page
// instead of the JSON envelope.
func (rl *RateLimit) WithPageError(page PageError) *RateLimit {
	cp := *rl
	cp.page = page
	return &cp
}

// Limit applies the limit to non-GET requests only; page views and
// refreshes are never throttled.
func (rl *RateLimit) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		key := cache.RateLimitKey(clientAddr(r))
		count, err := rl.cache.IncrWithExpiry(r.Context(), key, rateWindow)
		if err != nil {
			// On Redis error, allow the request (fail open)
			slog.Warn("rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		remaining := rl.requestsPerMin - int(count)
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.requestsPerMin))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(rl.requestsPerMin) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rateWindow.Seconds())))
			writeError(w, r, rl.page, http.StatusTooManyRequests,
				"RATE_LIMIT_EXCEEDED", "Too many submissions", "Too many submissions, try again in a minute")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
