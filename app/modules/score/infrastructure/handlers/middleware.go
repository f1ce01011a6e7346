package scorehandlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/snake-scoreboard/internal/observability/attr"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the correlation id in and out of the service.
const RequestIDHeader = "X-Request-ID"

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle client entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
	// maxRequestIDLength bounds client supplied correlation ids.
	maxRequestIDLength = 64
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a per-client token bucket that prunes stale entries inline.
type IPRateLimiter struct {
	clients map[string]*clientEntry
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*clientEntry),
		r:       r,
		b:       b,
	}
}

// GetLimiter returns the rate.Limiter for the given client, pruning stale
// entries when the map exceeds cleanupThreshold.
func (i *IPRateLimiter) GetLimiter(client string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.clients) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range i.clients {
			if e.lastSeen.Before(cutoff) {
				delete(i.clients, k)
			}
		}
	}

	e, exists := i.clients[client]
	if !exists {
		e = &clientEntry{limiter: rate.NewLimiter(i.r, i.b)}
		i.clients[client] = e
	}
	e.lastSeen = time.Now()

	return e.limiter
}

// RateLimitMiddleware returns a middleware that throttles requests per client.
func RateLimitMiddleware(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(ClientID(r)).Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CorrelationIDMiddleware attaches a correlation id to the request context,
// reusing a sane X-Request-ID from the client or generating a new one.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sanitizeRequestID(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}

// sanitizeRequestID keeps only [A-Za-z0-9_-] and bounds the length.
func sanitizeRequestID(raw string) string {
	if len(raw) > maxRequestIDLength {
		raw = raw[:maxRequestIDLength]
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			out = append(out, c)
		}
	}
	return string(out)
}
