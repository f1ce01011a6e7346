package app

import (
	"log/slog"
	"net/http"
	"time"

	scorehandlers "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/handlers"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/observability"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath serves the prometheus exposition when metrics are enabled.
const MetricsPath = "/metrics"

func newRouter(obs observability.Observability) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(scorehandlers.CorrelationIDMiddleware)
	r.Use(requestLogger(obs.Provider.Logger))

	if reg := obs.Registry.Prometheus; reg != nil {
		r.Handle(MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}
	return r
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.DebugContext(r.Context(), "HTTP request",
				attr.ExtractCorrelationID(r.Context()),
				attr.String("method", r.Method),
				attr.String("path", r.URL.Path),
				attr.Int("status", ww.Status()),
				attr.Duration("duration", time.Since(start)),
			)
		})
	}
}
