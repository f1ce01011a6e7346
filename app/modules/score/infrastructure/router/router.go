package scorerouter

import (
	scorehandlers "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

const (
	// HealthPath is the liveness endpoint.
	HealthPath = "/health"
	// ScoresPath is the score collection resource.
	ScoresPath = "/api/scores"
)

// Router registers the score module's HTTP routes.
type Router struct {
	handlers scorehandlers.Handlers
	limiter  *scorehandlers.IPRateLimiter
}

// NewRouter creates a new score router. A nil limiter leaves /api unthrottled.
func NewRouter(handlers scorehandlers.Handlers, limiter *scorehandlers.IPRateLimiter) *Router {
	return &Router{
		handlers: handlers,
		limiter:  limiter,
	}
}

// Register mounts the score routes on r.
func (rt *Router) Register(r chi.Router) {
	r.Get(HealthPath, rt.handlers.HandleHealth)

	r.Group(func(r chi.Router) {
		if rt.limiter != nil {
			r.Use(scorehandlers.RateLimitMiddleware(rt.limiter))
		}
		r.Get(ScoresPath, rt.handlers.HandleGetScores)
		r.Post(ScoresPath, rt.handlers.HandleSubmitScore)
	})
}
