package scorehandlers

import "net/http"

// Handlers is the HTTP surface of the score module.
type Handlers interface {
	HandleGetScores(w http.ResponseWriter, r *http.Request)
	HandleSubmitScore(w http.ResponseWriter, r *http.Request)
	HandleHealth(w http.ResponseWriter, r *http.Request)
}
