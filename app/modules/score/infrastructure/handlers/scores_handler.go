package scorehandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	scoreservice "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/application"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/observability/attr"
)

// Client facing error messages.
const (
	msgInvalidLimit  = "invalid limit"
	msgInvalidJSON   = "invalid json"
	msgInternalError = "internal server error"
)

// HandleGetScores serves GET /api/scores?limit=N.
func (h *ScoreHandlers) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleGetScores")
	defer span.End()

	limit := h.cfg.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidLimit)
			return
		}
		limit = n
	}

	result, err := h.service.GetTopScores(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load top scores",
			attr.ExtractCorrelationID(ctx),
			attr.Int("limit", limit),
			attr.Error(err),
		)
		span.RecordError(err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if result.IsFailure() {
		writeError(w, statusFor(*result.Failure), (*result.Failure).Error())
		return
	}

	writeJSON(w, http.StatusOK, *result.Success)
}

// HandleSubmitScore serves POST /api/scores.
func (h *ScoreHandlers) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleSubmitScore")
	defer span.End()

	payload, err := decodeObject(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		h.metrics.RecordSubmissionRejected(ctx, "invalid_json")
		h.logger.DebugContext(ctx, "Rejected score submission body",
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	clientID := ClientID(r)
	req := scoreservice.SubmitScoreRequest{
		Name:  payload["name"],
		Score: payload["score"],
		Ts:    payload["ts"],
	}

	result, err := h.service.SubmitScore(ctx, clientID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to store score",
			attr.ExtractCorrelationID(ctx),
			attr.String("client_id", clientID),
			attr.Error(err),
		)
		span.RecordError(err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if result.IsFailure() {
		writeError(w, statusFor(*result.Failure), (*result.Failure).Error())
		return
	}

	writeJSON(w, http.StatusCreated, *result.Success)
}

// HandleHealth serves GET /health.
func (h *ScoreHandlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeObject parses body as a single JSON object, keeping numbers as
// json.Number. A literal null is treated as an empty object.
func decodeObject(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}

	switch obj := v.(type) {
	case map[string]any:
		return obj, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, errors.New("body is not a JSON object")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, scoreservice.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, scoreservice.ErrInvalidLimit):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
