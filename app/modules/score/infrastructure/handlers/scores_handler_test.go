package scorehandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	scoreservice "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc *FakeService) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewScoreHandlers(svc, nil, logger, tracer, Config{DefaultLimit: 10})
}

func strPtr(s string) *string { return &s }

func TestScoreHandlers_HandleGetScores(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setup      func(*FakeService)
		wantStatus int
		wantBody   string
		wantLimits []int
	}{
		{
			name:       "default limit",
			url:        "/api/scores",
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
			wantLimits: []int{10},
		},
		{
			name: "explicit limit and entries",
			url:  "/api/scores?limit=2",
			setup: func(s *FakeService) {
				s.GetTopScoresFunc = func(context.Context, int) (results.OperationResult[[]scoredomain.ScoreEntry, error], error) {
					id := int64(1)
					return results.SuccessResult[[]scoredomain.ScoreEntry, error]([]scoredomain.ScoreEntry{
						{ID: &id, Name: strPtr("Ada"), Score: 42, Ts: "2024-01-01T00:00:00Z"},
						{Score: 3, Ts: "2024-01-02T00:00:00Z"},
					}), nil
				}
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":1,"name":"Ada","score":42,"ts":"2024-01-01T00:00:00Z"},{"name":null,"score":3,"ts":"2024-01-02T00:00:00Z"}]`,
			wantLimits: []int{2},
		},
		{
			name:       "non integer limit",
			url:        "/api/scores?limit=abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid limit"}`,
		},
		{
			name:       "fractional limit",
			url:        "/api/scores?limit=2.5",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid limit"}`,
		},
		{
			name: "non positive limit",
			url:  "/api/scores?limit=0",
			setup: func(s *FakeService) {
				s.GetTopScoresFunc = func(context.Context, int) (results.OperationResult[[]scoredomain.ScoreEntry, error], error) {
					return results.FailureResult[[]scoredomain.ScoreEntry, error](scoreservice.ErrInvalidLimit), nil
				}
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"limit must be positive"}`,
			wantLimits: []int{0},
		},
		{
			name: "storage failure",
			url:  "/api/scores",
			setup: func(s *FakeService) {
				s.GetTopScoresFunc = func(context.Context, int) (results.OperationResult[[]scoredomain.ScoreEntry, error], error) {
					return results.OperationResult[[]scoredomain.ScoreEntry, error]{}, errors.New("db down")
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
			wantLimits: []int{10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := newTestHandlers(svc)

			rr := httptest.NewRecorder()
			h.HandleGetScores(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, tt.wantLimits, svc.Limits)
		})
	}
}

func TestScoreHandlers_HandleSubmitScore(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*FakeService)
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{
			name:       "valid object",
			body:       `{"name":"Ada","score":42}`,
			wantStatus: http.StatusCreated,
			wantBody:   `{"name":null,"score":0,"ts":"2024-01-01T00:00:00Z"}`,
			wantCalls:  1,
		},
		{
			name:       "empty object",
			body:       `{}`,
			wantStatus: http.StatusCreated,
			wantCalls:  1,
		},
		{
			name:       "null body",
			body:       `null`,
			wantStatus: http.StatusCreated,
			wantCalls:  1,
		},
		{
			name:       "malformed",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid json"}`,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid json"}`,
		},
		{
			name:       "array body",
			body:       `[1,2]`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid json"}`,
		},
		{
			name:       "trailing garbage",
			body:       `{"score":1} nope`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid json"}`,
		},
		{
			name:       "oversized body",
			body:       `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid json"}`,
		},
		{
			name: "rate limited",
			body: `{"score":1}`,
			setup: func(s *FakeService) {
				s.SubmitScoreFunc = func(context.Context, string, scoreservice.SubmitScoreRequest) (results.OperationResult[*scoredomain.ScoreEntry, error], error) {
					return results.FailureResult[*scoredomain.ScoreEntry, error](scoreservice.ErrRateLimited), nil
				}
			},
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"error":"rate limit exceeded"}`,
			wantCalls:  1,
		},
		{
			name: "storage failure",
			body: `{"score":1}`,
			setup: func(s *FakeService) {
				s.SubmitScoreFunc = func(context.Context, string, scoreservice.SubmitScoreRequest) (results.OperationResult[*scoredomain.ScoreEntry, error], error) {
					return results.OperationResult[*scoredomain.ScoreEntry, error]{}, errors.New("disk full")
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			h := newTestHandlers(svc)

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(tt.body))
			h.HandleSubmitScore(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
			assert.Len(t, svc.SubmitCalls, tt.wantCalls)
		})
	}
}

func TestScoreHandlers_HandleSubmitScore_PassesRawFields(t *testing.T) {
	svc := &FakeService{}
	h := newTestHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/scores",
		strings.NewReader(`{"name":"  Ada ","score":42.5,"ts":"2024-01-01T00:00:00Z","extra":true}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rr := httptest.NewRecorder()
	h.HandleSubmitScore(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, svc.SubmitCalls, 1)
	got := svc.SubmitCalls[0]
	assert.Equal(t, "  Ada ", got.Name)
	assert.Equal(t, json.Number("42.5"), got.Score)
	assert.Equal(t, "2024-01-01T00:00:00Z", got.Ts)
	assert.Equal(t, []string{"203.0.113.9"}, svc.ClientIDs)
}

func TestScoreHandlers_HandleHealth(t *testing.T) {
	h := newTestHandlers(&FakeService{})
	rr := httptest.NewRecorder()
	h.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestClientID(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		want       string
	}{
		{name: "forwarded single", xff: "198.51.100.7", remoteAddr: "10.0.0.1:1234", want: "198.51.100.7"},
		{name: "forwarded chain", xff: " 198.51.100.7 , 10.0.0.2", remoteAddr: "10.0.0.1:1234", want: "198.51.100.7"},
		{name: "blank forwarded falls back", xff: " , 10.0.0.2", remoteAddr: "10.0.0.1:1234", want: "10.0.0.1"},
		{name: "peer address", remoteAddr: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "ipv6 peer", remoteAddr: "[2001:db8::1]:80", want: "2001:db8::1"},
		{name: "peer without port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "nothing known", remoteAddr: "", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, ClientID(req))
		})
	}
}
