// Package observability builds the logger, tracer and metrics shared by all modules.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	scoremetrics "github.com/Black-And-White-Club/snake-scoreboard/internal/observability/metrics/score"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds the settings needed to build an Observability.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	LogLevel       string
	MetricsEnabled bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Provider holds process-wide telemetry providers.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Registry holds the per-module instruments.
type Registry struct {
	Tracer       trace.Tracer
	ScoreMetrics scoremetrics.ScoreMetrics
	// Prometheus is nil when metrics are disabled.
	Prometheus *prometheus.Registry
}

type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds an Observability from cfg.
func Init(cfg Config) (Observability, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if cfg.Environment == "development" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("version", cfg.Version),
	)

	tp := otel.GetTracerProvider()

	registry := &Registry{
		Tracer:       tp.Tracer(cfg.ServiceName),
		ScoreMetrics: scoremetrics.NewNoop(),
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := scoremetrics.NewPrometheus(reg, metricNamespace(cfg.ServiceName))
		if err != nil {
			return Observability{}, fmt.Errorf("failed to register score metrics: %w", err)
		}
		registry.ScoreMetrics = m
		registry.Prometheus = reg
	}

	return Observability{
		Provider: &Provider{Logger: logger, TracerProvider: tp},
		Registry: registry,
	}, nil
}

// NewNoop returns an Observability that discards logs, spans and metrics.
func NewNoop() Observability {
	tp := noop.NewTracerProvider()
	return Observability{
		Provider: &Provider{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			TracerProvider: tp,
		},
		Registry: &Registry{
			Tracer:       tp.Tracer("noop"),
			ScoreMetrics: scoremetrics.NewNoop(),
		},
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// metricNamespace turns a service name into a valid prometheus namespace.
func metricNamespace(name string) string {
	if name == "" {
		return "app"
	}
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
}
