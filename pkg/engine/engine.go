// Package engine wires the analysis pipeline, the scoring collaborator, and
// session storage into one runtime core.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/stackstage/stackstage/pkg/analyzer"
	"github.com/stackstage/stackstage/pkg/config"
	"github.com/stackstage/stackstage/pkg/narrative"
	"github.com/stackstage/stackstage/pkg/storage"
	"github.com/stackstage/stackstage/pkg/telemetry"
	"github.com/stackstage/stackstage/pkg/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Config holds engine settings.
type Config struct {
	Mode     string
	Provider string
	Region   string

	NarrativeURL string
	ExecutorURL  string
	Timeout      time.Duration

	SettleDelay time.Duration
	SessionDir  string

	JSONLogs bool
	Verbose  bool

	// Telemetry config.
	OtelEndpoint  string
	SkipTelemetry bool

	// Dependencies.
	Logger *slog.Logger
}

// Engine is the runtime core.
type Engine struct {
	Logger *slog.Logger
	Tracer trace.Tracer

	// External collaborators, injected explicitly; there is no ambient
	// singleton accessor.
	Scorer narrative.Scorer
	Store  storage.BlobStore

	config Config
}

// Result is one completed analysis: the deterministic snapshot plus the
// validated collaborator report, keyed by an opaque identifier.
type Result struct {
	ID       string            `json:"analysisId"`
	Snapshot analyzer.Snapshot `json:"snapshot"`
	Report   *narrative.Result `json:"report"`
}

// Option defines a functional configuration override.
type Option func(*Engine)

// New initializes the Engine.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: redactSensitiveData,
	})
	e := &Engine{
		Logger: slog.New(handler),
		Tracer: otel.Tracer("stackstage/engine"),
		config: Config{
			Mode:        config.DefaultMode,
			Provider:    config.DefaultProvider,
			Region:      config.DefaultRegion,
			SettleDelay: config.DefaultAnalyzerConfig().SettleDelay,
			SessionDir:  config.DefaultAnalyzerConfig().SessionDir,
			Timeout:     config.DefaultEndpointConfig().Timeout,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	if !e.config.SkipTelemetry {
		if _, err := telemetry.Init(ctx, version.AppName, version.Current, e.config.OtelEndpoint); err != nil {
			e.Logger.Warn("Telemetry init failed", "error", err)
		}
	}

	if e.Store == nil {
		e.Store = storage.NewLocalStore(e.config.SessionDir)
	}
	if e.Scorer == nil {
		if e.config.NarrativeURL != "" {
			e.Scorer = narrative.NewClient(e.config.NarrativeURL, e.config.Timeout)
		} else {
			e.Logger.Info("No collaborator endpoint configured, using offline scorer")
			e.Scorer = narrative.NewLocalScorer()
		}
	}

	return e, nil
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.Logger = l
	}
}

// WithConfig sets raw config.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		base := e.config
		if cfg.Mode == "" {
			cfg.Mode = base.Mode
		}
		if cfg.Provider == "" {
			cfg.Provider = base.Provider
		}
		if cfg.Region == "" {
			cfg.Region = base.Region
		}
		if cfg.SettleDelay <= 0 {
			cfg.SettleDelay = base.SettleDelay
		}
		if cfg.SessionDir == "" {
			cfg.SessionDir = base.SessionDir
		}
		if cfg.Timeout <= 0 {
			cfg.Timeout = base.Timeout
		}
		e.config = cfg
		if cfg.Logger != nil {
			e.Logger = cfg.Logger
		}
	}
}

// WithScorer injects the scoring collaborator instance.
func WithScorer(s narrative.Scorer) Option {
	return func(e *Engine) {
		e.Scorer = s
	}
}

// WithStore injects the session blob store.
func WithStore(s storage.BlobStore) Option {
	return func(e *Engine) {
		e.Store = s
	}
}

// Analyze runs the full pipeline over the given inputs: normalize, compute
// the snapshot, obtain the collaborator report, validate it, and write the
// session hand-off. A collaborator failure aborts the analysis; nothing
// partial is stored and nothing is retried.
func (e *Engine) Analyze(ctx context.Context, freeText string, sources []analyzer.Source) (*Result, error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Analyze", trace.WithAttributes(
		attribute.String("analysis.mode", e.config.Mode),
		attribute.String("analysis.provider", e.config.Provider),
		attribute.Int("analysis.sources", len(sources)),
	))
	defer span.End()

	content := analyzer.Normalize(freeText, sources)
	snapshot := analyzer.Compute(content)
	span.SetAttributes(
		attribute.Int("analysis.resources", snapshot.ResourceCount),
		attribute.Int("analysis.issues", snapshot.IssueCount),
	)

	report, err := e.Scorer.Analyze(ctx, narrative.Request{
		Content:       content,
		AnalysisMode:  e.config.Mode,
		CloudProvider: e.config.Provider,
		UserRegion:    e.config.Region,
	})
	if err != nil {
		span.RecordError(err)
		e.Logger.Error("Scoring collaborator failed", "error", err)
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}
	report = narrative.Validate(report)

	result := &Result{
		ID:       uuid.NewString(),
		Snapshot: snapshot,
		Report:   report,
	}

	if err := storage.SaveSession(ctx, e.Store, result.ID, result); err != nil {
		// Hand-off failure is logged but does not invalidate the analysis.
		e.Logger.Warn("Failed to write session hand-off", "error", err)
	}

	e.Logger.Info("Analysis complete",
		"analysis_id", result.ID,
		"resources", snapshot.ResourceCount,
		"issues", snapshot.IssueCount,
		"cost", snapshot.CostLabel,
		"syntax", snapshot.SyntaxStatus,
	)
	return result, nil
}

// NewAggregator builds a live-recomputation aggregator using the configured
// settle delay.
func (e *Engine) NewAggregator(publish func(analyzer.Snapshot)) *analyzer.Aggregator {
	return analyzer.NewAggregator(e.config.SettleDelay, publish, e.Logger)
}

// redactSensitiveData scrubs sensitive keys from logs.
func redactSensitiveData(groups []string, a slog.Attr) slog.Attr {
	sensitiveKeys := map[string]bool{
		"password": true, "access_key": true, "token": true, "secret": true,
		"api_key": true, "private_key": true, "credential": true,
	}
	if sensitiveKeys[a.Key] {
		return slog.Attr{Key: a.Key, Value: slog.StringValue("[REDACTED]")}
	}
	return a
}
