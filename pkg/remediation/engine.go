package remediation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// State machine violations.
var (
	ErrUnknownFix  = errors.New("unknown fix id")
	ErrNotProposed = errors.New("fix is not in the proposed state")
	ErrNotApplied  = errors.New("fix is not in the applied state")
)

// OpError carries the executor's failure payload for a recoverable failure.
// The record's prior state is preserved and the operation may be retried.
type OpError struct {
	Reason      string
	Suggestions []string
}

func (e *OpError) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s (suggestions: %s)", e.Reason, strings.Join(e.Suggestions, "; "))
}

// Engine owns the session's fix records and drives their state machine.
// Records are held in an indexed slice with an id lookup; apply and rollback
// are the only mutating operations. A pending set keyed by id serializes
// operations per fix: a second call for an id already in flight is a no-op
// with no network call, while different ids proceed concurrently.
type Engine struct {
	executor Executor
	logger   *slog.Logger
	tracer   trace.Tracer

	mu      sync.Mutex
	records []FixRecord
	index   map[string]int
	pending map[string]struct{}
}

// NewEngine creates an engine over the given catalog records.
func NewEngine(executor Executor, records []FixRecord, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	owned := make([]FixRecord, len(records))
	copy(owned, records)

	index := make(map[string]int, len(owned))
	for i := range owned {
		index[owned[i].ID] = i
	}

	return &Engine{
		executor: executor,
		logger:   logger,
		tracer:   otel.Tracer("stackstage/remediation"),
		records:  owned,
		index:    index,
		pending:  make(map[string]struct{}),
	}
}

// Records returns a copy of all fix records in catalog order.
func (e *Engine) Records() []FixRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]FixRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Get returns a copy of the record with the given id.
func (e *Engine) Get(id string) (FixRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return FixRecord{}, false
	}
	return e.records[i], true
}

// Apply transitions a proposed fix to applied via the execution endpoint.
// On executor failure the record stays proposed and an *OpError is returned.
// If an operation for the same id is already in flight, Apply returns nil
// without issuing a second request.
func (e *Engine) Apply(ctx context.Context, id string) error {
	ctx, span := e.tracer.Start(ctx, "Fix.Apply", trace.WithAttributes(attribute.String("fix.id", id)))
	defer span.End()

	e.mu.Lock()
	i, ok := e.index[id]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownFix, id)
	}
	rec := e.records[i]
	if rec.Status != StatusProposed {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrNotProposed, id, rec.Status)
	}
	if _, inFlight := e.pending[id]; inFlight {
		e.mu.Unlock()
		e.logger.Debug("Apply already in flight, ignoring", "fix", id)
		return nil
	}
	e.pending[id] = struct{}{}
	e.mu.Unlock()

	resp, err := e.executor.Apply(ctx, ApplyRequest{
		FixID:       rec.ID,
		FixType:     rec.Category,
		Code:        rec.ProposedCode,
		Description: rec.Description,
		Impact:      rec.Impact,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, id)

	if err != nil {
		e.logger.Error("Apply transport failure", "fix", id, "error", err)
		return err
	}
	if !resp.Success {
		e.logger.Warn("Apply rejected by executor", "fix", id, "error", resp.Error)
		return &OpError{Reason: resp.Error, Suggestions: resp.Suggestions}
	}

	r := &e.records[i]
	r.Status = StatusApplied
	if resp.Details != nil {
		r.ChangeID = resp.Details.ChangeID
		r.AppliedDiff = resp.Details.Changes.Diff
		if len(r.AppliedDiff) == 0 {
			r.AppliedDiff = deriveDiff(resp.Details.Changes.Before, resp.Details.Changes.After)
		}
		r.InfraChanges = resp.Details.InfrastructureChanges
		r.ValidationSteps = resp.Details.ValidationSteps
	}

	e.logger.Info("Fix applied", "fix", id, "change_id", r.ChangeID)
	return nil
}

// Rollback transitions an applied fix back to proposed via the execution
// endpoint, clearing the diff and validation metadata. On executor failure
// the record stays applied. Same-id in-flight calls are a no-op.
func (e *Engine) Rollback(ctx context.Context, id, reason string) error {
	ctx, span := e.tracer.Start(ctx, "Fix.Rollback", trace.WithAttributes(attribute.String("fix.id", id)))
	defer span.End()

	e.mu.Lock()
	i, ok := e.index[id]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownFix, id)
	}
	if e.records[i].Status != StatusApplied {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrNotApplied, id, e.records[i].Status)
	}
	if _, inFlight := e.pending[id]; inFlight {
		e.mu.Unlock()
		e.logger.Debug("Rollback already in flight, ignoring", "fix", id)
		return nil
	}
	e.pending[id] = struct{}{}
	e.mu.Unlock()

	resp, err := e.executor.Rollback(ctx, RollbackRequest{FixID: id, Reason: reason})

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, id)

	if err != nil {
		e.logger.Error("Rollback transport failure", "fix", id, "error", err)
		return err
	}
	if !resp.Success {
		e.logger.Warn("Rollback rejected by executor", "fix", id, "error", resp.Error)
		return &OpError{Reason: resp.Error}
	}

	r := &e.records[i]
	r.Status = StatusProposed
	r.AppliedDiff = nil
	r.InfraChanges = nil
	r.ValidationSteps = nil

	e.logger.Info("Fix rolled back", "fix", id, "reason", reason)
	return nil
}

// deriveDiff builds line-oriented diff entries when the executor reports
// before/after content without an explicit diff.
func deriveDiff(before, after string) []string {
	if before == "" && after == "" {
		return nil
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var out []string
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.Split(strings.TrimRight(d.Text, "\n"), "\n") {
			out = append(out, prefix+line)
		}
	}
	return out
}
