package remediation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExecutor scripts apply/rollback responses and counts calls.
type stubExecutor struct {
	applyResp    *ApplyResponse
	applyErr     error
	rollbackResp *RollbackResponse
	rollbackErr  error

	applyCalls    atomic.Int64
	rollbackCalls atomic.Int64

	// gate, when set, blocks Apply until released.
	gate chan struct{}
}

func (s *stubExecutor) Apply(ctx context.Context, req ApplyRequest) (*ApplyResponse, error) {
	s.applyCalls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.applyResp, s.applyErr
}

func (s *stubExecutor) Rollback(ctx context.Context, req RollbackRequest) (*RollbackResponse, error) {
	s.rollbackCalls.Add(1)
	return s.rollbackResp, s.rollbackErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecords() []FixRecord {
	return []FixRecord{
		{ID: "sec-1", Category: "security", Severity: "high", Description: "restrict ingress", ProposedCode: "cidr_blocks = [\"10.0.0.0/8\"]", Status: StatusProposed},
		{ID: "comp-1", Category: "compliance", Severity: "medium", Description: "enable encryption", ProposedCode: "encrypted = true", Status: StatusProposed},
	}
}

func successApply() *ApplyResponse {
	return &ApplyResponse{
		Success: true,
		Details: &ApplyDetails{
			ChangeID: "chg_01",
			Type:     "security",
			Changes: ChangeSet{
				Before: "encrypt = false",
				After:  "encrypt = true",
				Diff:   []string{"+ encrypt = true"},
			},
			InfrastructureChanges: []string{"aws_db_instance.main updated"},
			ValidationSteps:       []string{"terraform plan", "terraform apply"},
		},
	}
}

func TestApplyLifecycle(t *testing.T) {
	exec := &stubExecutor{applyResp: successApply(), rollbackResp: &RollbackResponse{Success: true}}
	eng := NewEngine(exec, testRecords(), testLogger())
	ctx := context.Background()

	// 1. Apply: proposed -> applied with metadata.
	require.NoError(t, eng.Apply(ctx, "sec-1"))

	rec, ok := eng.Get("sec-1")
	require.True(t, ok)
	assert.Equal(t, StatusApplied, rec.Status)
	assert.Equal(t, "chg_01", rec.ChangeID)
	assert.Equal(t, []string{"+ encrypt = true"}, rec.AppliedDiff)
	assert.NotEmpty(t, rec.InfraChanges)
	assert.NotEmpty(t, rec.ValidationSteps)

	// 2. Rollback: applied -> proposed with metadata cleared.
	require.NoError(t, eng.Rollback(ctx, "sec-1", "user requested"))

	rec, _ = eng.Get("sec-1")
	assert.Equal(t, StatusProposed, rec.Status)
	assert.Empty(t, rec.AppliedDiff)
	assert.Empty(t, rec.InfraChanges)
	assert.Empty(t, rec.ValidationSteps)

	// 3. The cycle may repeat.
	require.NoError(t, eng.Apply(ctx, "sec-1"))
	rec, _ = eng.Get("sec-1")
	assert.Equal(t, StatusApplied, rec.Status)
}

func TestApplyFailureKeepsProposed(t *testing.T) {
	exec := &stubExecutor{applyResp: &ApplyResponse{
		Success:     false,
		Error:       "resource locked by another change",
		Suggestions: []string{"retry later", "check pending changes"},
	}}
	eng := NewEngine(exec, testRecords(), testLogger())

	err := eng.Apply(context.Background(), "sec-1")
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "resource locked by another change", opErr.Reason)
	assert.Len(t, opErr.Suggestions, 2)

	rec, _ := eng.Get("sec-1")
	assert.Equal(t, StatusProposed, rec.Status)
	assert.Empty(t, rec.AppliedDiff)

	// The operation is retryable.
	exec.applyResp = successApply()
	require.NoError(t, eng.Apply(context.Background(), "sec-1"))
}

func TestApplyTransportFailureKeepsProposed(t *testing.T) {
	exec := &stubExecutor{applyErr: errors.New("connection refused")}
	eng := NewEngine(exec, testRecords(), testLogger())

	err := eng.Apply(context.Background(), "sec-1")
	require.Error(t, err)

	rec, _ := eng.Get("sec-1")
	assert.Equal(t, StatusProposed, rec.Status)
}

func TestRollbackFailureKeepsApplied(t *testing.T) {
	exec := &stubExecutor{
		applyResp:    successApply(),
		rollbackResp: &RollbackResponse{Success: false, Error: "change already superseded"},
	}
	eng := NewEngine(exec, testRecords(), testLogger())
	ctx := context.Background()

	require.NoError(t, eng.Apply(ctx, "sec-1"))

	err := eng.Rollback(ctx, "sec-1", "user requested")
	require.Error(t, err)

	rec, _ := eng.Get("sec-1")
	assert.Equal(t, StatusApplied, rec.Status)
	assert.NotEmpty(t, rec.AppliedDiff)
}

func TestStateMachineGuards(t *testing.T) {
	exec := &stubExecutor{applyResp: successApply(), rollbackResp: &RollbackResponse{Success: true}}
	eng := NewEngine(exec, testRecords(), testLogger())
	ctx := context.Background()

	// 1. Unknown id.
	assert.ErrorIs(t, eng.Apply(ctx, "nope"), ErrUnknownFix)
	assert.ErrorIs(t, eng.Rollback(ctx, "nope", "r"), ErrUnknownFix)

	// 2. Rollback requires applied.
	assert.ErrorIs(t, eng.Rollback(ctx, "sec-1", "r"), ErrNotApplied)

	// 3. Apply requires proposed.
	require.NoError(t, eng.Apply(ctx, "sec-1"))
	assert.ErrorIs(t, eng.Apply(ctx, "sec-1"), ErrNotProposed)
}

func TestConcurrentApplySingleRequest(t *testing.T) {
	exec := &stubExecutor{applyResp: successApply(), gate: make(chan struct{})}
	eng := NewEngine(exec, testRecords(), testLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, eng.Apply(ctx, "sec-1"))
	}()

	// Wait until the first request is in flight, then issue a second.
	for exec.applyCalls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, eng.Apply(ctx, "sec-1")) // no-op, no network call

	close(exec.gate)
	wg.Wait()

	assert.Equal(t, int64(1), exec.applyCalls.Load())
	rec, _ := eng.Get("sec-1")
	assert.Equal(t, StatusApplied, rec.Status)
}

func TestConcurrentDifferentIDs(t *testing.T) {
	exec := &stubExecutor{applyResp: successApply()}
	eng := NewEngine(exec, testRecords(), testLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"sec-1", "comp-1"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, eng.Apply(ctx, id))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(2), exec.applyCalls.Load())
}

func TestDeriveDiffWhenExecutorOmitsIt(t *testing.T) {
	resp := successApply()
	resp.Details.Changes.Diff = nil
	exec := &stubExecutor{applyResp: resp}
	eng := NewEngine(exec, testRecords(), testLogger())

	require.NoError(t, eng.Apply(context.Background(), "sec-1"))

	rec, _ := eng.Get("sec-1")
	assert.Contains(t, rec.AppliedDiff, "- encrypt = false")
	assert.Contains(t, rec.AppliedDiff, "+ encrypt = true")
}

func TestRecordsReturnsCopy(t *testing.T) {
	eng := NewEngine(&stubExecutor{}, testRecords(), testLogger())

	records := eng.Records()
	require.Len(t, records, 2)
	records[0].Status = StatusApplied

	rec, _ := eng.Get(records[0].ID)
	assert.Equal(t, StatusProposed, rec.Status)
}
