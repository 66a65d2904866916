package remediation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ApplyRequest is the payload sent to the execution endpoint for one fix.
type ApplyRequest struct {
	FixID       string `json:"fixId"`
	FixType     string `json:"fixType"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// ChangeSet describes what the executor changed.
type ChangeSet struct {
	Before string   `json:"before"`
	After  string   `json:"after"`
	Diff   []string `json:"diff"`
}

// ApplyDetails is the success payload of an apply call.
type ApplyDetails struct {
	ChangeID              string    `json:"changeId"`
	Type                  string    `json:"type"`
	Changes               ChangeSet `json:"changes"`
	InfrastructureChanges []string  `json:"infrastructureChanges"`
	ValidationSteps       []string  `json:"validationSteps"`
	EstimatedBenefits     string    `json:"estimatedBenefits"`
}

// ApplyResponse is the executor's reply to an apply call.
type ApplyResponse struct {
	Success     bool          `json:"success"`
	Details     *ApplyDetails `json:"details,omitempty"`
	Error       string        `json:"error,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// RollbackRequest reverts a previously applied fix.
type RollbackRequest struct {
	FixID  string `json:"fixId"`
	Reason string `json:"reason"`
}

// RollbackResponse is the executor's reply to a rollback call.
type RollbackResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Executor performs fix operations against the execution endpoint.
type Executor interface {
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResponse, error)
	Rollback(ctx context.Context, req RollbackRequest) (*RollbackResponse, error)
}

// HTTPExecutor is the production Executor speaking JSON over HTTP.
type HTTPExecutor struct {
	baseURL string
	client  *http.Client
}

// NewHTTPExecutor creates an executor client for the given base URL.
func NewHTTPExecutor(baseURL string, timeout time.Duration) *HTTPExecutor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPExecutor{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (e *HTTPExecutor) Apply(ctx context.Context, req ApplyRequest) (*ApplyResponse, error) {
	var resp ApplyResponse
	if err := e.post(ctx, "/api/fixes/apply", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (e *HTTPExecutor) Rollback(ctx context.Context, req RollbackRequest) (*RollbackResponse, error) {
	var resp RollbackResponse
	if err := e.post(ctx, "/api/fixes/rollback", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (e *HTTPExecutor) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("executor request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read executor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("executor error (status %d): %s", resp.StatusCode, string(respBytes))
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("failed to decode executor response: %w", err)
	}
	return nil
}
