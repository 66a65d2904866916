// Package narrative defines the contract with the external scoring
// collaborator: the request shape, the structured report it returns, and
// the validation the core applies to that report.
package narrative

import "context"

// Analysis modes accepted by the collaborator.
const (
	ModeBasic         = "basic"
	ModeComprehensive = "comprehensive"
	ModeSecurity      = "security"
	ModeCost          = "cost"
	ModePerformance   = "performance"
)

// Request is the single stateless exchange sent to the collaborator.
type Request struct {
	Content       string `json:"content"`
	AnalysisMode  string `json:"analysisMode"`
	CloudProvider string `json:"cloudProvider,omitempty"`
	UserRegion    string `json:"userRegion,omitempty"`
}

// Issue is one structured finding in the report.
type Issue struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
}

// Recommendation is one structured improvement suggestion.
type Recommendation struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Impact string `json:"impact"`
}

// Result is the scored report. The core validates its shape only; it never
// inspects or recomputes the content of these fields.
type Result struct {
	OverallScore     int              `json:"overallScore"`
	SecurityScore    int              `json:"securityScore"`
	CostScore        int              `json:"costScore"`
	PerformanceScore int              `json:"performanceScore"`
	CriticalIssues   []Issue          `json:"criticalIssues"`
	Warnings         []Issue          `json:"warnings"`
	Recommendations  []Recommendation `json:"recommendations"`
	EstimatedSavings float64          `json:"estimatedSavings"`
	DiagramText      string           `json:"diagramText"`
	Summary          string           `json:"summary"`
}

// Scorer produces a report for normalized content. Implementations are the
// HTTP collaborator client and the offline fallback scorer.
type Scorer interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}
