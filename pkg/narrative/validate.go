package narrative

// Placeholder values substituted for missing report fields.
const (
	PlaceholderSummary = "Analysis completed. Review the findings below."

	PlaceholderDiagram = `graph TD
    A[Client] --> B[Load Balancer]
    B --> C[Application]
    C --> D[(Database)]`
)

// Validate normalizes a collaborator report in place and returns it. Scores
// are clamped to [0,100] rather than rejected, nil sequences become empty,
// and missing diagram/summary fields receive fixed placeholders. Favoring
// defaulting over hard failure is deliberate for this path: the
// collaborator's output is inherently variable content.
func Validate(r *Result) *Result {
	if r == nil {
		r = &Result{}
	}

	r.OverallScore = clampScore(r.OverallScore)
	r.SecurityScore = clampScore(r.SecurityScore)
	r.CostScore = clampScore(r.CostScore)
	r.PerformanceScore = clampScore(r.PerformanceScore)

	if r.CriticalIssues == nil {
		r.CriticalIssues = []Issue{}
	}
	if r.Warnings == nil {
		r.Warnings = []Issue{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}

	if r.EstimatedSavings < 0 {
		r.EstimatedSavings = 0
	}
	if r.DiagramText == "" {
		r.DiagramText = PlaceholderDiagram
	}
	if r.Summary == "" {
		r.Summary = PlaceholderSummary
	}

	return r
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
