package narrative

import (
	"context"
	"fmt"

	"github.com/stackstage/stackstage/pkg/analyzer"
)

// LocalScorer is the offline fallback used when no collaborator endpoint is
// configured. It derives scores from the deterministic analysis pipeline, so
// identical content always produces an identical report. The numbers are a
// heuristic, not an assessment of real infrastructure.
type LocalScorer struct{}

// NewLocalScorer returns the offline scorer.
func NewLocalScorer() *LocalScorer {
	return &LocalScorer{}
}

// Analyze produces a report from local pattern analysis alone.
func (s *LocalScorer) Analyze(_ context.Context, req Request) (*Result, error) {
	snap := analyzer.Compute(req.Content)
	breakdown := analyzer.IssueBreakdown(req.Content)

	security := 92 - 9*breakdown[analyzer.CategorySecurity] - 5*breakdown[analyzer.CategoryCompliance]
	cost := 95 - 6*analyzer.BaseCost(req.Content)/10
	performance := 70 + 2*min(snap.ResourceCount, 12)
	if snap.SyntaxStatus == analyzer.SyntaxError {
		performance -= 20
	}
	overall := (security*2 + cost + performance) / 4

	result := &Result{
		OverallScore:     overall,
		SecurityScore:    security,
		CostScore:        cost,
		PerformanceScore: performance,
		EstimatedSavings: float64(analyzer.BaseCost(req.Content)) * 12.5,
		Summary: fmt.Sprintf("Offline analysis of %d resource declarations found %d potential issues (mode: %s).",
			snap.ResourceCount, snap.IssueCount, req.AnalysisMode),
	}

	if n := breakdown[analyzer.CategorySecurity]; n > 0 {
		result.CriticalIssues = append(result.CriticalIssues, Issue{
			Title:    "Open network or public access configuration",
			Detail:   fmt.Sprintf("%d security pattern matches detected in the provided configuration.", n),
			Severity: "high",
		})
		result.Recommendations = append(result.Recommendations, Recommendation{
			Title:  "Restrict network exposure",
			Detail: "Replace open CIDR ranges and public-access flags with scoped values.",
			Impact: "security",
		})
	}
	if n := breakdown[analyzer.CategoryCompliance]; n > 0 {
		result.Warnings = append(result.Warnings, Issue{
			Title:    "Compliance configuration gaps",
			Detail:   fmt.Sprintf("%d compliance pattern matches detected (encryption or lifecycle flags).", n),
			Severity: "medium",
		})
		result.Recommendations = append(result.Recommendations, Recommendation{
			Title:  "Enable encryption and deletion protection",
			Detail: "Turn on at-rest encryption and protective lifecycle settings for stateful resources.",
			Impact: "compliance",
		})
	}
	if snap.SyntaxStatus == analyzer.SyntaxError {
		result.Warnings = append(result.Warnings, Issue{
			Title:    "Possible structural malformation",
			Detail:   "Unbalanced braces or quotes detected; review the configuration before applying.",
			Severity: "low",
		})
	}

	// Clamping and placeholder defaults happen in one place for every scorer.
	return Validate(result), nil
}
