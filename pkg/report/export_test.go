package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stackstage/stackstage/pkg/analyzer"
	"github.com/stackstage/stackstage/pkg/engine"
	"github.com/stackstage/stackstage/pkg/narrative"
	"github.com/stackstage/stackstage/pkg/remediation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONGolden(t *testing.T) {
	result := &engine.Result{
		ID: "a-fixed-id",
		Snapshot: analyzer.Snapshot{
			ResourceCount: 5,
			IssueCount:    3,
			CostLabel:     "$50 - $200/month",
			SyntaxStatus:  analyzer.SyntaxValid,
		},
		Report: &narrative.Result{
			OverallScore:     84,
			SecurityScore:    72,
			CostScore:        90,
			PerformanceScore: 88,
			CriticalIssues: []narrative.Issue{{
				Title:    "Open network or public access configuration",
				Detail:   "2 security pattern matches detected in the provided configuration.",
				Severity: "high",
			}},
			Warnings:         []narrative.Issue{},
			Recommendations:  []narrative.Recommendation{},
			EstimatedSavings: 1250,
			DiagramText:      "graph TD\n    A[Client] --> B[Load Balancer]",
			Summary:          "Review the findings below.",
		},
	}

	path := filepath.Join(t.TempDir(), "analysis.json")
	require.NoError(t, WriteJSON(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "analysis", data)
}

func TestWriteFixesCSV(t *testing.T) {
	records := []remediation.FixRecord{
		{ID: "sec-1", Category: "security", Severity: "high", Status: remediation.StatusApplied, ChangeID: "chg_01", Description: "restrict ingress"},
		{ID: "comp-1", Category: "compliance", Severity: "medium", Status: remediation.StatusProposed, Description: "enable encryption"},
	}

	path := filepath.Join(t.TempDir(), "fixes.csv")
	require.NoError(t, WriteFixesCSV(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "ID,Category,Severity,Status,ChangeID,Description\n" +
		"sec-1,security,high,applied,chg_01,restrict ingress\n" +
		"comp-1,compliance,medium,proposed,,enable encryption\n"
	assert.Equal(t, want, string(data))
}
