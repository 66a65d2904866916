package analyzer

// Snapshot is one immutable analysis result. It is a pure function of the
// normalized content: identical content always yields an identical Snapshot.
type Snapshot struct {
	ResourceCount int          `json:"resourceCount"`
	IssueCount    int          `json:"issueCount"`
	CostLabel     string       `json:"costLabel"`
	SyntaxStatus  SyntaxStatus `json:"syntaxStatus"`
}

// Compute runs the full detection pipeline against content.
func Compute(content string) Snapshot {
	return Snapshot{
		ResourceCount: CountResources(content),
		IssueCount:    CountIssues(content),
		CostLabel:     EstimateCost(content),
		SyntaxStatus:  ValidateSyntax(content),
	}
}
