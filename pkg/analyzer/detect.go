package analyzer

import "regexp"

// countMatches returns the number of non-overlapping matches of re in content.
func countMatches(re *regexp.Regexp, content string) int {
	return len(re.FindAllStringIndex(content, -1))
}

// CountResources sums non-overlapping matches across every dialect pattern.
// All dialects are scanned unconditionally and there is no de-duplication
// across overlapping pattern families.
func CountResources(content string) int {
	total := 0
	for _, row := range dialectCatalog {
		total += countMatches(row.Pattern, content)
	}
	return total
}

// CountIssues sums matches across both issue categories. The same matched
// text may be counted by more than one row.
func CountIssues(content string) int {
	total := 0
	for _, row := range issueCatalog {
		total += countMatches(row.Pattern, content)
	}
	return total
}

// IssueBreakdown returns per-category match counts.
func IssueBreakdown(content string) map[IssueCategory]int {
	out := map[IssueCategory]int{
		CategorySecurity:   0,
		CategoryCompliance: 0,
	}
	for _, row := range issueCatalog {
		out[row.Category] += countMatches(row.Pattern, content)
	}
	return out
}
