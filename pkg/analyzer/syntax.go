package analyzer

import (
	"regexp"
	"strings"
)

// SyntaxStatus is the validator verdict.
type SyntaxStatus string

const (
	SyntaxValid SyntaxStatus = "valid"
	SyntaxError SyntaxStatus = "error"
)

var (
	// Two consecutive block openers with no closer between them.
	reDoubleOpen = regexp.MustCompile(`\{\s*\{`)
	// An assignment opener that never closes before end of text.
	reDanglingAssign = regexp.MustCompile(`=\s*\{[^}]*\z`)
)

// ValidateSyntax flags gross structural malformation. It is a shape check,
// not a grammar parser: it misses real syntax errors and can flag legitimate
// constructs that happen to match these shapes.
func ValidateSyntax(content string) SyntaxStatus {
	if reDoubleOpen.MatchString(content) {
		return SyntaxError
	}
	if reDanglingAssign.MatchString(content) {
		return SyntaxError
	}
	// A quote opened but never closed before end of text.
	if strings.Count(content, `"`)%2 != 0 {
		return SyntaxError
	}
	return SyntaxValid
}
