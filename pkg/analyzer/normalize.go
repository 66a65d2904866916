// Package analyzer implements the deterministic, pattern-based analysis
// pipeline for infrastructure-as-code text.
package analyzer

import "strings"

// Source is one named text input, typically an uploaded file.
type Source struct {
	Label string
	Text  string
}

// Normalize merges free-form text and named sources into a single string.
// Sources appear in input order, each preceded by a delimiter line carrying
// its label. Content is passed through verbatim: no trimming, no re-encoding,
// no de-duplication of identical sources.
func Normalize(freeText string, sources []Source) string {
	var b strings.Builder
	b.WriteString(freeText)

	for _, s := range sources {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("--- ")
		b.WriteString(s.Label)
		b.WriteString(" ---\n")
		b.WriteString(s.Text)
	}

	return b.String()
}
