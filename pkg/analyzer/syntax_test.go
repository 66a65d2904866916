package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSyntaxValid(t *testing.T) {
	content := `resource "aws_s3_bucket" "logs" {
  bucket = "company-logs"
  tags = { Team = "platform" }
}
`
	assert.Equal(t, SyntaxValid, ValidateSyntax(content))
}

func TestValidateSyntaxConsecutiveOpeners(t *testing.T) {
	assert.Equal(t, SyntaxError, ValidateSyntax("resource {{\n}\n}"))
	assert.Equal(t, SyntaxError, ValidateSyntax("a { {\n} }"))
}

func TestValidateSyntaxDanglingAssignment(t *testing.T) {
	content := "resource \"aws_s3_bucket\" \"b\" {\n  tags = {\n"
	assert.Equal(t, SyntaxError, ValidateSyntax(content))
}

func TestValidateSyntaxUnclosedQuote(t *testing.T) {
	assert.Equal(t, SyntaxError, ValidateSyntax("name = \"broken\n"))
}

func TestValidateSyntaxEmpty(t *testing.T) {
	assert.Equal(t, SyntaxValid, ValidateSyntax(""))
}
