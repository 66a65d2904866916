package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const terraformSample = `
resource "aws_instance" "web_a" {
  ami           = "ami-0abc"
  instance_type = "t3.micro"
}

resource "aws_instance" "web_b" {
  ami           = "ami-0abc"
  instance_type = "t3.micro"
}

resource "aws_instance" "web_c" {
  ami           = "ami-0abc"
  instance_type = "t3.micro"
}

output "etl_arn" {
  value = aws_lambda_function.etl.arn
}

output "etl_name" {
  value = aws_lambda_function.etl.function_name
}
`

func TestCountResourcesTerraform(t *testing.T) {
	// Three resource block headers plus two lambda tokens.
	assert.Equal(t, 5, CountResources(terraformSample))
}

func TestCountResourcesKubernetesAndDocker(t *testing.T) {
	manifest := "apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: api\n---\nkind: Service\nmetadata:\n  name: api\n"
	assert.Equal(t, 2, CountResources(manifest))

	dockerfile := "FROM golang:1.25\nRUN go build ./...\nEXPOSE 8080\nCMD [\"/app\"]\n"
	assert.Equal(t, 4, CountResources(dockerfile))
}

func TestCountResourcesScansAllDialects(t *testing.T) {
	// A Kubernetes manifest is still scanned against Docker rows; a line that
	// happens to start with RUN counts as a Docker instruction.
	mixed := "kind: Pod\nRUN echo hello\n"
	assert.Equal(t, 2, CountResources(mixed))
}

func TestCountIssues(t *testing.T) {
	content := `
resource "aws_security_group" "open" {
  ingress {
    cidr_blocks = ["0.0.0.0/0"]
  }
  egress {
    cidr_blocks = ["0.0.0.0/0"]
  }
}

resource "aws_db_instance" "db" {
  publicly_accessible = true
}
`
	assert.Equal(t, 3, CountIssues(content))
}

func TestIssueBreakdown(t *testing.T) {
	content := "cidr_blocks = [\"0.0.0.0/0\"]\nskip_final_snapshot = true\ndeletion_protection = false\n"
	got := IssueBreakdown(content)

	assert.Equal(t, 1, got[CategorySecurity])
	assert.Equal(t, 2, got[CategoryCompliance])
}

func TestIssuesCountInsideComments(t *testing.T) {
	// Matching is purely textual: a commented-out line still counts.
	content := "# cidr_blocks = [\"0.0.0.0/0\"]\n"
	assert.Equal(t, 1, CountIssues(content))
}

func TestComputeDeterminism(t *testing.T) {
	content := terraformSample + "\nkind: Deployment\nencrypted = false\n"

	a := Compute(content)
	b := Compute(content)
	assert.Equal(t, a, b)
}

func TestResourceCountLinearity(t *testing.T) {
	a := terraformSample
	b := "kind: Deployment\nFROM alpine:3.20\n"

	merged := Normalize(a, []Source{{Label: "extra", Text: b}})
	assert.Equal(t, CountResources(a)+CountResources(b), CountResources(merged))
}

func TestCountResourcesEmpty(t *testing.T) {
	assert.Equal(t, 0, CountResources(""))
	assert.Equal(t, 0, CountResources(strings.Repeat("plain prose, no infrastructure here. ", 10)))
}
