package analyzer

import "regexp"

// Dialect identifies one supported IaC text format family.
type Dialect string

const (
	DialectTerraform  Dialect = "terraform"
	DialectAWS        Dialect = "aws"
	DialectAzure      Dialect = "azure"
	DialectGCP        Dialect = "gcp"
	DialectKubernetes Dialect = "kubernetes"
	DialectDocker     Dialect = "docker"
)

// DialectPattern is one declarative row in the resource detection catalog.
type DialectPattern struct {
	Dialect Dialect
	Pattern *regexp.Regexp
}

// IssueCategory classifies a risky-configuration pattern.
type IssueCategory string

const (
	CategorySecurity   IssueCategory = "security"
	CategoryCompliance IssueCategory = "compliance"
)

// IssuePattern is one declarative row in the issue detection catalog.
type IssuePattern struct {
	Category IssueCategory
	Pattern  *regexp.Regexp
}

// CostFactor maps a keyword family to its weight in the cost heuristic.
type CostFactor struct {
	Family  string
	Pattern *regexp.Regexp
	Weight  int
}

// dialectCatalog is the fixed resource detection table. Every pattern is
// counted against every input; there is no dialect auto-detection, so a
// Kubernetes manifest is still scanned against Docker instruction rows.
// New dialects are additive rows, not new code paths.
var dialectCatalog = []DialectPattern{
	{DialectTerraform, regexp.MustCompile(`resource\s+"[a-z][a-z0-9_]*"\s+"[^"]+"`)},
	{DialectAWS, regexp.MustCompile(`\baws_(?:lambda_function|s3_bucket|db_instance|rds_cluster|dynamodb_table|ecs_service|eks_cluster|sqs_queue|sns_topic|elb|lb|cloudfront_distribution)\b`)},
	{DialectAzure, regexp.MustCompile(`\bazurerm_(?:virtual_machine|storage_account|function_app|kubernetes_cluster|sql_database|lb|app_service)\b`)},
	{DialectGCP, regexp.MustCompile(`\bgoogle_(?:compute_instance|storage_bucket|cloudfunctions_function|container_cluster|sql_database_instance|compute_forwarding_rule)\b`)},
	{DialectKubernetes, regexp.MustCompile(`(?m)^\s*kind:\s*(?:Deployment|Service|Pod|StatefulSet|DaemonSet|Ingress|Job|CronJob|ConfigMap|Secret)\b`)},
	{DialectDocker, regexp.MustCompile(`(?m)^\s*(?:FROM|RUN|EXPOSE|COPY|ADD|ENTRYPOINT|CMD|WORKDIR)\b`)},
}

// issueCatalog is the fixed security/compliance table. Matching is purely
// textual: occurrences inside comments or string literals still count, and
// overlapping matches across categories are all counted.
var issueCatalog = []IssuePattern{
	// Security: open-network CIDR literals in both spellings.
	{CategorySecurity, regexp.MustCompile(`0\.0\.0\.0/0`)},
	{CategorySecurity, regexp.MustCompile(`::/0`)},
	// Security: wildcard principal/action tokens.
	{CategorySecurity, regexp.MustCompile(`"Principal"\s*:\s*"\*"`)},
	{CategorySecurity, regexp.MustCompile(`"Action"\s*:\s*"\*"`)},
	// Security: allow-all and public-access flags.
	{CategorySecurity, regexp.MustCompile(`allow_all\s*=\s*true`)},
	{CategorySecurity, regexp.MustCompile(`publicly_accessible\s*=\s*true`)},
	{CategorySecurity, regexp.MustCompile(`public_access\s*=\s*true`)},
	// Compliance: missing encryption and unsafe lifecycle flags.
	{CategoryCompliance, regexp.MustCompile(`\bunencrypted\b`)},
	{CategoryCompliance, regexp.MustCompile(`encrypted\s*=\s*false`)},
	{CategoryCompliance, regexp.MustCompile(`skip_final_snapshot\s*=\s*true`)},
	{CategoryCompliance, regexp.MustCompile(`deletion_protection\s*=\s*false`)},
}

// costCatalog is the fixed cost heuristic table. Weights are internal units
// for bucket selection only; they are not tied to real pricing.
var costCatalog = []CostFactor{
	{"compute-instances", regexp.MustCompile(`\b(?:aws_instance|azurerm_virtual_machine|google_compute_instance)\b`), 10},
	{"managed-databases", regexp.MustCompile(`\b(?:aws_db_instance|aws_rds_cluster|azurerm_sql_database|google_sql_database_instance)\b`), 15},
	{"serverless-functions", regexp.MustCompile(`\b(?:aws_lambda_function|azurerm_function_app|google_cloudfunctions_function)\b`), 2},
	{"storage-buckets", regexp.MustCompile(`\b(?:aws_s3_bucket|azurerm_storage_account|google_storage_bucket)\b`), 3},
	{"load-balancers", regexp.MustCompile(`\b(?:aws_lb|aws_elb|azurerm_lb|google_compute_forwarding_rule)\b`), 8},
	{"kubernetes-workloads", regexp.MustCompile(`(?m)^\s*kind:\s*(?:Deployment|StatefulSet|DaemonSet)\b`), 12},
}
