// Package remediation tracks proposed configuration fixes through their
// apply/rollback lifecycle against an external execution endpoint.
package remediation

// Status is the lifecycle state of a fix.
type Status string

const (
	StatusProposed   Status = "proposed"
	StatusApplied    Status = "applied"
	StatusRolledBack Status = "rolled_back"
)

// FixRecord is the unit of remediation. Records live for one session only;
// apply and rollback are the only operations that mutate them.
type FixRecord struct {
	ID           string `yaml:"id" json:"id"`
	Category     string `yaml:"category" json:"category"`
	Severity     string `yaml:"severity" json:"severity"`
	Description  string `yaml:"description" json:"description"`
	ProposedCode string `yaml:"proposed_code" json:"proposedCode"`
	Impact       string `yaml:"impact" json:"impact"`

	// Populated by a successful apply, cleared by a successful rollback.
	AppliedDiff     []string `yaml:"-" json:"appliedDiff,omitempty"`
	InfraChanges    []string `yaml:"-" json:"infrastructureChanges,omitempty"`
	ValidationSteps []string `yaml:"-" json:"validationSteps,omitempty"`
	ChangeID        string   `yaml:"-" json:"changeId,omitempty"`

	Status Status `yaml:"-" json:"status"`
}
