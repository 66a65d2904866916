package remediation

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixes.yaml
var defaultCatalogYAML []byte

// DefaultCatalog parses the built-in fix catalog. Every record starts in the
// proposed state.
func DefaultCatalog() ([]FixRecord, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// ParseCatalog decodes a YAML fix catalog and validates id uniqueness.
func ParseCatalog(data []byte) ([]FixRecord, error) {
	var records []FixRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse fix catalog: %w", err)
	}

	seen := make(map[string]bool, len(records))
	for i := range records {
		if records[i].ID == "" {
			return nil, fmt.Errorf("fix catalog entry %d has no id", i)
		}
		if seen[records[i].ID] {
			return nil, fmt.Errorf("duplicate fix id %q in catalog", records[i].ID)
		}
		seen[records[i].ID] = true
		records[i].Status = StatusProposed
	}
	return records, nil
}
