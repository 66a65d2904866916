// Package report exports analysis results and fix state to files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/stackstage/stackstage/pkg/engine"
	"github.com/stackstage/stackstage/pkg/remediation"
)

// WriteJSON writes one analysis result as indented JSON.
func WriteJSON(path string, result *engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	// Mermaid arrows and HCL snippets should survive verbatim.
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// WriteFixesCSV writes the fix records, one row per record, in catalog order.
func WriteFixesCSV(path string, records []remediation.FixRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create fixes file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"ID", "Category", "Severity", "Status", "ChangeID", "Description"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{r.ID, r.Category, r.Severity, string(r.Status), r.ChangeID, r.Description}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
