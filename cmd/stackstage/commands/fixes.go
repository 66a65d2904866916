package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/stackstage/stackstage/pkg/config"
	"github.com/stackstage/stackstage/pkg/remediation"
	"github.com/stackstage/stackstage/pkg/report"
)

var rollbackReason string

var fixesCmd = &cobra.Command{
	Use:   "fixes",
	Short: "Inspect and apply remediation fixes",
}

var fixesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the fix catalog and current state",
	RunE:  runFixesList,
}

var fixesApplyCmd = &cobra.Command{
	Use:   "apply <fix-id>",
	Short: "Apply a proposed fix through the execution endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runFixesApply,
}

var fixesRollbackCmd = &cobra.Command{
	Use:   "rollback <fix-id>",
	Short: "Roll back an applied fix",
	Args:  cobra.ExactArgs(1),
	RunE:  runFixesRollback,
}

func init() {
	fixesApplyCmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", "", "Directory to write the fix state CSV into")
	fixesRollbackCmd.Flags().StringVar(&rollbackReason, "reason", "", "Reason for rolling back the fix")
	fixesRollbackCmd.MarkFlagRequired("reason")

	fixesCmd.AddCommand(fixesListCmd, fixesApplyCmd, fixesRollbackCmd)
	rootCmd.AddCommand(fixesCmd)
}

func newFixEngine() (*remediation.Engine, error) {
	if cfg.ExecutorURL == "" {
		return nil, fmt.Errorf("no execution endpoint configured: set --executor-url or STACKSTAGE_EXECUTOR_URL")
	}
	catalog, err := remediation.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	executor := remediation.NewHTTPExecutor(cfg.ExecutorURL, config.DefaultEndpointConfig().Timeout)
	return remediation.NewEngine(executor, catalog, cliLogger()), nil
}

func runFixesList(cmd *cobra.Command, args []string) error {
	catalog, err := remediation.DefaultCatalog()
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Category", "Severity", "Status", "Description"})
	for _, rec := range catalog {
		t.AppendRow(table.Row{rec.ID, rec.Category, colorSeverity(rec.Severity), string(rec.Status), rec.Description})
	}
	t.Render()
	return nil
}

func runFixesApply(cmd *cobra.Command, args []string) error {
	eng, err := newFixEngine()
	if err != nil {
		return err
	}
	id := args[0]

	if err := eng.Apply(cmd.Context(), id); err != nil {
		var opErr *remediation.OpError
		if errors.As(err, &opErr) {
			color.Red("Apply failed: %s", opErr.Reason)
			for _, s := range opErr.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
			return fmt.Errorf("fix %s was not applied", id)
		}
		return err
	}

	rec, _ := eng.Get(id)
	color.Green("Fix %s applied (change %s)", id, rec.ChangeID)
	for _, line := range rec.AppliedDiff {
		fmt.Printf("  %s\n", line)
	}
	if len(rec.ValidationSteps) > 0 {
		fmt.Println("Validation steps:")
		for _, step := range rec.ValidationSteps {
			fmt.Printf("  - %s\n", step)
		}
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path := filepath.Join(cfg.OutputDir, "fixes.csv")
		if err := report.WriteFixesCSV(path, eng.Records()); err != nil {
			return err
		}
		fmt.Printf("Fix state written to %s\n", path)
	}
	return nil
}

func runFixesRollback(cmd *cobra.Command, args []string) error {
	eng, err := newFixEngine()
	if err != nil {
		return err
	}
	id := args[0]

	if err := eng.Rollback(cmd.Context(), id, rollbackReason); err != nil {
		var opErr *remediation.OpError
		if errors.As(err, &opErr) {
			color.Red("Rollback failed: %s", opErr.Reason)
			return fmt.Errorf("fix %s is still applied", id)
		}
		return err
	}

	color.Green("Fix %s rolled back", id)
	return nil
}

func colorSeverity(severity string) string {
	switch severity {
	case "high", "critical":
		return color.RedString(severity)
	case "medium":
		return color.YellowString(severity)
	default:
		return severity
	}
}
