package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stackstage/stackstage/pkg/analyzer"
	"github.com/stackstage/stackstage/pkg/engine"
	"github.com/stackstage/stackstage/pkg/remediation"
	"github.com/stackstage/stackstage/pkg/report"
)

var analyzeText string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze infrastructure configuration",
	Long: `Analyze pasted text and/or configuration files.

Files are read as-is and concatenated after the pasted text, each under a
labeled separator. A file that cannot be read aborts the run.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Configuration text to analyze")
	analyzeCmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", "", "Directory to write report artifacts into")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if analyzeText == "" && len(args) == 0 {
		return fmt.Errorf("nothing to analyze: provide --text or at least one file")
	}

	var sources []analyzer.Source
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, analyzer.Source{
			Label: filepath.Base(path),
			Text:  string(data),
		})
	}

	eng, err := engine.New(ctx, engine.WithConfig(engineConfig()))
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Analyzing configuration..."
	s.Start()
	result, err := eng.Analyze(ctx, analyzeText, sources)
	s.Stop()
	if err != nil {
		return err
	}

	printResult(result)

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path := filepath.Join(cfg.OutputDir, "analysis.json")
		if err := report.WriteJSON(path, result); err != nil {
			return err
		}
		catalog, err := remediation.DefaultCatalog()
		if err != nil {
			return err
		}
		csvPath := filepath.Join(cfg.OutputDir, "fixes.csv")
		if err := report.WriteFixesCSV(csvPath, catalog); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputDir)
	}
	return nil
}

func engineConfig() engine.Config {
	return engine.Config{
		Mode:         cfg.Mode,
		Provider:     cfg.Provider,
		Region:       cfg.Region,
		NarrativeURL: cfg.NarrativeURL,
		ExecutorURL:  cfg.ExecutorURL,
		SessionDir:   cfg.SessionDir,
		JSONLogs:     cfg.JSONLogs,
		Verbose:      cfg.Verbose,
		Logger:       cliLogger(),
	}
}

// cliLogger keeps interactive runs quiet unless asked otherwise.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.JSONLogs {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printResult(result *engine.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	fmt.Println("")
	bold.Println("Analysis Summary")
	fmt.Printf("  Resources detected:  %d\n", result.Snapshot.ResourceCount)
	if result.Snapshot.IssueCount > 0 {
		fmt.Printf("  Issues detected:     %s\n", red.Sprintf("%d", result.Snapshot.IssueCount))
	} else {
		fmt.Printf("  Issues detected:     %s\n", green.Sprint("0"))
	}
	fmt.Printf("  Estimated cost:      %s\n", result.Snapshot.CostLabel)
	if result.Snapshot.SyntaxStatus == analyzer.SyntaxValid {
		fmt.Printf("  Syntax:              %s\n", green.Sprint("valid"))
	} else {
		fmt.Printf("  Syntax:              %s\n", red.Sprint("error"))
	}

	r := result.Report
	fmt.Println("")
	bold.Println("Scores")
	fmt.Printf("  Overall:      %s\n", scoreColor(r.OverallScore))
	fmt.Printf("  Security:     %s\n", scoreColor(r.SecurityScore))
	fmt.Printf("  Cost:         %s\n", scoreColor(r.CostScore))
	fmt.Printf("  Performance:  %s\n", scoreColor(r.PerformanceScore))
	if r.EstimatedSavings > 0 {
		fmt.Printf("  Potential savings: $%s/year\n", humanize.CommafWithDigits(r.EstimatedSavings, 0))
	}

	if len(r.CriticalIssues) > 0 {
		fmt.Println("")
		bold.Println("Critical Issues")
		for _, issue := range r.CriticalIssues {
			red.Printf("  ✗ %s\n", issue.Title)
			fmt.Printf("    %s\n", issue.Detail)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Println("")
		bold.Println("Warnings")
		for _, w := range r.Warnings {
			yellow.Printf("  ! %s\n", w.Title)
			fmt.Printf("    %s\n", w.Detail)
		}
	}
	if len(r.Recommendations) > 0 {
		fmt.Println("")
		bold.Println("Recommendations")
		for _, rec := range r.Recommendations {
			green.Printf("  » %s\n", rec.Title)
			fmt.Printf("    %s\n", rec.Detail)
		}
	}

	fmt.Println("")
	fmt.Println(r.Summary)
	fmt.Printf("\nAnalysis ID: %s\n", result.ID)
}

func scoreColor(score int) string {
	switch {
	case score >= 80:
		return color.GreenString("%d/100", score)
	case score >= 60:
		return color.YellowString("%d/100", score)
	default:
		return color.RedString("%d/100", score)
	}
}
