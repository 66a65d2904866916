// Package commands implements the stackstage CLI.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stackstage/stackstage/pkg/config"
	"github.com/stackstage/stackstage/pkg/version"
)

// cliConfig collects flag values shared across commands.
type cliConfig struct {
	Mode         string
	Provider     string
	Region       string
	NarrativeURL string
	ExecutorURL  string
	SessionDir   string
	OutputDir    string
	JSONLogs     bool
	Verbose      bool
}

var (
	cfgFile string
	cfg     cliConfig
)

var rootCmd = &cobra.Command{
	Use:   "stackstage",
	Short: "Infrastructure configuration analyzer",
	Long: `StackStage - Cloud Architecture Analysis

Paste or point at infrastructure-as-code and get a resource inventory,
a security and compliance issue count, a cost bucket, and a scored report.`,
	Version: version.Current,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.DefaultAnalyzerConfig()

	rootCmd.PersistentFlags().StringVar(&cfg.Mode, "mode", config.DefaultMode, "Analysis mode (basic|comprehensive|security|cost|performance)")
	rootCmd.PersistentFlags().StringVar(&cfg.Provider, "provider", config.DefaultProvider, "Cloud provider hint for the scoring report")
	rootCmd.PersistentFlags().StringVar(&cfg.Region, "region", config.DefaultRegion, "User region hint for the scoring report")
	rootCmd.PersistentFlags().StringVar(&cfg.NarrativeURL, "narrative-url", "", "Scoring collaborator base URL (empty = offline scorer)")
	rootCmd.PersistentFlags().StringVar(&cfg.ExecutorURL, "executor-url", "", "Fix execution endpoint base URL")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionDir, "session-dir", defaults.SessionDir, "Directory for session hand-off artifacts")
	rootCmd.PersistentFlags().BoolVar(&cfg.JSONLogs, "json-logs", false, "Emit JSON logs")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.stackstage.yaml)")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".stackstage.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("STACKSTAGE")
	viper.AutomaticEnv()
	viper.ReadInConfig()

	if v := viper.GetString("narrative_url"); v != "" && cfg.NarrativeURL == "" {
		cfg.NarrativeURL = v
	}
	if v := viper.GetString("executor_url"); v != "" && cfg.ExecutorURL == "" {
		cfg.ExecutorURL = v
	}
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00B7FF")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s %s", version.AppName, version.Current)))
	fmt.Println(cmd.Short)

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Println(titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Println("")
	}

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		output := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" {
			output += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Println(flagStyle.Render(output))
	})
	fmt.Println("")
}
