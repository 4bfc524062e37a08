package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/ideagen/pkg/config"
)

var (
	// Global flags
	strategyFile string
	outputDir    string
	logLevel     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ideagen",
	Short: "Daily trade idea generator",
	Long: `ideagen builds a daily list of rule-based trade ideas for a US watchlist.

파이프라인: S0 Fetch → S1 Gate → S2 Signals → S3 Selection → S4 Emit

Usage:
  go run ./cmd/ideagen [command]

Examples:
  go run ./cmd/ideagen build
  go run ./cmd/ideagen build --output public
  go run ./cmd/ideagen schedule --run-now
  go run ./cmd/ideagen config validate --strategy config/strategy/daily_ideas.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML (default: STRATEGY_CONFIG or built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "output directory (default: OUTPUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
}

// loadConfig reads the environment and applies command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if strategyFile != "" {
		cfg.StrategyConfig = strategyFile
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}
