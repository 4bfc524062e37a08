package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wonny/ideagen/internal/strategyconfig"
)

// configCmd groups strategy configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the strategy configuration",
	Long: `전략 설정(YAML)을 검증하거나 기본값이 채워진 최종 설정을 출력합니다.

Subcommands:
  show      - 최종 설정과 config_hash 출력
  validate  - 설정 검증 및 경고 출력

Example:
  go run ./cmd/ideagen config show
  go run ./cmd/ideagen config validate --strategy config/strategy/daily_ideas.yaml`,
}

var (
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the resolved strategy configuration",
		RunE:  showConfig,
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate the strategy configuration",
		RunE:  validateConfig,
	}
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

// strategyPath resolves the flag, then STRATEGY_CONFIG
func strategyPath() (string, error) {
	if strategyFile != "" {
		return strategyFile, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.StrategyConfig, nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	path, err := strategyPath()
	if err != nil {
		return err
	}
	strat, err := loadStrategy(path)
	if err != nil {
		return err
	}
	return writeConfig(cmd.OutOrStdout(), strat)
}

func writeConfig(w io.Writer, strat *strategyconfig.Config) error {
	hash, err := strategyconfig.Hash(strat)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(strat)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Fprintf(w, "# config_hash: %s\n", hash)
	_, err = w.Write(data)
	return err
}

func validateConfig(cmd *cobra.Command, args []string) error {
	path, err := strategyPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	strat, err := loadStrategy(path)
	if err != nil {
		return fmt.Errorf("invalid strategy config: %w", err)
	}

	source := path
	if source == "" {
		source = "built-in defaults"
	}
	printSuccess(out, fmt.Sprintf("%s is valid (%d symbols)", source, len(strat.Universe.Watchlist)))

	for _, w := range strategyconfig.Warn(strat) {
		printWarning(out, fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	return nil
}
