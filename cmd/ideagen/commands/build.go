package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var buildQuiet bool

// buildCmd runs one idea generation and writes the artifacts
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch prices, evaluate strategies and write today's ideas",
	Long: `Runs one full pipeline over the configured watchlist.

Artifacts:
  <output>/data/today.json   aggregate payload (regime + ranked ideas)
  <output>/ohlc/<sym>.json   last 200 daily bars per evaluated instrument

Example:
  go run ./cmd/ideagen build
  go run ./cmd/ideagen build --output public --log-level debug`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "print only the summary line")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return build(ctx, a, cmd)
}

func build(ctx context.Context, a *app, cmd *cobra.Command) error {
	result, err := a.engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if !buildQuiet {
		printRunSummary(out, result)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, summaryLine(a.files.PayloadPath(), result.Payload.Counts))

	return nil
}
