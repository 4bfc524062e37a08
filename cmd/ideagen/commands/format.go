package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/pipeline"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	singleLine = "───────────────────────────────────────────────────────────"
	doubleLine = "═══════════════════════════════════════════════════════════"
)

// printHeader prints a titled block header
func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, doubleLine)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, singleLine)
}

// printKeyValue prints one aligned key-value pair
func printKeyValue(w io.Writer, key, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// printWarning prints a warning message
func printWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// summaryLine is the final line of a build
// Example: Wrote public/data/today.json with 5 idea(s). (3 short-term, 2 long-term)
func summaryLine(path string, counts contracts.PayloadCounts) string {
	return fmt.Sprintf("Wrote %s with %d idea(s). (%d short-term, %d long-term)",
		path, counts.Short+counts.Long, counts.Short, counts.Long)
}

// printRunSummary prints regime, instrument outcomes and the idea table
func printRunSummary(w io.Writer, result *pipeline.Result) {
	p := result.Payload
	s := result.Stats

	printHeader(w, "Daily Ideas")
	printKeyValue(w, "Run ID", p.RunID, 10)
	printKeyValue(w, "Generated", p.GeneratedAt, 10)
	printKeyValue(w, "Regime", fmt.Sprintf("%s (score %+d)", p.MarketBias.Bias, p.MarketBias.Score), 10)
	printKeyValue(w, "Evaluated", fmt.Sprintf("%d/%d", s.Evaluated, len(p.Watchlist)), 10)

	skipped := s.FetchFailed + s.SkippedHistory + s.SkippedLiquidity + s.Failed
	if skipped > 0 {
		printKeyValue(w, "Skipped", fmt.Sprintf("%d (fetch %d, history %d, liquidity %d, failed %d)",
			skipped, s.FetchFailed, s.SkippedHistory, s.SkippedLiquidity, s.Failed), 10)
	}
	fmt.Fprintln(w, singleLine)

	if len(p.Ideas) == 0 {
		fmt.Fprintln(w, "   (no ideas)")
		return
	}

	widths := []int{8, 6, 20, 8, 10, 10, 10, 5}
	printTableRow(w, []string{"SYMBOL", "HOR", "STRATEGY", "DIR", "ENTRY", "STOP", "TARGET", "RR"}, widths)
	fmt.Fprintln(w, strings.Repeat("─", tableWidth(widths)))
	for _, idea := range p.Ideas {
		printTableRow(w, []string{
			idea.Symbol,
			string(idea.Plan.Horizon),
			idea.Plan.Strategy,
			string(idea.Plan.Direction),
			fmt.Sprintf("%.2f", idea.Plan.Entry),
			fmt.Sprintf("%.2f", idea.Plan.Stop),
			fmt.Sprintf("%.2f", idea.Plan.Target),
			fmt.Sprintf("%.2f", idea.Plan.RR),
		}, widths)
	}
}

// printTableRow prints a table row
func printTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

func tableWidth(widths []int) int {
	total := 0
	for _, width := range widths {
		total += width
	}
	return total + 2*(len(widths)-1)
}
