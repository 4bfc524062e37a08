package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/pipeline"
	"github.com/wonny/ideagen/internal/strategyconfig"
)

func TestSummaryLine(t *testing.T) {
	got := summaryLine("public/data/today.json", contracts.PayloadCounts{Short: 3, Long: 2})
	assert.Equal(t, "Wrote public/data/today.json with 5 idea(s). (3 short-term, 2 long-term)", got)
}

func TestPrintRunSummary(t *testing.T) {
	result := &pipeline.Result{
		Payload: &contracts.Payload{
			RunID:       "run-1",
			GeneratedAt: "2024-05-01T21:30:00Z",
			Watchlist:   []string{"spy.us", "aapl.us"},
			MarketBias:  contracts.MarketRegime{Score: 2, Bias: contracts.BiasBullish},
			Ideas: []contracts.IdeaRecord{{
				Symbol: "AAPL.US",
				Plan: contracts.PlanView{
					Strategy:  "trend_pullback_long",
					Entry:     101.05,
					Stop:      99.05,
					Target:    104.65,
					RR:        1.8,
					Direction: contracts.Bullish,
					Horizon:   contracts.HorizonShort,
				},
			}},
		},
		Stats: pipeline.Stats{Evaluated: 1, SkippedLiquidity: 1},
	}

	var buf bytes.Buffer
	printRunSummary(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "bullish (score +2)")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "liquidity 1")
	assert.Contains(t, out, "AAPL.US")
	assert.Contains(t, out, "104.65")
}

func TestPrintRunSummary_NoIdeas(t *testing.T) {
	result := &pipeline.Result{Payload: &contracts.Payload{}}

	var buf bytes.Buffer
	printRunSummary(&buf, result)
	assert.Contains(t, buf.String(), "(no ideas)")
	assert.NotContains(t, buf.String(), "Skipped")
}

func TestWriteConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, strategyconfig.Default()))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "# config_hash: "))

	parsed, err := strategyconfig.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, strategyconfig.Default().Universe.Watchlist, parsed.Universe.Watchlist)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")

	data, err := yaml.Marshal(strategyconfig.Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, data, 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("short_term:\n  reward_mult: -1\n"), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr bool
		wantOut string
	}{
		{name: "valid file", path: good, wantOut: "is valid (22 symbols)"},
		{name: "invalid value", path: bad, wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "nope.yaml"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rootCmd.SetOut(&buf)
			rootCmd.SetErr(&buf)
			rootCmd.SetArgs([]string{"config", "validate", "--strategy", tt.path})
			t.Cleanup(func() { strategyFile = "" })

			err := rootCmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.wantOut)
		})
	}
}
