package regime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/pkg/logger"
)

// linear builds n daily bars whose close moves by step each day
func linear(n int, start, step float64) *contracts.Series {
	bars := make([]contracts.PriceBar, n)
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := start + step*float64(i)
		bars[i] = contracts.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return &contracts.Series{Symbol: "spy.us", Interval: "d", Bars: bars, HasVolume: true}
}

func newClassifier() *Classifier {
	return NewClassifier(strategyconfig.Default().Regime, logger.Nop())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		series    *contracts.Series
		wantScore int
		wantBias  contracts.Bias
	}{
		{"steady uptrend", linear(260, 100, 1), 4, contracts.BiasBullish},
		{"steady downtrend", linear(260, 400, -1), -4, contracts.BiasBearish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newClassifier().Classify(tt.series)
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, r.Score)
			assert.Equal(t, tt.wantBias, r.Bias)
			assert.Equal(t, "spy.us", r.Benchmark)
			require.NotNil(t, r.SMA200)
			require.NotNil(t, r.RSI14)
		})
	}
}

func TestClassify_Metrics(t *testing.T) {
	s := linear(260, 100, 1)
	r, err := newClassifier().Classify(s)
	require.NoError(t, err)

	assert.Equal(t, 359.0, r.Close)
	assert.Equal(t, 259.5, *r.SMA200) // mean of 160..359
	assert.Equal(t, 100.0, *r.RSI14)
	assert.True(t, r.EMA20GtEMA50)
	assert.Equal(t, contracts.Round2((359.0/339.0-1)*100), r.ROC20Pct)
}

func TestClassify_ShortHistory(t *testing.T) {
	// sma200 missing (-1), roc20 defaults to 0 (+1)
	r, err := newClassifier().Classify(linear(15, 100, 1))
	require.NoError(t, err)

	assert.Nil(t, r.SMA200)
	assert.Equal(t, 0.0, r.ROC20Pct)
	assert.Equal(t, 2, r.Score)
	assert.Equal(t, contracts.BiasBullish, r.Bias)
}

func TestClassify_Empty(t *testing.T) {
	_, err := newClassifier().Classify(&contracts.Series{Symbol: "spy.us"})
	assert.ErrorIs(t, err, ErrNoBars)
}

func TestBias(t *testing.T) {
	c := newClassifier()
	tests := []struct {
		score int
		want  contracts.Bias
	}{
		{4, contracts.BiasBullish},
		{2, contracts.BiasBullish},
		{1, contracts.BiasNeutral},
		{0, contracts.BiasNeutral},
		{-1, contracts.BiasNeutral},
		{-2, contracts.BiasBearish},
		{-4, contracts.BiasBearish},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.bias(tt.score), "score %d", tt.score)
	}
}
