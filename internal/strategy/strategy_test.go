package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/pkg/logger"
)

func TestTrendPullbackLong(t *testing.T) {
	in := input(bar(101, 98, 100), map[string]float64{
		indicator.EMA5:   105,
		indicator.EMA20:  100,
		indicator.EMA50:  100,
		indicator.SMA200: 100,
		indicator.Close:  100,
		indicator.RSI14:  60,
		indicator.ATR14:  2,
	})

	p := NewTrendPullbackLong(shortCfg()).Evaluate(in)
	require.NotNil(t, p)

	assert.Equal(t, "TrendPullbackLong", p.Strategy)
	assert.Equal(t, contracts.Bullish, p.Direction)
	assert.Equal(t, contracts.HorizonShort, p.Horizon)
	assert.InDelta(t, 101.05, p.Entry, 1e-9)
	assert.InDelta(t, 99.05, p.Stop, 1e-9)
	assert.InDelta(t, 104.65, p.Target, 1e-9)
	assert.InDelta(t, 1.8, p.RewardRisk, 1e-9)
	assert.Equal(t, "Uptrend, breakout of prior high.", p.Reason)
	// quality = (60-50)/50 = 0.2 → score = 1.8 × 1.1
	assert.InDelta(t, 1.98, p.RankingScore, 1e-9)
}

func TestTrendPullbackShort(t *testing.T) {
	in := input(bar(101, 99, 100), map[string]float64{
		indicator.EMA5:   95,
		indicator.EMA20:  100,
		indicator.EMA50:  100,
		indicator.SMA200: 100,
		indicator.Close:  100,
		indicator.RSI14:  40,
		indicator.ATR14:  2,
	})

	p := NewTrendPullbackShort(shortCfg()).Evaluate(in)
	require.NotNil(t, p)

	assert.Equal(t, contracts.Bearish, p.Direction)
	assert.InDelta(t, 98.95, p.Entry, 1e-9)
	assert.InDelta(t, 100.95, p.Stop, 1e-9)
	assert.InDelta(t, 95.35, p.Target, 1e-9)
	assert.InDelta(t, 1.8, p.RewardRisk, 1e-9)
	assert.Equal(t, "Downtrend, breakdown of prior low.", p.Reason)
	assert.InDelta(t, 1.98, p.RankingScore, 1e-9)
}

func TestTrendPullback_Declines(t *testing.T) {
	base := map[string]float64{
		indicator.EMA5:   105,
		indicator.EMA20:  100,
		indicator.EMA50:  100,
		indicator.SMA200: 100,
		indicator.Close:  100,
		indicator.RSI14:  60,
		indicator.ATR14:  2,
	}

	tests := []struct {
		name   string
		mutate func(map[string]float64)
	}{
		{"ema5 below ema20", func(m map[string]float64) { m[indicator.EMA5] = 99 }},
		{"rsi below threshold", func(m map[string]float64) { m[indicator.RSI14] = 49.9 }},
		{"missing atr", func(m map[string]float64) { delete(m, indicator.ATR14) }},
		{"zero atr", func(m map[string]float64) { m[indicator.ATR14] = 0 }},
		{"missing sma200", func(m map[string]float64) { delete(m, indicator.SMA200) }},
		{"missing ema50", func(m map[string]float64) { delete(m, indicator.EMA50) }},
		{"missing close", func(m map[string]float64) { delete(m, indicator.Close) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings := map[string]float64{}
			for k, v := range base {
				readings[k] = v
			}
			tt.mutate(readings)

			assert.Nil(t, NewTrendPullbackLong(shortCfg()).Evaluate(input(bar(101, 98, 100), readings)))
		})
	}
}

func TestMeanReversionLong(t *testing.T) {
	readings := map[string]float64{
		indicator.Close:  110,
		indicator.SMA200: 100,
		indicator.EMA20:  104,
		indicator.EMA50:  102,
		indicator.RSI14:  45,
		indicator.RSI2:   5,
		indicator.ATR14:  2,
		indicator.SMA5:   113,
	}

	p := NewMeanReversionLong(shortCfg()).Evaluate(input(bar(111, 109, 110), readings))
	require.NotNil(t, p)

	assert.Equal(t, "MeanReversionLong", p.Strategy)
	assert.Equal(t, 110.0, p.Entry)
	assert.Equal(t, 108.0, p.Stop)
	assert.Equal(t, 113.0, p.Target)
	assert.Equal(t, contracts.TargetSMA5, p.TargetSource)
	assert.InDelta(t, 1.5, p.RewardRisk, 1e-9)
	assert.Equal(t, "RSI(2) oversold, snapback to 5SMA.", p.Reason)
}

func TestMeanReversionLong_ATRFallback(t *testing.T) {
	readings := map[string]float64{
		indicator.Close:  110,
		indicator.SMA200: 100,
		indicator.EMA20:  104,
		indicator.EMA50:  102,
		indicator.RSI14:  45,
		indicator.RSI2:   5,
		indicator.ATR14:  2,
	}

	p := NewMeanReversionLong(shortCfg()).Evaluate(input(bar(111, 109, 110), readings))
	require.NotNil(t, p)

	assert.Equal(t, contracts.TargetATRMultiple, p.TargetSource)
	assert.InDelta(t, 113.6, p.Target, 1e-9)
	assert.InDelta(t, 1.8, p.RewardRisk, 1e-9)
}

func TestMeanReversion_Declines(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		readings map[string]float64
	}{
		{
			"long: sma5 below entry",
			NewMeanReversionLong(shortCfg()),
			map[string]float64{indicator.Close: 110, indicator.SMA200: 100, indicator.RSI2: 5, indicator.EMA20: 100, indicator.EMA50: 100, indicator.RSI14: 50, indicator.ATR14: 2, indicator.SMA5: 108},
		},
		{
			"long: rsi2 not oversold",
			NewMeanReversionLong(shortCfg()),
			map[string]float64{indicator.Close: 110, indicator.SMA200: 100, indicator.RSI2: 15, indicator.EMA20: 100, indicator.EMA50: 100, indicator.RSI14: 50, indicator.ATR14: 2, indicator.SMA5: 113},
		},
		{
			"long: below sma200",
			NewMeanReversionLong(shortCfg()),
			map[string]float64{indicator.Close: 95, indicator.SMA200: 100, indicator.RSI2: 5, indicator.EMA20: 100, indicator.EMA50: 100, indicator.RSI14: 50, indicator.ATR14: 2, indicator.SMA5: 98},
		},
		{
			"long: sma200 missing",
			NewMeanReversionLong(shortCfg()),
			map[string]float64{indicator.Close: 110, indicator.RSI2: 5, indicator.EMA20: 100, indicator.EMA50: 100, indicator.RSI14: 50, indicator.ATR14: 2, indicator.SMA5: 113},
		},
		{
			"long: quality inputs missing",
			NewMeanReversionLong(shortCfg()),
			map[string]float64{indicator.Close: 110, indicator.SMA200: 100, indicator.RSI2: 5, indicator.ATR14: 2, indicator.SMA5: 113},
		},
		{
			"short: sma5 above entry",
			NewMeanReversionShort(shortCfg()),
			map[string]float64{indicator.Close: 90, indicator.SMA200: 100, indicator.RSI2: 95, indicator.EMA20: 100, indicator.EMA50: 100, indicator.RSI14: 50, indicator.ATR14: 2, indicator.SMA5: 91},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, tt.strategy.Evaluate(input(bar(111, 89, 100), tt.readings)))
		})
	}
}

func TestMeanReversionShort(t *testing.T) {
	readings := map[string]float64{
		indicator.Close:  90,
		indicator.SMA200: 100,
		indicator.EMA20:  96,
		indicator.EMA50:  98,
		indicator.RSI14:  55,
		indicator.RSI2:   95,
		indicator.ATR14:  2,
		indicator.SMA5:   87,
	}

	p := NewMeanReversionShort(shortCfg()).Evaluate(input(bar(91, 89, 90), readings))
	require.NotNil(t, p)

	assert.Equal(t, contracts.Bearish, p.Direction)
	assert.Equal(t, 92.0, p.Stop)
	assert.Equal(t, 87.0, p.Target)
	assert.InDelta(t, 1.5, p.RewardRisk, 1e-9)
	assert.Equal(t, "RSI(2) overbought, drop to 5SMA.", p.Reason)
}

func TestMomentumInfo(t *testing.T) {
	tests := []struct {
		name       string
		roc        float64
		wantDir    contracts.Direction
		wantStop   float64
		wantTarget float64
		wantReason string
	}{
		{"up", 0.05, contracts.Bullish, 98.76, 102.23, "20d momentum up."},
		{"flat counts as up", 0, contracts.Bullish, 98.76, 102.23, "20d momentum up."},
		{"down", -0.01, contracts.Bearish, 101.24, 97.77, "20d momentum down."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input(bar(101, 99, 100.004), map[string]float64{
				indicator.Close: 100.004,
				indicator.ATR14: 1.237,
				indicator.ROC20: tt.roc,
			})

			p := NewMomentumInfo(shortCfg()).Evaluate(in)
			require.NotNil(t, p)

			assert.Equal(t, tt.wantDir, p.Direction)
			assert.Equal(t, 100.0, p.Entry, "entry rounded to cents")
			assert.Equal(t, tt.wantStop, p.Stop)
			assert.Equal(t, tt.wantTarget, p.Target)
			assert.InDelta(t, 2.23/1.24, p.RewardRisk, 1e-9)
			assert.InDelta(t, 1.798, p.RankingScore, 1e-9, "score is rr")
			assert.Equal(t, tt.wantReason, p.Reason)
		})
	}
}

func TestMomentumInfo_NeedsLookback(t *testing.T) {
	in := input(bar(101, 99, 100), map[string]float64{
		indicator.Close: 100,
		indicator.ATR14: 1,
	})
	assert.Nil(t, NewMomentumInfo(shortCfg()).Evaluate(in))
}

func TestQuality(t *testing.T) {
	tests := []struct {
		name      string
		readings  map[string]float64
		wantLong  float64
		wantShort float64
	}{
		{
			"full uptrend",
			map[string]float64{indicator.Close: 110, indicator.SMA200: 100, indicator.EMA20: 105, indicator.EMA50: 102, indicator.RSI14: 75},
			2.5, 0,
		},
		{
			"full downtrend",
			map[string]float64{indicator.Close: 90, indicator.SMA200: 100, indicator.EMA20: 95, indicator.EMA50: 98, indicator.RSI14: 25},
			0, 2.5,
		},
		{
			"rsi only",
			map[string]float64{indicator.Close: 100, indicator.SMA200: 100, indicator.EMA20: 100, indicator.EMA50: 100, indicator.RSI14: 60},
			0.2, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input(bar(1, 1, 1), tt.readings)

			long, ok := QualityLong(in.Daily)
			require.True(t, ok)
			assert.InDelta(t, tt.wantLong, long, 1e-9)

			short, ok := QualityShort(in.Daily)
			require.True(t, ok)
			assert.InDelta(t, tt.wantShort, short, 1e-9)
		})
	}
}

func TestQuality_MissingComponentDeclines(t *testing.T) {
	full := map[string]float64{indicator.Close: 110, indicator.SMA200: 100, indicator.EMA20: 105, indicator.EMA50: 102, indicator.RSI14: 75}

	for _, name := range []string{indicator.Close, indicator.SMA200, indicator.EMA20, indicator.EMA50, indicator.RSI14} {
		t.Run(name, func(t *testing.T) {
			readings := map[string]float64{}
			for k, v := range full {
				if k != name {
					readings[k] = v
				}
			}
			in := input(bar(1, 1, 1), readings)

			_, ok := QualityLong(in.Daily)
			assert.False(t, ok)
			_, ok = QualityShort(in.Daily)
			assert.False(t, ok)
		})
	}
}

// 100 bars is too short for sma200, so no short-term setup may be ranked on a partial quality
func TestSet_ShortHistoryDeclinesQualityStrategies(t *testing.T) {
	set := NewSet(strategyconfig.Default(), logger.Nop())

	for _, p := range set.Evaluate(risingWeekdays(100)) {
		assert.NotContains(t, []string{"TrendPullbackLong", "TrendPullbackShort", "MeanReversionLong", "MeanReversionShort"}, p.Strategy)
	}
	assert.Nil(t, NewTrendPullbackLong(shortCfg()).Evaluate(NewInput(risingWeekdays(100))))
}

func TestWeeklyTrendLong(t *testing.T) {
	p := NewWeeklyTrendLong(strategyconfig.Default().LongTerm).Evaluate(NewInput(risingWeekdays(600)))
	require.NotNil(t, p)

	assert.Equal(t, "WeeklyTrendLong", p.Strategy)
	assert.Equal(t, contracts.HorizonLong, p.Horizon)
	assert.Equal(t, contracts.Bullish, p.Direction)
	assert.InDelta(t, 109.9, p.Entry, 1e-9)
	assert.InDelta(t, 107.1, p.Stop, 1e-9) // weekly atr = 1.4
	assert.InDelta(t, 115.5, p.Target, 1e-9)
	assert.InDelta(t, 2.0, p.RewardRisk, 1e-9)
	assert.Greater(t, p.RankingScore, p.RewardRisk)
	assert.Equal(t, "Weekly uptrend (close>SMA40, EMA10>EMA30, RSIw>55). Position trade.", p.Reason)
}

func TestWeeklyTrendLong_DropsPartialWeek(t *testing.T) {
	// 598 weekdays ends on a Wednesday; the last full week closes at day 594
	p := NewWeeklyTrendLong(strategyconfig.Default().LongTerm).Evaluate(NewInput(risingWeekdays(598)))
	require.NotNil(t, p)
	assert.InDelta(t, 109.4, p.Entry, 1e-9)
}

func TestWeeklyTrendLong_RunDateClosesShortWeek(t *testing.T) {
	series := risingWeekdays(598)
	lastDay := series.Bars[len(series.Bars)-1].Date // Wednesday

	tests := []struct {
		name      string
		asOf      time.Time
		wantEntry float64
	}{
		{"run on the last bar", lastDay, 109.4},
		{"run on friday", lastDay.AddDate(0, 0, 2), 109.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput(series)
			in.AsOf = tt.asOf

			p := NewWeeklyTrendLong(strategyconfig.Default().LongTerm).Evaluate(in)
			require.NotNil(t, p)
			assert.InDelta(t, tt.wantEntry, p.Entry, 1e-9)
		})
	}
}

func TestWeeklyTrendLong_InsufficientWeeks(t *testing.T) {
	p := NewWeeklyTrendLong(strategyconfig.Default().LongTerm).Evaluate(NewInput(risingWeekdays(250)))
	assert.Nil(t, p)
}

func TestSet_Evaluate(t *testing.T) {
	set := NewSet(strategyconfig.Default(), logger.Nop())

	names := []string{}
	for _, s := range set.Strategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"TrendPullbackLong", "MeanReversionLong", "TrendPullbackShort",
		"MeanReversionShort", "MomentumInfo", "WeeklyTrendLong",
	}, names)

	plans := set.Evaluate(risingWeekdays(600))

	got := map[string]contracts.Plan{}
	for _, p := range plans {
		got[p.Strategy] = p
	}
	assert.Contains(t, got, "TrendPullbackLong")
	assert.Contains(t, got, "MomentumInfo")
	assert.Contains(t, got, "WeeklyTrendLong")
	assert.NotContains(t, got, "TrendPullbackShort")
	assert.NotContains(t, got, "MeanReversionShort")
}

// Every admitted plan, from any strategy, must satisfy the reward/risk formula and direction geometry
func TestSet_PlanGeometryHolds(t *testing.T) {
	set := NewSet(strategyconfig.Default(), logger.Nop())

	admitted := 0
	for seed := int64(1); seed <= 60; seed++ {
		series := randomWalk(420, seed)
		for _, p := range set.Evaluate(series) {
			admitted++
			assert.True(t, p.ValidGeometry(), "seed %d %s: %+v", seed, p.Strategy, p)
			assert.GreaterOrEqual(t, p.RewardRisk, 0.0)
			assert.InDelta(t, contracts.RewardRisk(p.Entry, p.Stop, p.Target), p.RewardRisk, 1e-12)
			assert.GreaterOrEqual(t, p.RankingScore, 0.0)
		}
	}
	assert.Greater(t, admitted, 0)
}
