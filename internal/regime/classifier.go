// Package regime classifies the overall market direction from the benchmark instrument.
package regime

import (
	"errors"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/pkg/logger"
)

// ErrNoBars is returned when the benchmark series has no bars
var ErrNoBars = errors.New("benchmark series has no bars")

// Classifier scores the benchmark on four binary signals
type Classifier struct {
	cfg strategyconfig.Regime
	log *logger.Logger
}

// NewClassifier creates a new regime classifier
func NewClassifier(cfg strategyconfig.Regime, log *logger.Logger) *Classifier {
	return &Classifier{
		cfg: cfg,
		log: log.WithStage(contracts.StageSignals),
	}
}

// Classify computes score (-4..+4), bias and supporting metrics.
// Each signal adds +1 when true and -1 otherwise; a missing indicator counts as false.
// ⭐ SSOT: 시장 국면은 실행당 한 번, 정보 제공용
func (c *Classifier) Classify(series *contracts.Series) (contracts.MarketRegime, error) {
	last, ok := series.Last()
	if !ok {
		return contracts.MarketRegime{}, ErrNoBars
	}

	snap := indicator.Daily(series.Bars)
	sma200 := snap.Last(indicator.SMA200)
	rsi14 := snap.Last(indicator.RSI14)
	roc20 := snap.Last(indicator.ROC20).Or(0) // 0.0 when < 21 bars

	aboveTrend := indicator.Greater(indicator.Some(last.Close), sma200)
	emaCross := indicator.Greater(snap.Last(indicator.EMA20), snap.Last(indicator.EMA50))
	rsiStrong := atLeast(rsi14, c.cfg.RSIPivot)

	score := vote(aboveTrend) + vote(emaCross) + vote(rsiStrong) + vote(roc20 >= 0)

	r := contracts.MarketRegime{
		Score:        score,
		Bias:         c.bias(score),
		Benchmark:    series.Symbol,
		Close:        contracts.Round2(last.Close),
		SMA200:       rounded(sma200),
		EMA20GtEMA50: emaCross,
		RSI14:        rounded(rsi14),
		ROC20Pct:     contracts.Round2(roc20 * 100),
	}

	c.log.WithFields(map[string]interface{}{
		"benchmark": r.Benchmark,
		"score":     r.Score,
		"bias":      r.Bias,
	}).Info("Market regime classified")

	return r, nil
}

func (c *Classifier) bias(score int) contracts.Bias {
	switch {
	case score >= c.cfg.BullishScore:
		return contracts.BiasBullish
	case score <= c.cfg.BearishScore:
		return contracts.BiasBearish
	default:
		return contracts.BiasNeutral
	}
}

func vote(b bool) int {
	if b {
		return 1
	}
	return -1
}

func atLeast(v indicator.Value, min float64) bool {
	f, ok := v.Get()
	return ok && f >= min
}

func rounded(v indicator.Value) *float64 {
	f, ok := v.Get()
	if !ok {
		return nil
	}
	r := contracts.Round2(f)
	return &r
}
