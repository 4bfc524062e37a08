// Package strategy holds the rule-based strategies that turn one instrument's history
// into candidate trade plans.
package strategy

import (
	"time"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/pkg/logger"
)

// Strategy evaluates one instrument and returns a plan, or nil when it declines
type Strategy interface {
	Name() string
	Horizon() contracts.Horizon
	Evaluate(in *Input) *contracts.Plan
}

// Input is the per-instrument data shared by every strategy
type Input struct {
	Series *contracts.Series
	Daily  indicator.Snapshot
	// AsOf is the run date; zero means the last bar's date
	AsOf time.Time
}

// NewInput computes the daily indicator snapshot once for all strategies
func NewInput(series *contracts.Series) *Input {
	return &Input{
		Series: series,
		Daily:  indicator.Daily(series.Bars),
	}
}

// Set runs the strategy battery against an instrument
// ⭐ SSOT: 전략 평가 오케스트레이션은 여기서만
type Set struct {
	strategies []Strategy
	logger     *logger.Logger
}

// NewSet creates the default battery: four daily setups, the momentum fallback
// and the weekly trend strategy
func NewSet(cfg *strategyconfig.Config, log *logger.Logger) *Set {
	return NewSetWith(log,
		NewTrendPullbackLong(cfg.ShortTerm),
		NewMeanReversionLong(cfg.ShortTerm),
		NewTrendPullbackShort(cfg.ShortTerm),
		NewMeanReversionShort(cfg.ShortTerm),
		NewMomentumInfo(cfg.ShortTerm),
		NewWeeklyTrendLong(cfg.LongTerm),
	)
}

// NewSetWith creates a set from explicit strategies
func NewSetWith(log *logger.Logger, strategies ...Strategy) *Set {
	return &Set{
		strategies: strategies,
		logger:     log.WithStage(contracts.StageSignals),
	}
}

// Strategies returns the strategies in evaluation order
func (s *Set) Strategies() []Strategy {
	return s.strategies
}

// Evaluate runs every strategy and returns the admitted plans in evaluation order
func (s *Set) Evaluate(series *contracts.Series) []contracts.Plan {
	return s.EvaluateAt(series, time.Time{})
}

// EvaluateAt is Evaluate for a run on asOf
func (s *Set) EvaluateAt(series *contracts.Series, asOf time.Time) []contracts.Plan {
	in := NewInput(series)
	in.AsOf = asOf

	plans := make([]contracts.Plan, 0, len(s.strategies))
	for _, st := range s.strategies {
		p := st.Evaluate(in)
		if p == nil {
			continue
		}

		s.logger.WithFields(map[string]interface{}{
			"symbol":    series.Symbol,
			"strategy":  p.Strategy,
			"direction": p.Direction,
			"rr":        contracts.Round2(p.RewardRisk),
			"score":     p.RankingScore,
		}).Debug("Plan admitted")

		plans = append(plans, *p)
	}

	return plans
}

// admit fills reward/risk and the ranking score; invalid geometry declines
func admit(p contracts.Plan, score func(rr float64) float64) *contracts.Plan {
	p.RewardRisk = contracts.RewardRisk(p.Entry, p.Stop, p.Target)
	if !p.ValidGeometry() {
		return nil
	}
	p.RankingScore = contracts.RoundN(score(p.RewardRisk), 3)
	return &p
}

// qualityScore is rr × (1 + weight·quality)
func qualityScore(weight, quality float64) func(rr float64) float64 {
	return func(rr float64) float64 {
		return rr * (1 + weight*quality)
	}
}

func rrOnly(rr float64) float64 { return rr }
