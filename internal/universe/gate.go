// Package universe decides which fetched instruments are eligible for strategy evaluation.
package universe

import (
	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
)

// Reason explains why an instrument was excluded
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonInsufficientHistory Reason = "insufficient_history"
	ReasonBelowMinPrice       Reason = "below_min_price"
	ReasonLowDollarVolume     Reason = "low_dollar_volume"
)

// IsLiquidity reports whether the reason comes from the liquidity/price filter
func (r Reason) IsLiquidity() bool {
	return r == ReasonBelowMinPrice || r == ReasonLowDollarVolume
}

// Gate implements S1: history length and liquidity filter
// ⭐ SSOT: S1 제외 규칙은 여기서만
type Gate struct {
	history   strategyconfig.History
	liquidity strategyconfig.Liquidity
}

// NewGate creates a new gate
func NewGate(cfg *strategyconfig.Config) *Gate {
	return &Gate{
		history:   cfg.History,
		liquidity: cfg.Liquidity,
	}
}

// Check returns the exclusion reason, or ReasonNone when the instrument passes
func (g *Gate) Check(series *contracts.Series) Reason {
	// 우선순위 순서로 체크

	// 1. 히스토리 길이
	if series.Len() < g.history.MinBars {
		return ReasonInsufficientHistory
	}

	last, ok := series.Last()
	if !ok {
		return ReasonInsufficientHistory
	}

	// 2. 최소 가격
	if last.Close < g.liquidity.MinPrice {
		return ReasonBelowMinPrice
	}

	// 3. 평균 거래대금 (거래량 컬럼 없으면 통과)
	if !series.HasVolume {
		return ReasonNone
	}
	dv, ok := g.AvgDollarVolume(series).Get()
	if !ok || dv < g.liquidity.MinDollarVolume {
		return ReasonLowDollarVolume
	}

	return ReasonNone
}

// AvgDollarVolume is the rolling mean of close×volume over the liquidity window at the latest bar
func (g *Gate) AvgDollarVolume(series *contracts.Series) indicator.Value {
	return indicator.RollingMean(indicator.DollarVolume(series.Bars), g.liquidity.Window).Last()
}
