package strategy

import (
	"math"

	"github.com/wonny/ideagen/internal/indicator"
)

// qualityInputs are the latest readings every quality score consumes
var qualityInputs = []string{indicator.Close, indicator.SMA200, indicator.EMA20, indicator.EMA50, indicator.RSI14}

// QualityLong scores trend alignment for bullish setups; ranking only, never admission.
// Reports false when any component is missing so the caller declines.
func QualityLong(snap indicator.Snapshot) (float64, bool) {
	v, ok := snap.Latest(qualityInputs...)
	if !ok {
		return 0, false
	}
	closePx, sma200, ema20, ema50, rsi14 := v[0], v[1], v[2], v[3], v[4]

	pts := (rsi14 - 50) / 50
	if closePx > sma200 {
		pts++
	}
	if ema20 > ema50 {
		pts++
	}
	return math.Max(0, pts), true
}

// QualityShort mirrors QualityLong for bearish setups
func QualityShort(snap indicator.Snapshot) (float64, bool) {
	v, ok := snap.Latest(qualityInputs...)
	if !ok {
		return 0, false
	}
	closePx, sma200, ema20, ema50, rsi14 := v[0], v[1], v[2], v[3], v[4]

	pts := (50 - rsi14) / 50
	if closePx < sma200 {
		pts++
	}
	if ema20 < ema50 {
		pts++
	}
	return math.Max(0, pts), true
}
