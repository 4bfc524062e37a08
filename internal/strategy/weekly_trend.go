package strategy

import (
	"fmt"
	"math"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/internal/weekly"
)

// WeeklyTrendLong is the long-horizon position trade taken only in strong weekly uptrends
type WeeklyTrendLong struct {
	cfg strategyconfig.LongTerm
}

// NewWeeklyTrendLong creates the weekly trend strategy
func NewWeeklyTrendLong(cfg strategyconfig.LongTerm) *WeeklyTrendLong {
	return &WeeklyTrendLong{cfg: cfg}
}

func (s *WeeklyTrendLong) Name() string { return "WeeklyTrendLong" }

func (s *WeeklyTrendLong) Horizon() contracts.Horizon { return contracts.HorizonLong }

// Evaluate resamples to weeks and applies close > sma40, ema10 > ema30, rsi14 >= RSIMin
func (s *WeeklyTrendLong) Evaluate(in *Input) *contracts.Plan {
	w := weekly.Resample(in.Series, weekly.Options{DropPartial: !s.cfg.KeepPartialWeek, AsOf: in.AsOf})
	if w.Len() < s.cfg.MinWeeks {
		return nil
	}

	snap := indicator.Weekly(w.Bars)
	v, ok := snap.Latest(indicator.Close, indicator.SMA40, indicator.EMA10, indicator.EMA30, indicator.RSI14, indicator.ATR14)
	if !ok {
		return nil
	}
	closePx, sma40, ema10, ema30, rsi14, atr := v[0], v[1], v[2], v[3], v[4], v[5]

	if !(closePx > sma40 && ema10 > ema30 && rsi14 >= s.cfg.RSIMin) {
		return nil
	}

	p := contracts.Plan{
		Strategy:     s.Name(),
		Direction:    contracts.Bullish,
		Horizon:      contracts.HorizonLong,
		Entry:        closePx,
		Stop:         closePx - s.cfg.StopMult*atr,
		Target:       closePx + s.cfg.TargetMult*atr,
		TargetSource: contracts.TargetATRMultiple,
		Reason:       fmt.Sprintf("Weekly uptrend (close>SMA40, EMA10>EMA30, RSIw>%g). Position trade.", s.cfg.RSIMin),
	}

	// distance above sma40 + momentum quality
	dist := (closePx - sma40) / math.Max(contracts.RiskFloor, sma40)
	momq := (rsi14 - 50) / 50
	return admit(p, func(rr float64) float64 {
		return rr * (1 + s.cfg.TrendWeight*math.Max(0, dist) + s.cfg.RSIWeight*math.Max(0, momq))
	})
}
