package strategy

import (
	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
)

// TrendPullback trades a breakout of the last bar's range in the direction of the short trend
type TrendPullback struct {
	dir contracts.Direction
	cfg strategyconfig.ShortTerm
}

// NewTrendPullbackLong buys above the last high when ema5 > ema20 and rsi14 is strong
func NewTrendPullbackLong(cfg strategyconfig.ShortTerm) *TrendPullback {
	return &TrendPullback{dir: contracts.Bullish, cfg: cfg}
}

// NewTrendPullbackShort sells below the last low when ema5 < ema20 and rsi14 is weak
func NewTrendPullbackShort(cfg strategyconfig.ShortTerm) *TrendPullback {
	return &TrendPullback{dir: contracts.Bearish, cfg: cfg}
}

func (s *TrendPullback) Name() string {
	if s.dir == contracts.Bullish {
		return "TrendPullbackLong"
	}
	return "TrendPullbackShort"
}

func (s *TrendPullback) Horizon() contracts.Horizon { return contracts.HorizonShort }

// Evaluate applies the admission rule and the ATR-multiple plan
func (s *TrendPullback) Evaluate(in *Input) *contracts.Plan {
	last, ok := in.Series.Last()
	if !ok {
		return nil
	}
	v, ok := in.Daily.Latest(indicator.EMA5, indicator.EMA20, indicator.EMA50, indicator.SMA200, indicator.RSI14, indicator.ATR14)
	if !ok {
		return nil
	}
	ema5, ema20, rsi14, atr := v[0], v[1], v[4], v[5]

	p := contracts.Plan{
		Strategy:     s.Name(),
		Direction:    s.dir,
		Horizon:      contracts.HorizonShort,
		TargetSource: contracts.TargetATRMultiple,
	}

	var quality float64
	var scored bool
	if s.dir == contracts.Bullish {
		if !(ema5 > ema20 && rsi14 >= s.cfg.UptrendRSIMin) {
			return nil
		}
		p.Entry = last.High + s.cfg.BreakoutOffset
		p.Stop = p.Entry - s.cfg.RiskMult*atr
		p.Target = p.Entry + s.cfg.RewardMult*atr
		p.Reason = "Uptrend, breakout of prior high."
		quality, scored = QualityLong(in.Daily)
	} else {
		if !(ema5 < ema20 && rsi14 <= s.cfg.DowntrendRSIMax) {
			return nil
		}
		p.Entry = last.Low - s.cfg.BreakoutOffset
		p.Stop = p.Entry + s.cfg.RiskMult*atr
		p.Target = p.Entry - s.cfg.RewardMult*atr
		p.Reason = "Downtrend, breakdown of prior low."
		quality, scored = QualityShort(in.Daily)
	}

	if !scored {
		return nil
	}
	return admit(p, qualityScore(s.cfg.QualityWeight, quality))
}
