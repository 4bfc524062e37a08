package strategy

import (
	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
)

// MeanReversion fades a two-day RSI extreme back toward the 5-bar average,
// only on the side of the 200-bar trend
type MeanReversion struct {
	dir contracts.Direction
	cfg strategyconfig.ShortTerm
}

// NewMeanReversionLong buys an oversold close above sma200
func NewMeanReversionLong(cfg strategyconfig.ShortTerm) *MeanReversion {
	return &MeanReversion{dir: contracts.Bullish, cfg: cfg}
}

// NewMeanReversionShort sells an overbought close below sma200
func NewMeanReversionShort(cfg strategyconfig.ShortTerm) *MeanReversion {
	return &MeanReversion{dir: contracts.Bearish, cfg: cfg}
}

func (s *MeanReversion) Name() string {
	if s.dir == contracts.Bullish {
		return "MeanReversionLong"
	}
	return "MeanReversionShort"
}

func (s *MeanReversion) Horizon() contracts.Horizon { return contracts.HorizonShort }

// Evaluate targets sma5 when present, otherwise an ATR multiple.
// A sma5 target on the wrong side of entry fails the geometry check and declines.
func (s *MeanReversion) Evaluate(in *Input) *contracts.Plan {
	v, ok := in.Daily.Latest(indicator.Close, indicator.SMA200, indicator.RSI2, indicator.ATR14)
	if !ok {
		return nil
	}
	closePx, sma200, rsi2, atr := v[0], v[1], v[2], v[3]

	sign := 1.0
	if s.dir == contracts.Bullish {
		if !(closePx > sma200 && rsi2 < s.cfg.MRRSI2Max) {
			return nil
		}
	} else {
		if !(closePx < sma200 && rsi2 > s.cfg.MRRSI2Min) {
			return nil
		}
		sign = -1
	}

	p := contracts.Plan{
		Strategy:  s.Name(),
		Direction: s.dir,
		Horizon:   contracts.HorizonShort,
		Entry:     closePx,
	}
	p.Stop = p.Entry - sign*s.cfg.RiskMult*atr

	if sma5, ok := in.Daily.Last(indicator.SMA5).Get(); ok {
		p.Target = sma5
		p.TargetSource = contracts.TargetSMA5
	} else {
		p.Target = p.Entry + sign*s.cfg.RewardMult*atr
		p.TargetSource = contracts.TargetATRMultiple
	}

	var quality float64
	var scored bool
	if s.dir == contracts.Bullish {
		p.Reason = "RSI(2) oversold, snapback to 5SMA."
		quality, scored = QualityLong(in.Daily)
	} else {
		p.Reason = "RSI(2) overbought, drop to 5SMA."
		quality, scored = QualityShort(in.Daily)
	}

	if !scored {
		return nil
	}
	return admit(p, qualityScore(s.cfg.QualityWeight, quality))
}
