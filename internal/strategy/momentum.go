package strategy

import (
	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
)

// MomentumInfo is the informational fallback that follows the sign of the 20-bar rate of change.
// Prices are rounded to cents before reward/risk; the ranking score is rr.
type MomentumInfo struct {
	cfg strategyconfig.ShortTerm
}

// NewMomentumInfo creates the momentum fallback strategy
func NewMomentumInfo(cfg strategyconfig.ShortTerm) *MomentumInfo {
	return &MomentumInfo{cfg: cfg}
}

func (s *MomentumInfo) Name() string { return "MomentumInfo" }

func (s *MomentumInfo) Horizon() contracts.Horizon { return contracts.HorizonShort }

// Evaluate requires atr14 and a close 20 bars back
func (s *MomentumInfo) Evaluate(in *Input) *contracts.Plan {
	v, ok := in.Daily.Latest(indicator.Close, indicator.ATR14, indicator.ROC20)
	if !ok {
		return nil
	}
	closePx, atr, roc20 := v[0], v[1], v[2]

	p := contracts.Plan{
		Strategy:     s.Name(),
		Horizon:      contracts.HorizonShort,
		Entry:        contracts.Round2(closePx),
		TargetSource: contracts.TargetATRMultiple,
	}

	if roc20 >= 0 {
		p.Direction = contracts.Bullish
		p.Stop = contracts.Round2(p.Entry - s.cfg.RiskMult*atr)
		p.Target = contracts.Round2(p.Entry + s.cfg.RewardMult*atr)
		p.Reason = "20d momentum up."
	} else {
		p.Direction = contracts.Bearish
		p.Stop = contracts.Round2(p.Entry + s.cfg.RiskMult*atr)
		p.Target = contracts.Round2(p.Entry - s.cfg.RewardMult*atr)
		p.Reason = "20d momentum down."
	}

	return admit(p, rrOnly)
}
