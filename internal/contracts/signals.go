package contracts

import "math"

// Direction of a candidate plan
type Direction string

const (
	Bullish Direction = "bullish"
	Bearish Direction = "bearish"
)

// Horizon classifies ideas by the bar size that produced them
type Horizon string

const (
	HorizonShort Horizon = "short" // daily bars
	HorizonLong  Horizon = "long"  // weekly bars
)

// TargetSource records how a plan's target was derived
type TargetSource string

const (
	TargetATRMultiple TargetSource = "atr_multiple"
	TargetSMA5        TargetSource = "sma5"
)

// RiskFloor keeps reward/risk finite when stop equals entry
const RiskFloor = 1e-6

// Plan is a candidate trade plan produced by one strategy evaluation
// ⭐ SSOT: S2 → S3 후보 플랜 전달. 생성 후 변경하지 않음
type Plan struct {
	Strategy     string
	Direction    Direction
	Horizon      Horizon
	Entry        float64
	Stop         float64
	Target       float64
	RewardRisk   float64
	Reason       string
	TargetSource TargetSource
	RankingScore float64 // ranking artifact, dropped by View()
}

// RewardRisk returns |target-entry| / max(|entry-stop|, RiskFloor)
func RewardRisk(entry, stop, target float64) float64 {
	return math.Abs(target-entry) / math.Max(math.Abs(entry-stop), RiskFloor)
}

// ValidGeometry reports whether prices are positive and ordered for the direction
func (p *Plan) ValidGeometry() bool {
	if p.Entry <= 0 || p.Stop <= 0 || p.Target <= 0 {
		return false
	}
	switch p.Direction {
	case Bullish:
		return p.Target > p.Entry && p.Entry > p.Stop
	case Bearish:
		return p.Target < p.Entry && p.Entry < p.Stop
	default:
		return false
	}
}

// PlanView is the emitted form of a plan (no ranking score)
type PlanView struct {
	Strategy  string    `json:"strategy"`
	Active    bool      `json:"active"`
	Entry     float64   `json:"entry"`
	Stop      float64   `json:"stop"`
	Target    float64   `json:"target"`
	RR        float64   `json:"rr"`
	Reason    string    `json:"reason"`
	Direction Direction `json:"direction"`
	Horizon   Horizon   `json:"horizon"`
}

// View strips the ranking score and rounds prices for emission
func (p *Plan) View() PlanView {
	return PlanView{
		Strategy:  p.Strategy,
		Active:    true,
		Entry:     Round2(p.Entry),
		Stop:      Round2(p.Stop),
		Target:    Round2(p.Target),
		RR:        Round2(p.RewardRisk),
		Reason:    p.Reason,
		Direction: p.Direction,
		Horizon:   p.Horizon,
	}
}

// Idea pairs a symbol with a candidate plan during ranking
type Idea struct {
	Symbol string
	Plan   Plan
}

// IdeaRecord is the unit of output
type IdeaRecord struct {
	Symbol string   `json:"symbol"`
	Plan   PlanView `json:"plan"`
}
