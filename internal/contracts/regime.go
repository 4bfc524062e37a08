package contracts

// Bias is the coarse market direction
type Bias string

const (
	BiasBullish Bias = "bullish"
	BiasNeutral Bias = "neutral"
	BiasBearish Bias = "bearish"
)

// MarketRegime is derived once per run from the benchmark instrument
type MarketRegime struct {
	Score        int      `json:"score"` // -4 ~ +4
	Bias         Bias     `json:"bias"`
	Benchmark    string   `json:"benchmark"`
	Close        float64  `json:"benchmark_close"`
	SMA200       *float64 `json:"benchmark_sma200"` // nil when history < 200 bars
	EMA20GtEMA50 bool     `json:"ema20_gt_ema50"`
	RSI14        *float64 `json:"rsi14"`
	ROC20Pct     float64  `json:"roc20_pct"`
}
