package indicator

import "github.com/wonny/ideagen/internal/contracts"

// Indicator names used across strategies
const (
	EMA5   = "ema5"
	EMA10  = "ema10"
	EMA20  = "ema20"
	EMA30  = "ema30"
	EMA50  = "ema50"
	SMA5   = "sma5"
	SMA40  = "sma40"
	SMA200 = "sma200"
	RSI2   = "rsi2"
	RSI14  = "rsi14"
	ATR14  = "atr14"
	ROC20  = "roc20"
	Close  = "close"
)

// Snapshot maps indicator names to series aligned with the bars they were computed from
type Snapshot map[string]Series

// Last returns the latest reading of name (Missing when unknown)
func (s Snapshot) Last(name string) Value {
	return s[name].Last()
}

// Latest unwraps the latest reading of every name, or reports false if any is missing
func (s Snapshot) Latest(names ...string) ([]float64, bool) {
	vals := make([]Value, len(names))
	for i, name := range names {
		vals[i] = s.Last(name)
	}
	return All(vals...)
}

// Daily computes the indicator set evaluated by the daily strategies and the regime classifier
// ⭐ SSOT: 일봉 지표 세트는 여기서만 정의
func Daily(bars []contracts.PriceBar) Snapshot {
	closes := Closes(bars)
	return Snapshot{
		Close:  closes,
		EMA5:   EMA(closes, 5),
		EMA20:  EMA(closes, 20),
		EMA50:  EMA(closes, 50),
		SMA5:   SMA(closes, 5),
		SMA200: SMA(closes, 200),
		RSI2:   RSI(closes, 2),
		RSI14:  RSI(closes, 14),
		ATR14:  ATR(bars, 14),
		ROC20:  ROC(closes, 20),
	}
}

// Weekly computes the indicator set evaluated by the long-horizon strategy
func Weekly(bars []contracts.PriceBar) Snapshot {
	closes := Closes(bars)
	return Snapshot{
		Close: closes,
		SMA40: SMA(closes, 40),
		EMA10: EMA(closes, 10),
		EMA30: EMA(closes, 30),
		RSI14: RSI(closes, 14),
		ATR14: ATR(bars, 14),
	}
}
