package indicator

import (
	"math"

	"github.com/wonny/ideagen/internal/contracts"
)

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|); the first bar uses high-low
func TrueRange(bars []contracts.PriceBar) Series {
	out := make(Series, len(bars))
	for i, b := range bars {
		tr := b.High - b.Low
		if i > 0 {
			pc := bars[i-1].Close
			tr = math.Max(tr, math.Max(math.Abs(b.High-pc), math.Abs(b.Low-pc)))
		}
		out[i] = Some(tr)
	}
	return out
}

// ATR is the simple rolling mean of true range over n bars
func ATR(bars []contracts.PriceBar, n int) Series {
	return RollingMean(TrueRange(bars), n)
}

// Closes extracts the close column
func Closes(bars []contracts.PriceBar) Series {
	out := make(Series, len(bars))
	for i, b := range bars {
		out[i] = Some(b.Close)
	}
	return out
}

// DollarVolume is close*volume per bar
func DollarVolume(bars []contracts.PriceBar) Series {
	out := make(Series, len(bars))
	for i, b := range bars {
		out[i] = Some(b.Close * b.Volume)
	}
	return out
}
