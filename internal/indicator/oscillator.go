package indicator

// RSI is Wilder's relative strength index over n periods.
//
// Gains and losses are smoothed with alpha 1/n starting from zero at the first bar.
// An average loss of zero with a positive average gain reads 100; when both averages are
// zero (a flat window) the reading is missing. The first bar has no change and is missing.
func RSI(xs Series, n int) Series {
	out := make(Series, len(xs))
	if n <= 0 || len(xs) == 0 {
		return out
	}

	alpha := 1.0 / float64(n)
	avgGain, avgLoss := Some(0), Some(0)
	for i := 1; i < len(xs); i++ {
		change := Map2(xs[i], xs[i-1], func(cur, prev float64) float64 { return cur - prev })
		gain := change.Map(func(d float64) float64 {
			if d > 0 {
				return d
			}
			return 0
		})
		loss := change.Map(func(d float64) float64 {
			if d < 0 {
				return -d
			}
			return 0
		})

		avgGain = smooth(avgGain, gain, alpha)
		avgLoss = smooth(avgLoss, loss, alpha)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func smooth(prev, x Value, alpha float64) Value {
	v, ok := x.Get()
	if !ok {
		return Missing
	}
	p, seeded := prev.Get()
	if !seeded {
		return Some(v)
	}
	return Some(alpha*v + (1-alpha)*p)
}

func rsiValue(avgGain, avgLoss Value) Value {
	vals, ok := All(avgGain, avgLoss)
	if !ok {
		return Missing
	}
	gain, loss := vals[0], vals[1]
	if loss == 0 {
		if gain == 0 {
			return Missing
		}
		return Some(100)
	}
	return Some(100 - 100/(1+gain/loss))
}
