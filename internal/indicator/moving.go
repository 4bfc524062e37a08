package indicator

// RollingSum sums each window of n readings; a window holding a missing reading is missing
func RollingSum(xs Series, n int) Series {
	out := make(Series, len(xs))
	if n <= 0 {
		return out
	}

	for i := n - 1; i < len(xs); i++ {
		var sum float64
		complete := true
		for _, x := range xs[i-n+1 : i+1] {
			v, ok := x.Get()
			if !ok {
				complete = false
				break
			}
			sum += v
		}
		if complete {
			out[i] = Some(sum)
		}
	}
	return out
}

// RollingMean averages each window of n readings
func RollingMean(xs Series, n int) Series {
	sums := RollingSum(xs, n)
	out := make(Series, len(xs))
	for i, s := range sums {
		out[i] = s.Map(func(v float64) float64 { return v / float64(n) })
	}
	return out
}

// SMA is the simple moving average over n periods; the first n-1 readings are missing
func SMA(xs Series, n int) Series {
	return RollingMean(xs, n)
}

// EMA is the exponential moving average with alpha 2/(n+1), seeded from the first reading
func EMA(xs Series, n int) Series {
	return ewm(xs, 2.0/(float64(n)+1.0))
}

// ewm runs a recursive (adjust=false) exponential mean. A missing input yields a missing
// output and restarts the seed at the next present reading.
func ewm(xs Series, alpha float64) Series {
	out := make(Series, len(xs))
	prev := Missing
	for i, x := range xs {
		v, ok := x.Get()
		if !ok {
			prev = Missing
			continue
		}
		if p, seeded := prev.Get(); seeded {
			prev = Some(alpha*v + (1-alpha)*p)
		} else {
			prev = Some(v)
		}
		out[i] = prev
	}
	return out
}

// ROC is the rate of change xs[i]/xs[i-lookback] - 1
func ROC(xs Series, lookback int) Series {
	out := make(Series, len(xs))
	for i := lookback; i < len(xs); i++ {
		out[i] = Map2(xs[i], xs[i-lookback], func(cur, past float64) float64 {
			return cur/past - 1
		})
	}
	return out
}
