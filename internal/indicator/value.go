package indicator

import "math"

// Value is an indicator reading that may be missing
// ⭐ SSOT: 결측값은 0이 아니라 Missing으로 표현하고 그대로 전파
type Value struct {
	v  float64
	ok bool
}

// Missing is the absent reading
var Missing = Value{}

// Some wraps a present reading; NaN and Inf become Missing
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Value{v: v, ok: true}
}

// Get returns the reading and whether it is present
func (x Value) Get() (float64, bool) {
	return x.v, x.ok
}

// IsMissing reports whether the reading is absent
func (x Value) IsMissing() bool {
	return !x.ok
}

// Or returns the reading or def when missing
func (x Value) Or(def float64) float64 {
	if !x.ok {
		return def
	}
	return x.v
}

// Map applies f when the reading is present
func (x Value) Map(f func(float64) float64) Value {
	if !x.ok {
		return Missing
	}
	return Some(f(x.v))
}

// Map2 combines two readings; missing if either input is missing
func Map2(a, b Value, f func(a, b float64) float64) Value {
	if !a.ok || !b.ok {
		return Missing
	}
	return Some(f(a.v, b.v))
}

// All unwraps every reading, or reports false if any is missing
func All(vals ...Value) ([]float64, bool) {
	out := make([]float64, len(vals))
	for i, x := range vals {
		if !x.ok {
			return nil, false
		}
		out[i] = x.v
	}
	return out, true
}

// Series is a sequence of readings aligned index-for-index with a bar series
type Series []Value

// FromFloats wraps raw values as present readings
func FromFloats(xs []float64) Series {
	out := make(Series, len(xs))
	for i, x := range xs {
		out[i] = Some(x)
	}
	return out
}

// At returns the reading at i; negative i counts from the end
func (s Series) At(i int) Value {
	if i < 0 {
		i += len(s)
	}
	if i < 0 || i >= len(s) {
		return Missing
	}
	return s[i]
}

// Last returns the most recent reading
func (s Series) Last() Value {
	return s.At(-1)
}

// Greater reports a > b; false when either reading is missing
func Greater(a, b Value) bool {
	v, ok := All(a, b)
	return ok && v[0] > v[1]
}
