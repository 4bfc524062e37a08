package contracts

import "time"

// PriceBar is one OHLCV bar of a daily or weekly series
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"` // only meaningful when Series.HasVolume
}

// Series is an instrument's price history passed from S0 to S1/S2
// ⭐ SSOT: Bars는 날짜 오름차순, 중복 날짜 없음
type Series struct {
	Symbol    string     `json:"symbol"`
	Interval  string     `json:"interval"` // "d" | "w"
	Bars      []PriceBar `json:"bars"`
	HasVolume bool       `json:"has_volume"`
}

// Len returns the number of bars
func (s *Series) Len() int {
	return len(s.Bars)
}

// Last returns the most recent bar
func (s *Series) Last() (PriceBar, bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Tail returns the most recent n bars (or all of them)
func (s *Series) Tail(n int) []PriceBar {
	if n <= 0 || n >= len(s.Bars) {
		return s.Bars
	}
	return s.Bars[len(s.Bars)-n:]
}

// OHLCPoint is one row of the trimmed chart artifact
type OHLCPoint struct {
	Time  string  `json:"time"` // YYYY-MM-DD
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// ToOHLC trims the series to the last n bars rounded to 2 decimals
func (s *Series) ToOHLC(n int) []OHLCPoint {
	tail := s.Tail(n)
	points := make([]OHLCPoint, 0, len(tail))
	for _, b := range tail {
		points = append(points, OHLCPoint{
			Time:  b.Date.Format("2006-01-02"),
			Open:  Round2(b.Open),
			High:  Round2(b.High),
			Low:   Round2(b.Low),
			Close: Round2(b.Close),
		})
	}
	return points
}
