package strategy

import (
	"math/rand"
	"time"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/indicator"
	"github.com/wonny/ideagen/internal/strategyconfig"
)

func shortCfg() strategyconfig.ShortTerm {
	return strategyconfig.Default().ShortTerm
}

// input builds an Input whose latest bar and latest indicator readings are given directly
func input(bar contracts.PriceBar, readings map[string]float64) *Input {
	snap := indicator.Snapshot{}
	for name, v := range readings {
		snap[name] = indicator.FromFloats([]float64{v})
	}
	return &Input{
		Series: &contracts.Series{Symbol: "test.us", Bars: []contracts.PriceBar{bar}},
		Daily:  snap,
	}
}

func bar(high, low, closePx float64) contracts.PriceBar {
	return contracts.PriceBar{
		Date:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Open:  closePx,
		High:  high,
		Low:   low,
		Close: closePx,
	}
}

func randomWalk(n int, seed int64) *contracts.Series {
	r := rand.New(rand.NewSource(seed))
	start := time.Date(2019, 1, 7, 0, 0, 0, 0, time.UTC)
	bars := make([]contracts.PriceBar, 0, n)
	price := 100.0
	for d := start; len(bars) < n; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		open := price
		price += r.NormFloat64() * 1.5
		if price < 1 {
			price = 1
		}
		bars = append(bars, contracts.PriceBar{
			Date:   d,
			Open:   open,
			High:   max(open, price) + r.Float64(),
			Low:    min(open, price) - r.Float64(),
			Close:  price,
			Volume: 2e6,
		})
	}
	return &contracts.Series{Symbol: "rw.us", Bars: bars, HasVolume: true}
}

// risingWeekdays builds n weekday bars from Monday 2022-01-03 rising 0.1 per day
func risingWeekdays(n int) *contracts.Series {
	bars := make([]contracts.PriceBar, 0, n)
	d := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	for len(bars) < n {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			c := 50 + 0.1*float64(len(bars))
			bars = append(bars, contracts.PriceBar{Date: d, Open: c, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 1e6})
		}
		d = d.AddDate(0, 0, 1)
	}
	return &contracts.Series{Symbol: "up.us", Bars: bars, HasVolume: true}
}
