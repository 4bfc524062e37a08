// Package weekly resamples daily bars into Friday-anchored weekly bars.
package weekly

import (
	"time"

	"github.com/wonny/ideagen/internal/contracts"
)

// Anchor is the weekday that closes a weekly bucket
const Anchor = time.Friday

// Options controls resampling
type Options struct {
	// DropPartial drops the trailing bucket while its week is still open
	DropPartial bool
	// AsOf is the run date. When set, the trailing week is complete once AsOf reaches its
	// anchor day, so a holiday-shortened week ending Thursday is kept. Zero falls back to
	// the last daily bar.
	AsOf time.Time
}

// AnchorDate returns the anchor day of the week containing d (Saturday and Sunday roll forward)
func AnchorDate(d time.Time) time.Time {
	y, m, day := d.Date()
	date := time.Date(y, m, day, 0, 0, 0, 0, d.Location())
	offset := (int(Anchor) - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, offset)
}

// Resample aggregates a daily series into weekly bars:
// open=first, high=max, low=min, close=last, volume=sum. Weeks without bars produce nothing.
// ⭐ SSOT: 주봉 변환은 여기서만
func Resample(daily *contracts.Series, opts Options) *contracts.Series {
	out := &contracts.Series{
		Symbol:    daily.Symbol,
		Interval:  "w",
		HasVolume: daily.HasVolume,
		Bars:      make([]contracts.PriceBar, 0, len(daily.Bars)/5+1),
	}

	var cur contracts.PriceBar
	var lastDaily time.Time
	open := false
	for _, b := range daily.Bars {
		anchor := AnchorDate(b.Date)
		if open && !anchor.Equal(cur.Date) {
			out.Bars = append(out.Bars, cur)
			open = false
		}
		if !open {
			cur = contracts.PriceBar{Date: anchor, Open: b.Open, High: b.High, Low: b.Low}
			open = true
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
		lastDaily = b.Date
	}

	if open && !(opts.DropPartial && weekOpen(cur.Date, lastDaily, opts.AsOf)) {
		out.Bars = append(out.Bars, cur)
	}
	return out
}

// weekOpen reports whether the week anchored at anchor has not closed yet
func weekOpen(anchor, lastDaily, asOf time.Time) bool {
	ref := lastDaily
	if !asOf.IsZero() {
		y, m, d := asOf.Date()
		ref = time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	}
	return anchor.After(dateOnly(ref))
}

func dateOnly(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}
