package stooq

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/ideagen/internal/contracts"
)

var requiredColumns = []string{"date", "open", "high", "low", "close"}

// Parse converts a Stooq CSV body into an ascending, de-duplicated series.
// Rows with a missing or unparseable field are dropped.
func Parse(r io.Reader, symbol, interval string) (*contracts.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if len(header) == 1 && strings.EqualFold(strings.TrimSpace(header[0]), "no data") {
		return nil, ErrNoData
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	volumeIdx, hasVolume := columns["volume"]

	byDate := make(map[time.Time]contracts.PriceBar)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		bar, ok := parseRow(record, columns)
		if !ok {
			continue
		}
		if hasVolume {
			v, ok := parseNumber(record, volumeIdx)
			if !ok {
				continue
			}
			bar.Volume = v
		}
		byDate[bar.Date] = bar
	}

	if len(byDate) == 0 {
		return nil, ErrNoData
	}

	bars := make([]contracts.PriceBar, 0, len(byDate))
	for _, bar := range byDate {
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	return &contracts.Series{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      bars,
		HasVolume: hasVolume,
	}, nil
}

func parseRow(record []string, columns map[string]int) (contracts.PriceBar, bool) {
	idx := columns["date"]
	if idx >= len(record) {
		return contracts.PriceBar{}, false
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[idx]))
	if err != nil {
		return contracts.PriceBar{}, false
	}

	var prices [4]float64
	for i, name := range requiredColumns[1:] {
		v, ok := parseNumber(record, columns[name])
		if !ok {
			return contracts.PriceBar{}, false
		}
		prices[i] = v
	}

	return contracts.PriceBar{
		Date:  date,
		Open:  prices[0],
		High:  prices[1],
		Low:   prices[2],
		Close: prices[3],
	}, true
}

func parseNumber(record []string, idx int) (float64, bool) {
	if idx >= len(record) {
		return 0, false
	}
	s := strings.TrimSpace(record[idx])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
