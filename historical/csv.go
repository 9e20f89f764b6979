package historical

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical candle CSV: time,instrument,granularity,complete,volume,o,h,l,c
var CSVHeader = []string{"time", "instrument", "granularity", "complete", "volume", "o", "h", "l", "c"}

const (
	colTime = iota
	colInstrument
	colGranularity
	colComplete
	colVolume
	colOpen
	colHigh
	colLow
	colClose
)

// ReadStats counts the lines ReadCSV did not turn into bars.
type ReadStats struct {
	Bars       int
	Incomplete int
	BadLines   int
}

// ReadCSV reads canonical candle rows into a Series for asset. Incomplete
// candles are skipped; malformed lines are counted and skipped.
func ReadCSV(r io.Reader, asset string) (*Series, ReadStats, error) {
	var stats ReadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var bars []Bar
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read candles: %w", err)
		}
		if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "time") {
			continue
		}
		if len(rec) < len(CSVHeader) {
			stats.BadLines++
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rec[colComplete]), "false") {
			stats.Incomplete++
			continue
		}

		b, err := parseBar(rec)
		if err != nil {
			stats.BadLines++
			continue
		}
		bars = append(bars, b)
	}

	s, err := NewSeries(asset, bars)
	if err != nil {
		return nil, stats, err
	}
	stats.Bars = s.Len()
	return s, stats, nil
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path, asset string) (*Series, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer f.Close()

	s, stats, err := ReadCSV(f, asset)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	return s, stats, nil
}

func parseBar(rec []string) (Bar, error) {
	start, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(rec[colTime]))
	if err != nil {
		return Bar{}, err
	}
	d, err := GranularityDuration(rec[colGranularity])
	if err != nil {
		return Bar{}, err
	}

	var vals [5]decimal.Decimal
	for i, col := range []int{colOpen, colHigh, colLow, colClose, colVolume} {
		if vals[i], err = decimal.NewFromString(strings.TrimSpace(rec[col])); err != nil {
			return Bar{}, fmt.Errorf("column %s: %w", CSVHeader[col], err)
		}
	}
	return NewBar(start, d, vals[0], vals[1], vals[2], vals[3], vals[4])
}
