package historical

import (
	"fmt"
	"sort"
	"time"
)

// Series is an ordered run of same-duration bars for one asset.
type Series struct {
	Asset    string
	Source   string
	Duration time.Duration

	bars       []Bar
	duplicates int
}

// Gap is a stretch of missing bars between two present ones.
type Gap struct {
	Start   time.Time
	Missing int
}

// NewSeries sorts bars by start time. Bars with a start already seen are
// dropped (keep-first). All bars must share one duration.
func NewSeries(asset string, bars []Bar) (*Series, error) {
	s := &Series{Asset: asset}
	if len(bars) == 0 {
		return s, nil
	}

	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].timestamp.Before(sorted[j].timestamp)
	})

	s.Duration = sorted[0].duration
	s.bars = make([]Bar, 0, len(sorted))
	for _, b := range sorted {
		if b.duration != s.Duration {
			return nil, fmt.Errorf("series %s: mixed bar durations %s and %s", asset, s.Duration, b.duration)
		}
		if n := len(s.bars); n > 0 && s.bars[n-1].timestamp.Equal(b.timestamp) {
			s.duplicates++
			continue
		}
		s.bars = append(s.bars, b)
	}
	return s, nil
}

func (s *Series) Len() int        { return len(s.bars) }
func (s *Series) Duplicates() int { return s.duplicates }

// Bars returns a copy of the bars in start order.
func (s *Series) Bars() []Bar {
	out := make([]Bar, len(s.bars))
	copy(out, s.bars)
	return out
}

// Find returns the bar whose interval contains ts.
func (s *Series) Find(ts time.Time) (Bar, bool) {
	// first bar starting after ts; the candidate is the one before it
	i := sort.Search(len(s.bars), func(i int) bool {
		return s.bars[i].timestamp.After(ts)
	})
	if i == 0 {
		return Bar{}, false
	}
	b := s.bars[i-1]
	if !b.Contains(ts) {
		return Bar{}, false
	}
	return b, true
}

// Gaps reports every hole between consecutive bars.
func (s *Series) Gaps() []Gap {
	var gaps []Gap
	for i := 1; i < len(s.bars); i++ {
		want := s.bars[i-1].End()
		got := s.bars[i].timestamp
		if got.After(want) {
			gaps = append(gaps, Gap{
				Start:   want,
				Missing: int(got.Sub(want) / s.Duration),
			})
		}
	}
	return gaps
}
