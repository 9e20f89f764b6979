package historical

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const candleCSV = `time,instrument,granularity,complete,volume,o,h,l,c
2024-01-01T00:02:00Z,BTC_USD,M1,true,7,42010,42030,42000,42020
2024-01-01T00:00:00Z,BTC_USD,M1,true,10,42000,42100,41900,42050
2024-01-01T00:01:00Z,BTC_USD,M1,true,12,42050,42060,41990,42010
2024-01-01T00:01:00Z,BTC_USD,M1,true,99,1,1,1,1
2024-01-01T00:03:00Z,BTC_USD,M1,false,3,42020,42020,42020,42020
2024-01-01T00:05:00Z,BTC_USD,M1,true,4,42100,42200,42000,42150
not-a-time,BTC_USD,M1,true,1,1,1,1,1
2024-01-01T00:06:00Z,BTC_USD,M1,true,1,5,1,1,1
short,row
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	s, stats, err := ReadCSV(strings.NewReader(candleCSV), "BTC")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Bars)
	assert.Equal(t, 1, stats.Incomplete)
	assert.Equal(t, 3, stats.BadLines)
	assert.Equal(t, 1, s.Duplicates())
	assert.Equal(t, time.Minute, s.Duration)

	bars := s.Bars()
	require.Len(t, bars, 4)
	assert.True(t, bars[0].Timestamp().Before(bars[1].Timestamp()))
	// keep-first on duplicate starts
	assert.Equal(t, "42050", bars[1].Open().String())
}

func TestSeriesFind(t *testing.T) {
	t.Parallel()

	s, _, err := ReadCSV(strings.NewReader(candleCSV), "BTC")
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	b, ok := s.Find(base.Add(90 * time.Second))
	require.True(t, ok)
	assert.Equal(t, base.Add(time.Minute), b.Timestamp())

	b, ok = s.Find(base)
	require.True(t, ok)
	assert.Equal(t, base, b.Timestamp())

	_, ok = s.Find(base.Add(-time.Second))
	assert.False(t, ok)

	// 00:03 was incomplete and 00:04 is absent
	_, ok = s.Find(base.Add(3*time.Minute + 10*time.Second))
	assert.False(t, ok)

	_, ok = s.Find(base.Add(time.Hour))
	assert.False(t, ok)
}

func TestSeriesGaps(t *testing.T) {
	t.Parallel()

	s, _, err := ReadCSV(strings.NewReader(candleCSV), "BTC")
	require.NoError(t, err)

	gaps := s.Gaps()
	require.Len(t, gaps, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 3, 0, 0, time.UTC), gaps[0].Start)
	assert.Equal(t, 2, gaps[0].Missing)
}

func TestNewSeriesMixedDurations(t *testing.T) {
	t.Parallel()

	a, err := NewBar(barStart, time.Minute, d("1"), d("1"), d("1"), d("1"), d("0"))
	require.NoError(t, err)
	b, err := NewBar(barStart.Add(time.Hour), time.Hour, d("1"), d("1"), d("1"), d("1"), d("0"))
	require.NoError(t, err)

	_, err = NewSeries("BTC", []Bar{a, b})
	assert.Error(t, err)
}

func TestCatalogBarAt(t *testing.T) {
	t.Parallel()

	s, _, err := ReadCSV(strings.NewReader(candleCSV), "btc")
	require.NoError(t, err)

	c := NewCatalog()
	c.Add(s)

	ts := time.Date(2024, 1, 1, 0, 0, 20, 0, time.UTC)
	b, err := c.BarAt(context.Background(), "BTC", ts)
	require.NoError(t, err)
	assert.Equal(t, "42000", b.Open().String())

	_, err = c.BarAt(context.Background(), "ETH", ts)
	assert.ErrorIs(t, err, ErrNoBar)

	_, err = c.BarAt(context.Background(), "BTC", ts.Add(24*time.Hour))
	assert.ErrorIs(t, err, ErrNoBar)
}

func TestGranularity(t *testing.T) {
	t.Parallel()

	for _, tf := range []string{"S5", "M1", "M5", "M15", "M30", "H1", "H4", "W1"} {
		dur, err := GranularityDuration(tf)
		require.NoError(t, err, tf)
		back, err := DurationGranularity(dur)
		require.NoError(t, err, tf)
		assert.Equal(t, tf, back)
	}

	dur, err := GranularityDuration("D")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, dur)

	_, err = GranularityDuration("Y1")
	assert.Error(t, err)
	_, err = DurationGranularity(1500 * time.Millisecond)
	assert.Error(t, err)
}
