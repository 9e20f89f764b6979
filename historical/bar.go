// Package historical models OHLCV bars and derives the price to attribute
// to a transaction that happened inside a bar.
package historical

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidBar = errors.New("invalid bar")

// Bar is one OHLCV sample covering [Timestamp, Timestamp+Duration).
type Bar struct {
	duration  time.Duration
	timestamp time.Time
	open      decimal.Decimal
	high      decimal.Decimal
	low       decimal.Decimal
	close     decimal.Decimal
	volume    decimal.Decimal
}

// NewBar validates the OHLC envelope and returns the bar. start is stored in UTC.
func NewBar(start time.Time, duration time.Duration, open, high, low, close, volume decimal.Decimal) (Bar, error) {
	switch {
	case duration <= 0:
		return Bar{}, fmt.Errorf("%w: duration %s must be positive", ErrInvalidBar, duration)
	case low.GreaterThan(high):
		return Bar{}, fmt.Errorf("%w: low %s above high %s", ErrInvalidBar, low, high)
	case open.LessThan(low) || open.GreaterThan(high):
		return Bar{}, fmt.Errorf("%w: open %s outside [%s, %s]", ErrInvalidBar, open, low, high)
	case close.LessThan(low) || close.GreaterThan(high):
		return Bar{}, fmt.Errorf("%w: close %s outside [%s, %s]", ErrInvalidBar, close, low, high)
	case volume.IsNegative():
		return Bar{}, fmt.Errorf("%w: negative volume %s", ErrInvalidBar, volume)
	}
	return Bar{
		duration:  duration,
		timestamp: start.UTC(),
		open:      open,
		high:      high,
		low:       low,
		close:     close,
		volume:    volume,
	}, nil
}

func (b Bar) Duration() time.Duration { return b.duration }
func (b Bar) Timestamp() time.Time    { return b.timestamp }
func (b Bar) Open() decimal.Decimal   { return b.open }
func (b Bar) High() decimal.Decimal   { return b.high }
func (b Bar) Low() decimal.Decimal    { return b.low }
func (b Bar) Close() decimal.Decimal  { return b.close }
func (b Bar) Volume() decimal.Decimal { return b.volume }
func (b Bar) End() time.Time          { return b.timestamp.Add(b.duration) }

// Contains reports whether ts falls in [Timestamp, End).
func (b Bar) Contains(ts time.Time) bool {
	return !ts.Before(b.timestamp) && ts.Before(b.End())
}

// DerivePrice is DerivePrice(b, ts, s).
func (b Bar) DerivePrice(ts time.Time, s Strategy) (decimal.Decimal, error) {
	return DerivePrice(b, ts, s)
}

func (b Bar) String() string {
	return fmt.Sprintf("Bar(%s %s o=%s h=%s l=%s c=%s v=%s)",
		b.timestamp.Format(time.RFC3339), b.duration, b.open, b.high, b.low, b.close, b.volume)
}
