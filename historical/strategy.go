package historical

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Strategy selects which price of a bar is attributed to a transaction.
type Strategy string

const (
	Open    Strategy = "open"
	High    Strategy = "high"
	Low     Strategy = "low"
	Close   Strategy = "close"
	Nearest Strategy = "nearest"
)

// ErrInvalidArgument matches every *InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError names a strategy the resolver does not support.
type InvalidArgumentError struct {
	Strategy Strategy
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid price selection strategy %q", string(e.Strategy))
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case Open, High, Low, Close, Nearest:
		return st, nil
	}
	return "", &InvalidArgumentError{Strategy: Strategy(s)}
}

// DerivePrice returns the price of bar to attribute to a transaction at ts.
//
// Open, High, Low and Close return the matching field. Nearest returns Open
// when ts is at or before the bar midpoint and Close after it; the exact
// midpoint resolves to Open. ts is not bounds-checked, so offsets before the
// bar start give Open and offsets past its end give Close.
func DerivePrice(bar Bar, ts time.Time, s Strategy) (decimal.Decimal, error) {
	switch s {
	case Open:
		return bar.open, nil
	case High:
		return bar.high, nil
	case Low:
		return bar.low, nil
	case Close:
		return bar.close, nil
	case Nearest:
		if ts.Sub(bar.timestamp) <= bar.duration/2 {
			return bar.open, nil
		}
		return bar.close, nil
	default:
		return decimal.Zero, &InvalidArgumentError{Strategy: s}
	}
}
