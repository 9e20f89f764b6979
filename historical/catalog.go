package historical

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrNoBar is returned when no loaded bar covers the requested instant.
var ErrNoBar = errors.New("no bar covers timestamp")

// Catalog indexes one Series per asset. Safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	series map[string]*Series
}

func NewCatalog() *Catalog {
	return &Catalog{series: make(map[string]*Series)}
}

// Add registers s under its asset, replacing any earlier series.
func (c *Catalog) Add(s *Series) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series[strings.ToUpper(s.Asset)] = s
}

func (c *Catalog) Series(asset string) (*Series, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.series[strings.ToUpper(asset)]
	return s, ok
}

// BarAt returns the bar of asset that contains ts.
func (c *Catalog) BarAt(_ context.Context, asset string, ts time.Time) (Bar, error) {
	s, ok := c.Series(asset)
	if !ok {
		return Bar{}, fmt.Errorf("%w: no series for %s", ErrNoBar, asset)
	}
	b, ok := s.Find(ts)
	if !ok {
		return Bar{}, fmt.Errorf("%w: %s at %s", ErrNoBar, asset, ts.UTC().Format(time.RFC3339))
	}
	return b, nil
}
