package transaction

import (
	"fmt"
	"strings"
	"time"
)

// Every layout carries a zone; fractional seconds are accepted after the
// seconds field by time.Parse even though the layouts omit them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05 Z07:00",
}

// ParseTimestamp parses a timestamp that carries an explicit UTC offset.
// Naive timestamps are rejected.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q has no UTC offset or is malformed", s)
}
