package historical

import (
	"fmt"
	"strings"
	"time"
)

// GranularityDuration maps a candle granularity code (M1, H4, D1, ...) to its span.
func GranularityDuration(tf string) (time.Duration, error) {
	switch strings.ToUpper(strings.TrimSpace(tf)) {
	case "S5":
		return 5 * time.Second, nil
	case "S30":
		return 30 * time.Second, nil
	case "M1":
		return time.Minute, nil
	case "M5":
		return 5 * time.Minute, nil
	case "M15":
		return 15 * time.Minute, nil
	case "M30":
		return 30 * time.Minute, nil
	case "H1":
		return time.Hour, nil
	case "H4":
		return 4 * time.Hour, nil
	case "D", "D1":
		return 24 * time.Hour, nil
	case "W", "W1":
		return 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported granularity: %s", tf)
	}
}

// DurationGranularity is the inverse of GranularityDuration.
func DurationGranularity(d time.Duration) (string, error) {
	sec := int64(d / time.Second)
	if sec <= 0 || d%time.Second != 0 {
		return "", fmt.Errorf("invalid granularity duration: %s", d)
	}
	switch {
	case sec < 60:
		return fmt.Sprintf("S%d", sec), nil
	case sec < 3600 && sec%60 == 0:
		return fmt.Sprintf("M%d", sec/60), nil
	case sec < 86400 && sec%3600 == 0:
		return fmt.Sprintf("H%d", sec/3600), nil
	case sec == 7*86400:
		return "W1", nil
	case sec%86400 == 0:
		return fmt.Sprintf("D%d", sec/86400), nil
	}
	return "", fmt.Errorf("cannot map duration: %s", d)
}
