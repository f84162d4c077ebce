// Package duration parses the human-friendly lookback strings accepted
// by the --since flag.
package duration

import (
	"fmt"
	"time"
)

// Parse parses lookback strings like "12h", "3d", "2w" and returns the
// moment that far in the past from now.
func Parse(s string) (time.Time, error) {
	now := time.Now()

	var n int
	var unit string
	if _, err := fmt.Sscanf(s, "%d%s", &n, &unit); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration format: %s (use e.g., 12h, 3d, 2w)", s)
	}
	if n < 0 {
		return time.Time{}, fmt.Errorf("duration must be positive: %s", s)
	}

	var d time.Duration
	switch unit {
	case "m", "min", "mins":
		d = time.Duration(n) * time.Minute
	case "h", "hr", "hrs", "hour", "hours":
		d = time.Duration(n) * time.Hour
	case "d", "day", "days":
		d = time.Duration(n) * 24 * time.Hour
	case "w", "wk", "wks", "week", "weeks":
		d = time.Duration(n) * 7 * 24 * time.Hour
	case "mo", "month", "months":
		d = time.Duration(n) * 30 * 24 * time.Hour
	default:
		return time.Time{}, fmt.Errorf("unknown duration unit: %s", unit)
	}

	return now.Add(-d), nil
}
