package garden

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day = 24 * time.Hour

	// DefaultInterval applies when a frequency cannot be read.
	DefaultInterval = 7 * day
)

var firstNumber = regexp.MustCompile(`\d+`)

// ParseFrequency reads the catalog's free-text frequencies: "Daily in
// summer", "Weekly", "Twice a week", "Every 2-3 weeks", "Every 10 days",
// "Monthly". Ranges take their lower bound.
func ParseFrequency(frequency string) time.Duration {
	f := strings.ToLower(strings.TrimSpace(frequency))
	switch {
	case f == "":
		return DefaultInterval
	case strings.Contains(f, "daily"), strings.Contains(f, "every day"):
		return day
	case strings.Contains(f, "twice a week"):
		return 3 * day
	case strings.Contains(f, "twice a month"):
		return 14 * day
	}

	unit := day
	switch {
	case strings.Contains(f, "week"):
		unit = 7 * day
	case strings.Contains(f, "month"):
		unit = 30 * day
	case !strings.Contains(f, "day"):
		return DefaultInterval
	}

	if m := firstNumber.FindString(f); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			return time.Duration(n) * unit
		}
	}
	return unit
}
