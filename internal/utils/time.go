package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
	layoutClock    = "15:04"
)

// NowLocal returns current time in the system's local timezone; trip
// departures are anchored to it.
func NowLocal() time.Time {
	return time.Now().Local()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// CombineDateClock anchors a HH:MM wall-clock value to a calendar date in the
// local timezone. "07:00:00" is tolerated.
func CombineDateClock(date time.Time, clock string) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	if len(clock) > len(layoutClock) {
		clock = clock[:len(layoutClock)]
	}
	t, err := time.ParseInLocation(layoutClock, clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("format jam tidak valid (HH:MM): %w", err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
