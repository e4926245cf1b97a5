package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as its UTC calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// DayBounds returns the UTC half-open window [start, end) of the
// calendar day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// Yesterday returns the calendar date of the day before t, UTC.
func Yesterday(t time.Time) time.Time {
	start, _ := DayBounds(t)
	return start.AddDate(0, 0, -1)
}
