package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/domain"
)

const DateLayout = "2006-01-02"

// DayBounds returns [00:00:00.000, 23:59:59.999] of t's calendar date in loc.
func DayBounds(t time.Time, loc *time.Location) domain.DateRange {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return domain.DateRange{From: start, To: end}
}

// ParseDate parses YYYY-MM-DD in loc. An empty string means today.
func ParseDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}
