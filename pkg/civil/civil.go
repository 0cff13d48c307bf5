// Package civil maps wall-clock instants onto calendar days in the board's
// fixed civil time zone. Every date key in the store comes from here.
package civil

import (
	"errors"
	"fmt"
	"time"
)

const (
	layoutISO     = "2006-01-02"
	layoutLong    = "January 2, 2006"
	layoutWeekday = "Monday"
)

// DefaultZone is the zone the board runs in unless configured otherwise.
const DefaultZone = "America/Vancouver"

// LoadZone resolves an IANA zone name. A zone that cannot be resolved is an
// error, never a silent fallback to UTC: a wrong offset would skew every
// date key written to the store.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, errors.New("civil: time zone name required")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("civil: resolve zone %q: %w", name, err)
	}
	return loc, nil
}

// Now returns the current instant expressed in zone.
func Now(zone *time.Location) time.Time {
	return time.Now().In(zone)
}

// DateKey formats t's civil date as YYYY-MM-DD. Keys sort chronologically
// under plain string comparison.
func DateKey(t time.Time) string {
	return t.Format(layoutISO)
}

// DateKeyIn returns today's date key in zone.
func DateKeyIn(zone *time.Location) string {
	return DateKey(Now(zone))
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in zone.
func ParseDateKey(key string, zone *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layoutISO, key, zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("civil: parse date key %q: %w", key, err)
	}
	return t, nil
}

// IsBoundaryMinute reports whether t's civil time falls in the one-minute
// window on either side of midnight, 23:59:xx or 00:00:xx. The midnight
// poller runs every 60 seconds and may land on either side of the tick, so
// both minutes count as the boundary.
func IsBoundaryMinute(t time.Time) bool {
	h, m, _ := t.Clock()
	return (h == 23 && m == 59) || (h == 0 && m == 0)
}

// WeekdayLabel returns the full weekday name for a date key, e.g. "Monday".
func WeekdayLabel(key string, zone *time.Location) string {
	t, err := ParseDateKey(key, zone)
	if err != nil {
		return ""
	}
	return t.Format(layoutWeekday)
}

// LongDate returns the long-form date for a date key, e.g. "January 15, 2024".
func LongDate(key string, zone *time.Location) string {
	t, err := ParseDateKey(key, zone)
	if err != nil {
		return key
	}
	return t.Format(layoutLong)
}
