package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD date in loc. An empty value means today.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if value == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseTimestamp accepts RFC3339 or a bare date. A bare date used as the
// end of a range covers the whole day.
func ParseTimestamp(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := ParseDate(value, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
