package market

import (
	"fmt"
	"time"
)

// Accepted date layouts at the ingestion boundary. Everything internal is a
// UTC-midnight time.Time; use FormatDate when rendering.
var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006/01/02",
}

// ParseDate parses a date string in any accepted layout and normalizes it
// to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// DateOf truncates t to UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in ISO form (2006-01-02).
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
