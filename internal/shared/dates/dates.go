// Package dates provides the flexible date parsing shared by the field
// matchers and the calendar formatter, plus the month-name lookup table.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// layouts tried in order by Parse. hasTime marks layouts that carry a
// clock component, so callers can tell a bare date from a full timestamp.
var layouts = []struct {
	layout  string
	hasTime bool
}{
	{time.RFC3339, true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
	{"2006/01/02", false},
	{"Jan 2, 2006", false},
	{"January 2, 2006", false},
	{"2 Jan 2006", false},
	{"2 January 2006", false},
}

// monthNumbers maps three-letter month prefixes to zero-padded numbers.
var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Parse parses a date string against the known layouts. The second return
// reports whether the matched layout included a time component. Timestamps
// without an explicit zone are treated as UTC.
func Parse(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, fmt.Errorf("empty date string")
	}
	for _, l := range layouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t, l.hasTime, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized date format: %q", s)
}

// MonthNumber resolves a month name or abbreviation ("Nov", "november") to
// its zero-padded number. Returns false for unknown names.
func MonthNumber(name string) (string, bool) {
	if len(name) < 3 {
		return "", false
	}
	n, ok := monthNumbers[strings.ToLower(name[:3])]
	return n, ok
}

// ISODate formats a timestamp as YYYY-MM-DD in UTC.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ClockTime formats a timestamp as HH:MM in UTC.
func ClockTime(t time.Time) string {
	return t.UTC().Format("15:04")
}

// ExpandYear expands a two-digit year to the 2000s ("24" -> "2024").
// Four-digit years pass through unchanged.
func ExpandYear(y string) string {
	if len(y) == 2 {
		return "20" + y
	}
	return y
}
