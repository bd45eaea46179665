package utils

import (
	"strings"
	"time"
)

// dateLayouts are the textual date shapes accepted during comparison.
// DD/MM/YYYY is what the cards print; the rest cover how reference
// records tend to store dates.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"2 January 2006",
	"02 Jan 2006",
}

// ParseFlexibleDate parses a textual date in any accepted layout.
func ParseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DatesEqual compares two textual dates on the date component only,
// ignoring time of day, so "01/01/1990" and "1990-01-01" agree. When
// either side cannot be parsed the comparison falls back to trimmed
// case-insensitive string equality.
func DatesEqual(a, b string) bool {
	ta, okA := ParseFlexibleDate(a)
	tb, okB := ParseFlexibleDate(b)
	if okA && okB {
		y1, m1, d1 := ta.Date()
		y2, m2, d2 := tb.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
