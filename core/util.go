package core

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used for due dates and the reminder cursor.
const DateLayout = "2006-01-02"

var NowFunc = time.Now // mockable

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Today returns the local midnight of NowFunc() in loc.
func Today(loc *time.Location) time.Time {
	return Midnight(NowFunc().In(loc))
}

// Midnight truncates t to the start of its calendar day, keeping its location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// FormatDate formats t as a calendar date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
