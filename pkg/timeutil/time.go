package timeutil

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used in narratives and reports
const DateLayout = "2006-01-02"

// Clock returns the current instant. Engines take a Clock (or a resolved "now")
// instead of calling time.Now so that tests can pin it.
type Clock func() time.Time

// Now returns the current time in UTC
// Always use this instead of time.Now() to ensure timezone consistency
func Now() time.Time {
	return time.Now().UTC()
}

// Fixed returns a Clock that always reports t (in UTC)
func Fixed(t time.Time) Clock {
	utc := t.UTC()
	return func() time.Time { return utc }
}

// lenientLayouts are tried in order by ParseLenient
var lenientLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	DateLayout,
	"02/01/2006",
}

// ParseDate parses a date string and returns a UTC time
func ParseDate(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseLenient parses value against the ISO-ish layouts gateways and stores emit.
// When nothing matches it returns fallback and ok=false instead of failing.
func ParseLenient(value string, fallback time.Time) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback.UTC(), false
	}
	for _, layout := range lenientLayouts {
		if t, err := ParseDate(layout, value); err == nil {
			return t, true
		}
	}
	return fallback.UTC(), false
}

// StartOfDay returns the start of the day (midnight) in UTC
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CalendarDaysBetween returns the number of whole calendar days from "from" to "to"
// (negative when "to" is earlier). Time of day is ignored.
func CalendarDaysBetween(from, to time.Time) int {
	delta := StartOfDay(to).Sub(StartOfDay(from))
	return int(math.Round(delta.Hours() / 24))
}

// RoundedDaysBetween returns the elapsed time from "from" to "to" rounded to the nearest day
func RoundedDaysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// FormatDate renders t as an ISO calendar date in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
