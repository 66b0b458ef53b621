// Package wallclock holds the naive local date/time arithmetic used by the
// scheduler: dates are "YYYY-MM-DD", times are "HH:MM", and clock times are
// handled as minutes since midnight.
package wallclock

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultTimezone = "America/Sao_Paulo"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves the salon timezone, falling back to DefaultTimezone and
// then UTC when tzdata is unavailable.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate validates a "YYYY-MM-DD" string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// Weekday returns 0 for Sunday through 6 for Saturday.
func Weekday(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}

// ParseMinutes converts "HH:MM" into minutes since midnight. "24:00" is
// accepted as the end of the day.
func ParseMinutes(hm string) (int, error) {
	if hm == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes is the inverse of ParseMinutes.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Combine places a date and an "HH:MM" clock time in loc.
func Combine(date, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, hm, err)
	}
	return t, nil
}

// Today formats now as a date string in its own location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
