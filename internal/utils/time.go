package utils

import (
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayFromSettings returns midnight of the current day in the configured timezone.
func TodayFromSettings(settings models.Settings) (time.Time, error) {
	now, err := NowInTimezone(settings.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	return models.DateOf(now), nil
}

// ResolveInstant parses an RFC 3339 instant, or returns the current time in
// the configured timezone when s is empty.
func ResolveInstant(s string, settings models.Settings) (time.Time, error) {
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	if s == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t.In(loc), nil
	}
	// Accept a local wall-clock instant without offset as well.
	t, err2 := time.ParseInLocation("2006-01-02T15:04:05", s, loc)
	if err2 != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q (expected RFC 3339): %w", s, err)
	}
	return t, nil
}

// ResolveDate parses a YYYY-MM-DD date in the configured timezone, or
// returns today when s is empty.
func ResolveDate(s string, settings models.Settings) (time.Time, error) {
	if s == "" {
		return TodayFromSettings(settings)
	}
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return models.ParseDate(s, loc)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
