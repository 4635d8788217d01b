package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
)

// TimeOfDay is a wall-clock time expressed in minutes from midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayOf returns the wall-clock time of t, truncated to the minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS". Seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := constants.TimeFormat
	if strings.Count(s, ":") == 2 {
		layout = constants.TimeFormatSeconds
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, errors.NewParseError("time", s, err)
	}
	return TimeOfDayOf(t), nil
}

// MustTimeOfDay is ParseTimeOfDay for constants; it panics on bad input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String renders HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ISO renders HH:MM:SS, the persisted form.
func (t TimeOfDay) ISO() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute())
}

// On places the time of day on the calendar date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
}

// Within reports whether lo <= t <= hi.
func (t TimeOfDay) Within(lo, hi TimeOfDay) bool {
	return lo <= t && t <= hi
}

// Ptr returns a pointer to a copy of t.
func (t TimeOfDay) Ptr() *TimeOfDay {
	return &t
}
