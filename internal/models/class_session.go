package models

import (
	"strings"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
)

// ClassSession is a weekly recurring commitment held on two weekdays at the
// same time of day, starting from FirstDate.
type ClassSession struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Name      string         `json:"name"`
	Weekdays  []time.Weekday `json:"weekdays"`
	Start     TimeOfDay      `json:"start"`
	End       TimeOfDay      `json:"end"`
	FirstDate time.Time      `json:"first_date"`
	CreatedAt time.Time      `json:"created_at"`
}

// Validate checks the session invariants: a name, exactly two distinct
// weekdays, and start strictly before end.
func (c ClassSession) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewValidationError("name", "class name is required")
	}
	if len(c.Weekdays) != 2 {
		return errors.NewValidationError("weekdays", "exactly two weekdays are required, got %d", len(c.Weekdays))
	}
	for _, wd := range c.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return errors.NewValidationError("weekdays", "invalid weekday %d", int(wd))
		}
	}
	if c.Weekdays[0] == c.Weekdays[1] {
		return errors.NewValidationError("weekdays", "weekdays must be distinct, got %s twice", c.Weekdays[0])
	}
	if c.Start < 0 || c.End > NewTimeOfDay(24, 0) {
		return errors.NewValidationError("time", "times must fall within the day")
	}
	if c.Start >= c.End {
		return errors.NewValidationError("time", "start %s must be before end %s", c.Start, c.End)
	}
	if c.FirstDate.IsZero() {
		return errors.NewValidationError("first_date", "first occurrence date is required")
	}
	return nil
}

// MeetsOn reports whether the session is held on the given weekday.
func (c ClassSession) MeetsOn(wd time.Weekday) bool {
	for _, d := range c.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// ActiveOn reports whether the session meets on date's weekday and has
// started by that date.
func (c ClassSession) ActiveOn(date time.Time) bool {
	if !c.MeetsOn(date.Weekday()) {
		return false
	}
	return !DateOf(date).Before(DateIn(c.FirstDate, date.Location()))
}

// Covers reports whether t lies inside the half-open [Start, End) window.
func (c ClassSession) Covers(t TimeOfDay) bool {
	return c.Start <= t && t < c.End
}

// FormatDays renders the weekdays as "Mon,Wed".
func (c ClassSession) FormatDays() string {
	days := make([]string, 0, len(c.Weekdays))
	for _, wd := range c.Weekdays {
		days = append(days, wd.String()[:3])
	}
	return strings.Join(days, ",")
}

// DateOf truncates t to midnight of its calendar date, keeping its location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateIn returns midnight of t's calendar date (as read in t's own
// location) placed in loc.
func DateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseDate parses a YYYY-MM-DD string in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, errors.NewParseError("date", s, err)
	}
	return t, nil
}

// ParseClassSession builds a session from user input: a weekday list such as
// "mon,wed", HH:MM start and end times, and a YYYY-MM-DD first date read in
// loc. An empty first date means today. ID and CreatedAt are left for the
// caller to fill in.
func ParseClassSession(username, name, days, start, end, first string, loc *time.Location, today time.Time) (ClassSession, error) {
	weekdays, err := ParseWeekdays(days)
	if err != nil {
		return ClassSession{}, errors.NewParseError("weekdays", days, err)
	}
	startT, err := ParseTimeOfDay(start)
	if err != nil {
		return ClassSession{}, err
	}
	endT, err := ParseTimeOfDay(end)
	if err != nil {
		return ClassSession{}, err
	}
	firstDate := DateIn(today, loc)
	if strings.TrimSpace(first) != "" {
		if firstDate, err = ParseDate(first, loc); err != nil {
			return ClassSession{}, err
		}
	}
	s := ClassSession{
		Username:  username,
		Name:      strings.TrimSpace(name),
		Weekdays:  weekdays,
		Start:     startT,
		End:       endT,
		FirstDate: firstDate,
	}
	return s, s.Validate()
}
