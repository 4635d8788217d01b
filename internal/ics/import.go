// Package ics reads calendar files into one-off events and renders a user's
// week as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/charmbracelet/log"
	"github.com/teambition/rrule-go"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/models"
)

const (
	defaultMaxOccurrences = 500
	untitled              = "(No title)"
)

// ImportOptions controls how recurring components are expanded.
type ImportOptions struct {
	Username string

	// From is the first day of the expansion window. Zero means today.
	From time.Time

	// HorizonDays is the window length; recurring events are expanded over
	// [From, From+HorizonDays] inclusive.
	HorizonDays int

	// MaxOccurrences caps the instances produced by one recurring event.
	MaxOccurrences int
}

// ImportResult holds the events read from a file and the components that
// were skipped.
type ImportResult struct {
	Events  []models.CalendarEvent
	Skipped []error
}

// Parse reads every VEVENT in r. A component without a usable start is
// logged and skipped; the rest of the file is still read. Only an
// unreadable calendar fails the whole call.
func Parse(r io.Reader, opts ImportOptions) (ImportResult, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return ImportResult{}, errors.NewParseError("calendar", "", err)
	}

	if opts.From.IsZero() {
		opts.From = time.Now()
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = constants.DefaultWeekHorizonDays
	}
	if opts.MaxOccurrences <= 0 {
		opts.MaxOccurrences = defaultMaxOccurrences
	}
	rangeStart := models.DateOf(opts.From)
	// Exclusive: midnight after the last horizon day.
	rangeEnd := rangeStart.AddDate(0, 0, opts.HorizonDays+1)

	l := logger.Component("ics")
	var res ImportResult
	for _, ve := range cal.Events() {
		events, err := readEvent(ve, opts, rangeStart, rangeEnd, l)
		if err != nil {
			l.Warn("skipping calendar component", "uid", propValue(ve, ical.ComponentPropertyUniqueId), "err", err)
			res.Skipped = append(res.Skipped, err)
			continue
		}
		res.Events = append(res.Events, events...)
	}

	l.Debug("calendar parsed", "user", opts.Username, "events", len(res.Events), "skipped", len(res.Skipped))
	return res, nil
}

func readEvent(ve *ical.VEvent, opts ImportOptions, rangeStart, rangeEnd time.Time, l *log.Logger) ([]models.CalendarEvent, error) {
	name := strings.TrimSpace(propValue(ve, ical.ComponentPropertySummary))
	if name == "" {
		name = untitled
	}
	uid := propValue(ve, ical.ComponentPropertyUniqueId)

	var (
		start time.Time
		err   error
	)
	if isAllDay(ve.GetProperty(ical.ComponentPropertyDtStart)) {
		start, err = ve.GetAllDayStartAt()
	} else {
		start, err = ve.GetStartAt()
	}
	if err != nil {
		return nil, errors.NewParseError("DTSTART", propValue(ve, ical.ComponentPropertyDtStart), err)
	}

	base := models.CalendarEvent{Username: opts.Username, UID: uid, Name: name}

	rule := propValue(ve, ical.ComponentPropertyRrule)
	if rule == "" {
		base.Begin = start
		return []models.CalendarEvent{base}, nil
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, errors.NewParseError("RRULE", rule, err)
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		loc := start.Location()
		if tz := p.ICalParameters["TZID"]; len(tz) == 1 {
			if tzLoc, err := time.LoadLocation(tz[0]); err == nil {
				loc = tzLoc
			}
		}
		for _, part := range strings.Split(p.Value, ",") {
			ex, err := parseICSTime(strings.TrimSpace(part), loc)
			if err != nil {
				return nil, errors.NewParseError("EXDATE", part, err)
			}
			set.ExDate(ex)
		}
	}

	// iCalendar times have second precision, so the last second before
	// rangeEnd is the inclusive upper bound.
	last := rangeEnd.Add(-time.Second)
	times := set.Between(rangeStart.In(start.Location()), last.In(start.Location()), true)
	if len(times) > opts.MaxOccurrences {
		l.Warn("recurring event truncated", "uid", uid, "cap", opts.MaxOccurrences)
		times = times[:opts.MaxOccurrences]
	}

	events := make([]models.CalendarEvent, 0, len(times))
	for _, t := range times {
		ev := base
		ev.Begin = t
		events = append(events, ev)
	}
	return events, nil
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// isAllDay treats VALUE=DATE or a bare YYYYMMDD value as an all-day start.
func isAllDay(prop *ical.IANAProperty) bool {
	if prop == nil {
		return false
	}
	if vs := prop.ICalParameters["VALUE"]; len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}

// parseICSTime reads the DATE and DATE-TIME forms used by EXDATE.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case v == "":
		return time.Time{}, fmt.Errorf("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
