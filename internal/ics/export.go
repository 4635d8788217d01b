package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/scheduler"
)

// Feed is everything rendered into one user's calendar.
type Feed struct {
	Username    string
	Now         time.Time
	HorizonDays int
	Sessions    []models.ClassSession
	Assignments []models.Assignment
	Events      []models.CalendarEvent
	Suggestions []models.DailySuggestion
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// Build renders the feed. Class sessions become weekly recurring events
// that stop at the horizon, assignments become all-day events, and
// imported events and suggestions become one-hour blocks. Entries that
// cannot be rendered are returned as skipped.
func Build(f Feed) (*ical.Calendar, []error) {
	if f.Now.IsZero() {
		f.Now = time.Now()
	}
	if f.HorizonDays <= 0 {
		f.HorizonDays = constants.DefaultWeekHorizonDays
	}
	today := models.DateOf(f.Now)
	horizon := today.AddDate(0, 0, f.HorizonDays)
	stamp := f.Now.UTC()

	cal := ical.NewCalendarFor(constants.AppName)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(fmt.Sprintf("%s week plan", f.Username))

	var skipped []error

	for _, s := range f.Sessions {
		if err := addSession(cal, s, horizon, stamp); err != nil {
			skipped = append(skipped, err)
		}
	}

	for _, a := range f.Assignments {
		due, err := a.Due(today.Location())
		if err != nil {
			skipped = append(skipped, fmt.Errorf("assignment %q: %w", a.Name, err))
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("assignment-%s@%s", a.ID, constants.AppName))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(a.Name)
		ev.SetAllDayStartAt(due)
		ev.SetAllDayEndAt(due.AddDate(0, 0, 1))
		ev.SetColor(constants.ColorAssignment)
		ev.AddCategory(string(models.EventKindAssignment))
	}

	for _, e := range f.Events {
		uid := e.UID
		if uid == "" {
			uid = e.ID
		}
		ev := cal.AddEvent(fmt.Sprintf("%s-%d", uid, e.Begin.Unix()))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Name)
		ev.SetStartAt(e.Begin)
		ev.SetEndAt(e.Begin.Add(constants.SuggestionBlockDuration))
		ev.SetColor(constants.ColorImported)
		ev.AddCategory(string(models.EventKindImported))
	}

	for _, s := range f.Suggestions {
		for _, inst := range scheduler.SuggestionEvents(s) {
			ev := cal.AddEvent(fmt.Sprintf("%s-%s-%s@%s", inst.Kind, s.Date.Format(constants.DateFormat), inst.Title, constants.AppName))
			ev.SetDtStampTime(stamp)
			ev.SetSummary(inst.Title)
			ev.SetStartAt(inst.Start)
			ev.SetEndAt(inst.End)
			ev.SetColor(inst.Color)
			ev.AddCategory(string(inst.Kind))
		}
	}

	l := logger.Component("ics")
	for _, err := range skipped {
		l.Warn("entry left out of calendar feed", "user", f.Username, "err", err)
	}
	return cal, skipped
}

// addSession writes one weekly event anchored at the session's first
// meeting. Sessions whose first meeting falls after horizon are omitted.
func addSession(cal *ical.Calendar, s models.ClassSession, horizon, stamp time.Time) error {
	var first *scheduler.Occurrence
	for occ := range scheduler.Occurrences(s, horizon) {
		first = &occ
		break
	}
	if first == nil {
		return nil
	}

	days := make([]rrule.Weekday, 0, len(s.Weekdays))
	for _, wd := range s.Weekdays {
		d, ok := rruleWeekdays[wd]
		if !ok {
			return fmt.Errorf("class %q: invalid weekday %d", s.Name, int(wd))
		}
		days = append(days, d)
	}
	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: days,
		Until:     horizon.Add(24*time.Hour - time.Second).UTC(),
	}

	ev := cal.AddEvent(fmt.Sprintf("class-%s@%s", s.ID, constants.AppName))
	ev.SetDtStampTime(stamp)
	ev.SetSummary(s.Name)
	setWallClock(ev, ical.ComponentPropertyDtStart, first.Start)
	setWallClock(ev, ical.ComponentPropertyDtEnd, first.End)
	ev.AddRrule(opt.RRuleString())
	ev.SetColor(constants.ColorClass)
	ev.AddCategory(string(models.EventKindClass))
	return nil
}

// setWallClock writes t as local wall-clock time so that BYDAY expands on
// the class's own weekdays. Named zones carry a TZID; Local is floating.
func setWallClock(ev *ical.VEvent, prop ical.ComponentProperty, t time.Time) {
	switch name := t.Location().String(); name {
	case "UTC":
		ev.SetProperty(prop, t.Format(rrule.DateTimeFormat))
	case "Local":
		ev.SetProperty(prop, t.Format(rrule.LocalDateTimeFormat))
	default:
		ev.SetProperty(prop, t.Format(rrule.LocalDateTimeFormat), ical.WithTZID(name))
	}
}

// Write renders the feed to w.
func Write(w io.Writer, f Feed) error {
	cal, _ := Build(f)
	return cal.SerializeTo(w)
}
