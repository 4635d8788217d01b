package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/models"
)

// ClassEvents projects every class occurrence up to horizon into timed events.
func ClassEvents(sessions []models.ClassSession, horizon time.Time) []models.CalendarEventInstance {
	var events []models.CalendarEventInstance
	for _, occ := range ExpandAll(sessions, horizon) {
		events = append(events, models.CalendarEventInstance{
			Title: occ.Session.Name,
			Start: occ.Start,
			End:   occ.End,
			Color: constants.ColorClass,
			Kind:  models.EventKindClass,
		})
	}
	return events
}

// AssignmentEvents places each assignment as an all-day event on its due
// date. A malformed due date is returned as a parse error naming the
// assignment.
func AssignmentEvents(assignments []models.Assignment, loc *time.Location) ([]models.CalendarEventInstance, error) {
	events := make([]models.CalendarEventInstance, 0, len(assignments))
	for _, a := range assignments {
		due, err := a.Due(loc)
		if err != nil {
			return nil, fmt.Errorf("assignment %q: %w", a.Name, err)
		}
		events = append(events, models.CalendarEventInstance{
			Title:  a.Name,
			Start:  due,
			End:    due,
			Color:  constants.ColorAssignment,
			AllDay: true,
			Kind:   models.EventKindAssignment,
		})
	}
	return events, nil
}

// SuggestionEvents turns a day's meal and exercise suggestions into
// one-hour events.
func SuggestionEvents(s models.DailySuggestion) []models.CalendarEventInstance {
	var events []models.CalendarEventInstance
	add := func(c constants.SuggestionCategory, color string, kind models.EventKind) {
		t := s.Category(c)
		if t == nil {
			return
		}
		start := t.On(s.Date)
		events = append(events, models.CalendarEventInstance{
			Title: titleCase(string(c)),
			Start: start,
			End:   start.Add(constants.SuggestionBlockDuration),
			Color: color,
			Kind:  kind,
		})
	}
	add(constants.CategoryBreakfast, constants.ColorMeal, models.EventKindMeal)
	add(constants.CategoryLunch, constants.ColorMeal, models.EventKindMeal)
	add(constants.CategoryDinner, constants.ColorMeal, models.EventKindMeal)
	add(constants.CategoryExercise, constants.ColorExercise, models.EventKindExercise)
	return events
}

// ImportedEvents shows ingested one-off events as one-hour blocks.
func ImportedEvents(events []models.CalendarEvent) []models.CalendarEventInstance {
	out := make([]models.CalendarEventInstance, 0, len(events))
	for _, e := range events {
		out = append(out, models.CalendarEventInstance{
			Title: e.Name,
			Start: e.Begin,
			End:   e.Begin.Add(constants.SuggestionBlockDuration),
			Color: constants.ColorImported,
			Kind:  models.EventKindImported,
		})
	}
	return out
}

// Materialize combines class occurrences through horizon with assignment
// due dates into one list ordered by start. Inputs are not modified and
// overlapping events are kept.
func Materialize(sessions []models.ClassSession, horizon time.Time, assignments []models.Assignment, loc *time.Location) ([]models.CalendarEventInstance, error) {
	assignmentEvents, err := AssignmentEvents(assignments, loc)
	if err != nil {
		return nil, err
	}
	events := append(ClassEvents(sessions, horizon), assignmentEvents...)
	SortEvents(events)
	return events, nil
}

// SortEvents orders events by start; all-day events lead their day.
func SortEvents(events []models.CalendarEventInstance) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].AllDay && !events[j].AllDay
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
