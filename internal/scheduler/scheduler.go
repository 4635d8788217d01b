package scheduler

import (
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/models"
)

// SuggestionSaver persists suggestions keyed by (username, date). A later
// save for the same key replaces the earlier one.
type SuggestionSaver interface {
	SaveSuggestion(models.SuggestionRecord) error
}

// Scheduler holds the grid configuration. It has no mutable state and may
// be shared between goroutines.
type Scheduler struct {
	grid GridConfig
}

func New() *Scheduler {
	return &Scheduler{grid: DefaultGridConfig()}
}

// NewWithGrid validates cfg and returns a scheduler that uses it.
func NewWithGrid(cfg GridConfig) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{grid: cfg}, nil
}

// Grid returns the configured grid bounds.
func (s *Scheduler) Grid() GridConfig {
	return s.grid
}

// DayPlan is the computed availability and suggestion for one date.
type DayPlan struct {
	Date         time.Time
	Availability Availability
	Suggestion   models.DailySuggestion
}

// PlanDay builds the grid, partitions it against the sessions meeting on
// date's weekday, and allocates the free slots.
func (s *Scheduler) PlanDay(username string, date time.Time, sessions []models.ClassSession) (DayPlan, error) {
	grid, err := BuildGrid(s.grid)
	if err != nil {
		return DayPlan{}, err
	}
	day := models.DateOf(date)
	avail := ComputeAvailability(grid, sessions, day.Weekday())
	alloc := Allocate(avail.Free)
	return DayPlan{
		Date:         day,
		Availability: avail,
		Suggestion:   alloc.Suggestion(username, day),
	}, nil
}

// Suggest plans one day and persists the suggestion under (username, date).
func (s *Scheduler) Suggest(store SuggestionSaver, username string, date time.Time, sessions []models.ClassSession) (DayPlan, error) {
	plan, err := s.PlanDay(username, date, sessions)
	if err != nil {
		return DayPlan{}, err
	}
	if err := store.SaveSuggestion(plan.Suggestion.Record()); err != nil {
		return DayPlan{}, fmt.Errorf("failed to save suggestion for %s: %w", plan.Date.Format("2006-01-02"), err)
	}
	return plan, nil
}

// WeekInput is everything the week view needs for one user.
type WeekInput struct {
	Username    string
	Today       time.Time
	Days        int
	Sessions    []models.ClassSession
	Assignments []models.Assignment
	Imported    []models.CalendarEvent
}

// WeekView is the per-day plans plus the combined event list.
type WeekView struct {
	Start   time.Time
	Horizon time.Time
	Days    []DayPlan
	Events  []models.CalendarEventInstance
}

// Week plans each of in.Days days starting today, persisting every day's
// suggestion when store is not nil, and materializes classes through
// today+Days together with assignments, suggestions and imported events.
func (s *Scheduler) Week(store SuggestionSaver, in WeekInput) (WeekView, error) {
	today := models.DateOf(in.Today)
	horizon := today.AddDate(0, 0, in.Days)
	view := WeekView{Start: today, Horizon: horizon}

	var suggestionEvents []models.CalendarEventInstance
	for i := 0; i < in.Days; i++ {
		day := today.AddDate(0, 0, i)
		var (
			plan DayPlan
			err  error
		)
		if store != nil {
			plan, err = s.Suggest(store, in.Username, day, in.Sessions)
		} else {
			plan, err = s.PlanDay(in.Username, day, in.Sessions)
		}
		if err != nil {
			return WeekView{}, err
		}
		view.Days = append(view.Days, plan)
		suggestionEvents = append(suggestionEvents, SuggestionEvents(plan.Suggestion)...)
	}

	events, err := Materialize(in.Sessions, horizon, in.Assignments, today.Location())
	if err != nil {
		return WeekView{}, err
	}
	events = append(events, suggestionEvents...)
	events = append(events, ImportedEvents(in.Imported)...)
	SortEvents(events)
	view.Events = events
	return view, nil
}
