package reminder

import (
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/models"
)

// Input is what the matcher inspects for one user at one instant.
type Input struct {
	Username    string
	Now         time.Time
	Window      time.Duration
	Sessions    []models.ClassSession
	Assignments []models.Assignment
	// Suggestion is the persisted record for Now's date, or nil.
	Suggestion *models.SuggestionRecord
}

// Match compares Now against the schedule and returns the reminders that
// are due, in order: classes, assignments due today, suggested activities,
// then assignment work slots.
//
// Entries that fail to parse are skipped and returned in skipped so the
// caller can log them. A suggestion record whose own date is unreadable is
// skipped as a whole.
func Match(in Input) (reminders []models.Reminder, skipped []error) {
	if in.Window <= 0 {
		in.Window = constants.ReminderClassWindow
	}
	today := models.DateOf(in.Now)
	nowTOD := models.TimeOfDayOf(in.Now)
	// Class windows start at the current minute, not the current instant.
	minute := nowTOD.On(today)
	deadline := minute.Add(in.Window)

	emit := func(kind models.ReminderKind, format string, args ...any) {
		reminders = append(reminders, models.Reminder{
			Username: in.Username,
			Kind:     kind,
			Message:  fmt.Sprintf(format, args...),
			At:       in.Now,
		})
	}

	for _, s := range in.Sessions {
		if !s.ActiveOn(today) {
			continue
		}
		start := s.Start.On(today)
		if start.Before(minute) || start.After(deadline) {
			continue
		}
		emit(models.ReminderClass, "Reminder: You have %s starting at %s", s.Name, s.Start.ISO())
	}

	for _, a := range in.Assignments {
		due, err := a.IsDueOn(today)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("assignment %q: %w", a.Name, err))
			continue
		}
		if due {
			emit(models.ReminderAssignment, "Reminder: You have an assignment due today: %s", a.Name)
		}
	}

	if in.Suggestion == nil {
		return reminders, skipped
	}
	rec := in.Suggestion
	date, err := models.ParseDate(rec.Date, in.Now.Location())
	if err != nil {
		skipped = append(skipped, fmt.Errorf("suggestion record: %w", err))
		return reminders, skipped
	}
	if !date.Equal(today) {
		return reminders, skipped
	}

	for _, f := range rec.Fields() {
		if f.Value == nil {
			continue
		}
		t, err := models.ParseTimeOfDay(*f.Value)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("suggestion %s: %w", f.Category, err))
			continue
		}
		if t == nowTOD {
			emit(models.ReminderSuggestion, "Reminder: It's time for your suggested activity: %s at %s", f.Category, t.ISO())
		}
	}

	for _, v := range rec.AssignmentSlots {
		t, err := models.ParseTimeOfDay(v)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("assignment slot: %w", err))
			continue
		}
		if t == nowTOD {
			emit(models.ReminderWorkSlot, "Reminder: It's time for your assignment at %s", t.ISO())
		}
	}

	return reminders, skipped
}
