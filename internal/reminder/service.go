package reminder

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/models"
)

// Store is the read side the reminder service needs.
type Store interface {
	GetProfile(username string) (models.Profile, error)
	GetClassSessions(username string) ([]models.ClassSession, error)
	GetAssignments(username string) ([]models.Assignment, error)
	GetSuggestion(username, date string) (models.SuggestionRecord, error)
}

// Service loads a user's data and runs the matcher over it.
type Service struct {
	store  Store
	window time.Duration
	log    *log.Logger
}

func NewService(store Store, window time.Duration) *Service {
	return &Service{
		store:  store,
		window: window,
		log:    logger.Component("reminder"),
	}
}

// WindowFromSettings converts reminder_window_min, falling back to one hour.
func WindowFromSettings(settings models.Settings) time.Duration {
	if settings.ReminderWindowMin <= 0 {
		return constants.ReminderClassWindow
	}
	return time.Duration(settings.ReminderWindowMin) * time.Minute
}

// Check returns the reminders due for username at now. A missing profile
// yields a not-found error; a missing suggestion for today is not an error.
func (s *Service) Check(username string, now time.Time) ([]models.Reminder, error) {
	if _, err := s.store.GetProfile(username); err != nil {
		return nil, err
	}

	sessions, err := s.store.GetClassSessions(username)
	if err != nil {
		return nil, err
	}
	assignments, err := s.store.GetAssignments(username)
	if err != nil {
		return nil, err
	}

	var suggestion *models.SuggestionRecord
	rec, err := s.store.GetSuggestion(username, now.Format(constants.DateFormat))
	switch {
	case err == nil:
		suggestion = &rec
	case errors.IsNotFound(err):
	case errors.IsParse(err):
		s.log.Warn("skipping unreadable suggestion record", "user", username, "err", err)
	default:
		return nil, err
	}

	reminders, skipped := Match(Input{
		Username:    username,
		Now:         now,
		Window:      s.window,
		Sessions:    sessions,
		Assignments: assignments,
		Suggestion:  suggestion,
	})
	for _, err := range skipped {
		s.log.Warn("skipping malformed entry", "user", username, "err", err)
	}
	return reminders, nil
}
