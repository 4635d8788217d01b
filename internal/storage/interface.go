package storage

import (
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
)

// Provider is the persistence boundary. Lookups of a single missing record
// return an error matching errors.ErrNotFound.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profiles
	AddProfile(models.Profile) error
	GetProfile(username string) (models.Profile, error)
	UpdateProfile(models.Profile) error
	GetAllProfiles() ([]models.Profile, error)

	// Class sessions are immutable once stored; they can only be removed.
	AddClassSession(models.ClassSession) error
	GetClassSessions(username string) ([]models.ClassSession, error)
	DeleteClassSession(username, id string) error

	// Assignments
	AddAssignment(models.Assignment) error
	GetAssignments(username string) ([]models.Assignment, error)
	// ReplaceAssignments overwrites the user's whole assignment collection.
	ReplaceAssignments(username string, assignments []models.Assignment) error

	// Calendar events ingested from calendar files
	AddCalendarEvents(username string, events []models.CalendarEvent) (int, error)
	GetCalendarEvents(username string) ([]models.CalendarEvent, error)
	ClearCalendarEvents(username string) error

	// Suggestions, keyed by (username, date); saving replaces any earlier record.
	SaveSuggestion(models.SuggestionRecord) error
	GetSuggestion(username, date string) (models.SuggestionRecord, error)

	// Utils
	GetConfigPath() string
}

// UserData is everything stored for one user.
type UserData struct {
	Profile     models.Profile
	Sessions    []models.ClassSession
	Assignments []models.Assignment
	Events      []models.CalendarEvent
}

// LoadUserData fetches a profile and its collections. A missing profile is
// reported as a not-found error before anything else is read.
func LoadUserData(p Provider, username string) (UserData, error) {
	profile, err := p.GetProfile(username)
	if err != nil {
		return UserData{}, err
	}
	sessions, err := p.GetClassSessions(username)
	if err != nil {
		return UserData{}, err
	}
	assignments, err := p.GetAssignments(username)
	if err != nil {
		return UserData{}, err
	}
	events, err := p.GetCalendarEvents(username)
	if err != nil {
		return UserData{}, err
	}
	return UserData{
		Profile:     profile,
		Sessions:    sessions,
		Assignments: assignments,
		Events:      events,
	}, nil
}

// LoadSuggestions reads the stored suggestions for days consecutive days
// starting at from. Days without a record are skipped silently; records
// that cannot be read are skipped and reported in skipped.
func LoadSuggestions(p Provider, username string, from time.Time, days int) (found []models.DailySuggestion, skipped []error) {
	start := models.DateOf(from)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(constants.DateFormat)
		rec, err := p.GetSuggestion(username, date)
		if errors.IsNotFound(err) {
			continue
		}
		if err != nil {
			skipped = append(skipped, fmt.Errorf("suggestion for %s: %w", date, err))
			continue
		}
		sugg, err := rec.Suggestion(from.Location())
		if err != nil {
			skipped = append(skipped, fmt.Errorf("suggestion for %s: %w", date, err))
			continue
		}
		found = append(found, sugg)
	}
	return found, skipped
}
