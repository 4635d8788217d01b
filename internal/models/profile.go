package models

import (
	"strings"
	"time"

	"github.com/campuswellness/weekplan/internal/errors"
)

// Profile holds the onboarding answers for one user.
type Profile struct {
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	SleepHabit        string    `json:"sleep_habit"`
	SportsInterest    string    `json:"sports_interest"`
	DietaryPreference string    `json:"dietary_preference"`
	ExerciseFrequency string    `json:"exercise_frequency"`
	CreatedAt         time.Time `json:"created_at"`
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return errors.NewValidationError("username", "username is required")
	}
	if strings.ContainsAny(p.Username, " /") {
		return errors.NewValidationError("username", "username may not contain spaces or slashes")
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return errors.NewValidationError("email", "%q is not an email address", p.Email)
	}
	return nil
}
