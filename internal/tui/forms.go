package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/campuswellness/weekplan/internal/models"
)

// ClassFormModel backs the add-class form.
type ClassFormModel struct {
	Name  string
	Days  string
	Start string
	End   string
	From  string
}

// Session turns the form answers into a class session for username.
func (f ClassFormModel) Session(username string, loc *time.Location, today time.Time) (models.ClassSession, error) {
	return models.ParseClassSession(username, f.Name, f.Days, f.Start, f.End, f.From, loc, today)
}

// NewClassForm builds the form used by the TUI and `class add --interactive`.
func NewClassForm(fm *ClassFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Class name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("class name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Days").
				Description("Two weekdays, e.g. mon,wed").
				Value(&fm.Days).
				Validate(func(s string) error {
					days, err := models.ParseWeekdays(s)
					if err != nil {
						return err
					}
					if len(days) != 2 || days[0] == days[1] {
						return fmt.Errorf("enter exactly two different weekdays")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start).
				Validate(validTime),
			huh.NewInput().
				Title("End (HH:MM)").
				Value(&fm.End).
				Validate(validTime),
			huh.NewInput().
				Title("First class (YYYY-MM-DD)").
				Description("Leave empty for today").
				Value(&fm.From).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := models.ParseDate(s, time.Local)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func validTime(s string) error {
	_, err := models.ParseTimeOfDay(s)
	return err
}

// ProfileFormModel backs the profile create and edit forms.
type ProfileFormModel struct {
	Email             string
	SleepHabit        string
	SportsInterest    string
	DietaryPreference string
	ExerciseFrequency string
}

// ProfileFormFrom prefills the form from an existing profile.
func ProfileFormFrom(p models.Profile) *ProfileFormModel {
	return &ProfileFormModel{
		Email:             p.Email,
		SleepHabit:        p.SleepHabit,
		SportsInterest:    p.SportsInterest,
		DietaryPreference: p.DietaryPreference,
		ExerciseFrequency: p.ExerciseFrequency,
	}
}

// Apply copies the answers onto p.
func (f ProfileFormModel) Apply(p models.Profile) models.Profile {
	p.Email = strings.TrimSpace(f.Email)
	p.SleepHabit = f.SleepHabit
	p.SportsInterest = strings.TrimSpace(f.SportsInterest)
	p.DietaryPreference = f.DietaryPreference
	p.ExerciseFrequency = f.ExerciseFrequency
	return p
}

// NewProfileForm builds the onboarding questionnaire.
func NewProfileForm(fm *ProfileFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					if s != "" && !strings.Contains(s, "@") {
						return fmt.Errorf("not an email address")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Sleep habit").
				Options(huh.NewOptions("early bird", "night owl", "irregular")...).
				Value(&fm.SleepHabit),
			huh.NewInput().
				Title("Sports interest").
				Value(&fm.SportsInterest),
			huh.NewSelect[string]().
				Title("Dietary preference").
				Options(huh.NewOptions("none", "vegetarian", "vegan", "halal", "kosher", "gluten-free")...).
				Value(&fm.DietaryPreference),
			huh.NewSelect[string]().
				Title("Exercise frequency").
				Options(huh.NewOptions("rarely", "1-2 times a week", "3-4 times a week", "daily")...).
				Value(&fm.ExerciseFrequency),
		),
	).WithTheme(huh.ThemeDracula())
}
