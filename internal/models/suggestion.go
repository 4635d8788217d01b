package models

import (
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
)

// DailySuggestion is the allocator's proposal for one user on one date.
type DailySuggestion struct {
	Username        string      `json:"username"`
	Date            time.Time   `json:"date"`
	Breakfast       *TimeOfDay  `json:"breakfast"`
	Lunch           *TimeOfDay  `json:"lunch"`
	Dinner          *TimeOfDay  `json:"dinner"`
	Exercise        *TimeOfDay  `json:"exercise"`
	AssignmentSlots []TimeOfDay `json:"assignments"`
}

// Category returns the slot assigned to a category, if any.
func (s DailySuggestion) Category(c constants.SuggestionCategory) *TimeOfDay {
	switch c {
	case constants.CategoryBreakfast:
		return s.Breakfast
	case constants.CategoryLunch:
		return s.Lunch
	case constants.CategoryDinner:
		return s.Dinner
	case constants.CategoryExercise:
		return s.Exercise
	}
	return nil
}

// Record converts the suggestion to its persisted form.
func (s DailySuggestion) Record() SuggestionRecord {
	iso := func(t *TimeOfDay) *string {
		if t == nil {
			return nil
		}
		v := t.ISO()
		return &v
	}
	slots := make([]string, 0, len(s.AssignmentSlots))
	for _, t := range s.AssignmentSlots {
		slots = append(slots, t.ISO())
	}
	return SuggestionRecord{
		Username:        s.Username,
		Date:            s.Date.Format(constants.DateFormat),
		Breakfast:       iso(s.Breakfast),
		Lunch:           iso(s.Lunch),
		Dinner:          iso(s.Dinner),
		Exercise:        iso(s.Exercise),
		AssignmentSlots: slots,
	}
}

// SuggestionRecord is the persisted shape of a DailySuggestion, keyed by
// (Username, Date). Times are ISO "HH:MM:SS" strings or null.
type SuggestionRecord struct {
	Username        string   `json:"username"`
	Date            string   `json:"date"`
	Breakfast       *string  `json:"breakfast"`
	Lunch           *string  `json:"lunch"`
	Dinner          *string  `json:"dinner"`
	Exercise        *string  `json:"exercise"`
	AssignmentSlots []string `json:"assignments"`
}

// CategoryField pairs a category name with its stored time.
type CategoryField struct {
	Category constants.SuggestionCategory
	Value    *string
}

// Fields lists the single-slot categories in a fixed order.
func (r SuggestionRecord) Fields() []CategoryField {
	return []CategoryField{
		{constants.CategoryBreakfast, r.Breakfast},
		{constants.CategoryLunch, r.Lunch},
		{constants.CategoryDinner, r.Dinner},
		{constants.CategoryExercise, r.Exercise},
	}
}

// Suggestion parses the record back into a DailySuggestion. Any malformed
// field fails the whole conversion; callers that need per-field tolerance
// walk Fields instead.
func (r SuggestionRecord) Suggestion(loc *time.Location) (DailySuggestion, error) {
	date, err := ParseDate(r.Date, loc)
	if err != nil {
		return DailySuggestion{}, err
	}
	parse := func(v *string) (*TimeOfDay, error) {
		if v == nil {
			return nil, nil
		}
		t, err := ParseTimeOfDay(*v)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	s := DailySuggestion{Username: r.Username, Date: date}
	if s.Breakfast, err = parse(r.Breakfast); err != nil {
		return DailySuggestion{}, err
	}
	if s.Lunch, err = parse(r.Lunch); err != nil {
		return DailySuggestion{}, err
	}
	if s.Dinner, err = parse(r.Dinner); err != nil {
		return DailySuggestion{}, err
	}
	if s.Exercise, err = parse(r.Exercise); err != nil {
		return DailySuggestion{}, err
	}
	for _, v := range r.AssignmentSlots {
		t, err := ParseTimeOfDay(v)
		if err != nil {
			return DailySuggestion{}, err
		}
		s.AssignmentSlots = append(s.AssignmentSlots, t)
	}
	return s, nil
}
