package scheduler

import (
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/models"
)

// Window is an inclusive time-of-day range a category prefers.
type Window struct {
	Category constants.SuggestionCategory
	From     models.TimeOfDay
	To       models.TimeOfDay
}

// MealWindows are scanned in order during the meal pass.
var MealWindows = []Window{
	{constants.CategoryBreakfast, models.MustTimeOfDay(constants.BreakfastWindowStart), models.MustTimeOfDay(constants.BreakfastWindowEnd)},
	{constants.CategoryLunch, models.MustTimeOfDay(constants.LunchWindowStart), models.MustTimeOfDay(constants.LunchWindowEnd)},
	{constants.CategoryDinner, models.MustTimeOfDay(constants.DinnerWindowStart), models.MustTimeOfDay(constants.DinnerWindowEnd)},
}

// ExerciseWindow is only consulted once every meal has a slot.
var ExerciseWindow = Window{
	constants.CategoryExercise,
	models.MustTimeOfDay(constants.ExerciseWindowStart),
	models.MustTimeOfDay(constants.ExerciseWindowEnd),
}

// Allocation is the allocator's output before it is tied to a user and date.
type Allocation struct {
	Breakfast       *models.TimeOfDay
	Lunch           *models.TimeOfDay
	Dinner          *models.TimeOfDay
	Exercise        *models.TimeOfDay
	AssignmentSlots []models.TimeOfDay
}

func (a *Allocation) set(c constants.SuggestionCategory, t models.TimeOfDay) {
	switch c {
	case constants.CategoryBreakfast:
		a.Breakfast = t.Ptr()
	case constants.CategoryLunch:
		a.Lunch = t.Ptr()
	case constants.CategoryDinner:
		a.Dinner = t.Ptr()
	case constants.CategoryExercise:
		a.Exercise = t.Ptr()
	}
}

func (a Allocation) mealsComplete() bool {
	return a.Breakfast != nil && a.Lunch != nil && a.Dinner != nil
}

// Suggestion ties the allocation to a user and date.
func (a Allocation) Suggestion(username string, date time.Time) models.DailySuggestion {
	return models.DailySuggestion{
		Username:        username,
		Date:            models.DateOf(date),
		Breakfast:       a.Breakfast,
		Lunch:           a.Lunch,
		Dinner:          a.Dinner,
		Exercise:        a.Exercise,
		AssignmentSlots: a.AssignmentSlots,
	}
}

// Allocate assigns free slots greedily. The meal pass scans the free slots
// once in ascending order and gives each meal the first unused slot inside
// its window. The exercise pass runs only if all three meals were placed and
// takes the first remaining slot inside the exercise window. Every slot not
// taken becomes an assignment-work slot. Each pass reads a snapshot and
// builds a new remaining list, so free is never modified.
func Allocate(free []models.TimeOfDay) Allocation {
	var alloc Allocation

	remaining := make([]models.TimeOfDay, 0, len(free))
	filled := make(map[constants.SuggestionCategory]bool, len(MealWindows))
	for _, slot := range free {
		taken := false
		for _, w := range MealWindows {
			if filled[w.Category] || !slot.Within(w.From, w.To) {
				continue
			}
			alloc.set(w.Category, slot)
			filled[w.Category] = true
			taken = true
			break
		}
		if !taken {
			remaining = append(remaining, slot)
		}
	}

	if alloc.mealsComplete() {
		snapshot := remaining
		remaining = make([]models.TimeOfDay, 0, len(snapshot))
		for _, slot := range snapshot {
			if alloc.Exercise == nil && slot.Within(ExerciseWindow.From, ExerciseWindow.To) {
				alloc.set(ExerciseWindow.Category, slot)
				continue
			}
			remaining = append(remaining, slot)
		}
	}

	alloc.AssignmentSlots = remaining
	return alloc
}
