package models

import (
	"sort"
	"strings"
	"time"

	"github.com/campuswellness/weekplan/internal/errors"
)

// Assignment is a dated obligation. DueDate is kept in its stored
// YYYY-MM-DD form so that malformed records can be reported per entry.
type Assignment struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	DueDate   string    `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Assignment) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.NewValidationError("name", "assignment name is required")
	}
	if _, err := a.Due(time.Local); err != nil {
		return err
	}
	return nil
}

// Due parses the due date in loc.
func (a Assignment) Due(loc *time.Location) (time.Time, error) {
	return ParseDate(a.DueDate, loc)
}

// IsDueOn reports whether the assignment is due on date's calendar day.
func (a Assignment) IsDueOn(date time.Time) (bool, error) {
	due, err := a.Due(date.Location())
	if err != nil {
		return false, err
	}
	return due.Equal(DateOf(date)), nil
}

// AssignmentGroups splits assignments into those already late and those
// still upcoming relative to a reference day.
type AssignmentGroups struct {
	Late     []Assignment `json:"late"`
	Upcoming []Assignment `json:"upcoming"`
}

// GroupAssignments sorts by due date and splits on today. An assignment due
// today is upcoming. Entries with an unparseable due date are returned in
// invalid so the caller can report them.
func GroupAssignments(assignments []Assignment, today time.Time) (groups AssignmentGroups, invalid []Assignment) {
	type dated struct {
		a   Assignment
		due time.Time
	}
	var valid []dated
	for _, a := range assignments {
		due, err := a.Due(today.Location())
		if err != nil {
			invalid = append(invalid, a)
			continue
		}
		valid = append(valid, dated{a, due})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].due.Before(valid[j].due)
	})

	day := DateOf(today)
	groups.Late = []Assignment{}
	groups.Upcoming = []Assignment{}
	for _, d := range valid {
		if d.due.Before(day) {
			groups.Late = append(groups.Late, d.a)
		} else {
			groups.Upcoming = append(groups.Upcoming, d.a)
		}
	}
	return groups, invalid
}

// RemoveAssignments returns the assignments whose names are not in names.
// The order of the remaining assignments is preserved.
func RemoveAssignments(assignments []Assignment, names []string) (remaining []Assignment, removed int) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	remaining = make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if drop[a.Name] {
			removed++
			continue
		}
		remaining = append(remaining, a)
	}
	return remaining, removed
}
