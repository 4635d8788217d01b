package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/models"
)

// Severity says whether a conflict blocks planning or is only reported.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in a user's schedule data
type Conflict struct {
	Type        constants.ConflictType
	Severity    Severity
	Description string
	Items       []string // names involved
	IDs         []string // record IDs involved
	Weekday     string   // shared weekday, for overlaps
	TimeRange   string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors reports whether any conflict is more than a warning.
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", conflict.Severity, conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// Validator checks stored class sessions and assignments
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate runs every check over one user's data.
func (v *Validator) Validate(sessions []models.ClassSession, assignments []models.Assignment) ValidationResult {
	result := v.ValidateClasses(sessions)
	result.merge(v.ValidateAssignments(assignments))
	return result
}

// ValidateClasses reports duplicate class names, sessions whose times or
// weekdays are unusable, and sessions that overlap on a shared weekday.
// Overlap is allowed and only produces a warning.
func (v *Validator) ValidateClasses(sessions []models.ClassSession) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameIDs := make(map[string][]string)
	var names []string
	for _, s := range sessions {
		if s.Name == "" {
			continue
		}
		if _, seen := nameIDs[s.Name]; !seen {
			names = append(names, s.Name)
		}
		nameIDs[s.Name] = append(nameIDs[s.Name], s.ID)
	}
	for _, name := range names {
		if ids := nameIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateClassName,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Duplicate class name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	var valid []models.ClassSession
	for _, s := range sessions {
		if err := s.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidTime,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Class \"%s\" is invalid: %v", s.Name, err),
				Items:       []string{s.Name},
				IDs:         []string{s.ID},
				TimeRange:   fmt.Sprintf("%s-%s", s.Start, s.End),
			})
			continue
		}
		valid = append(valid, s)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start < valid[j].Start
	})

	// O(n²) over a student's handful of classes.
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			a, b := valid[i], valid[j]
			if !timesOverlap(a.Start, a.End, b.Start, b.End) {
				continue
			}
			for _, wd := range sharedWeekdays(a, b) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:     constants.ConflictOverlappingClasses,
					Severity: SeverityWarning,
					Description: fmt.Sprintf("Classes overlap on %s: \"%s\" (%s-%s) and \"%s\" (%s-%s)",
						wd, a.Name, a.Start, a.End, b.Name, b.Start, b.End),
					Items:     []string{a.Name, b.Name},
					IDs:       []string{a.ID, b.ID},
					Weekday:   wd.String(),
					TimeRange: fmt.Sprintf("%s-%s", maxTime(a.Start, b.Start), minTime(a.End, b.End)),
				})
			}
		}
	}

	return result
}

// ValidateAssignments reports unreadable due dates and duplicate names
// sharing a due date.
func (v *Validator) ValidateAssignments(assignments []models.Assignment) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]string)
	for _, a := range assignments {
		if _, err := a.Due(time.Local); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidDueDate,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Assignment \"%s\" has invalid due date: %s", a.Name, a.DueDate),
				Items:       []string{a.Name},
				IDs:         []string{a.ID},
			})
			continue
		}
		key := a.Name + "|" + a.DueDate
		if first, dup := seen[key]; dup {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateAssignment,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Assignment \"%s\" due %s is listed twice", a.Name, a.DueDate),
				Items:       []string{a.Name},
				IDs:         []string{first, a.ID},
			})
			continue
		}
		seen[key] = a.ID
	}

	return result
}

// timesOverlap treats both ranges as half-open, so back-to-back classes
// do not overlap.
func timesOverlap(start1, end1, start2, end2 models.TimeOfDay) bool {
	return start1 < end2 && start2 < end1
}

func sharedWeekdays(a, b models.ClassSession) []time.Weekday {
	var shared []time.Weekday
	for _, wd := range a.Weekdays {
		if b.MeetsOn(wd) {
			shared = append(shared, wd)
		}
	}
	return shared
}

func maxTime(a, b models.TimeOfDay) models.TimeOfDay {
	if a > b {
		return a
	}
	return b
}

func minTime(a, b models.TimeOfDay) models.TimeOfDay {
	if a < b {
		return a
	}
	return b
}
