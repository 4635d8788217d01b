package scheduler

import (
	"iter"
	"slices"
	"sort"
	"time"

	"github.com/campuswellness/weekplan/internal/models"
)

// Occurrence is one dated meeting of a class session.
type Occurrence struct {
	Session models.ClassSession
	Date    time.Time
	Start   time.Time
	End     time.Time
}

// Occurrences walks every calendar date from the session's first date
// through horizon (inclusive) and yields one occurrence per matching
// weekday. The sequence is a pure function of its inputs and can be
// ranged over any number of times. A horizon before the first date yields
// nothing.
func Occurrences(session models.ClassSession, horizon time.Time) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		last := models.DateOf(horizon)
		for d := models.DateIn(session.FirstDate, horizon.Location()); !d.After(last); d = d.AddDate(0, 0, 1) {
			if !session.MeetsOn(d.Weekday()) {
				continue
			}
			occ := Occurrence{
				Session: session,
				Date:    d,
				Start:   session.Start.On(d),
				End:     session.End.On(d),
			}
			if !yield(occ) {
				return
			}
		}
	}
}

// ExpandAll collects the occurrences of every session up to horizon,
// ordered by start time.
func ExpandAll(sessions []models.ClassSession, horizon time.Time) []Occurrence {
	var all []Occurrence
	for _, s := range sessions {
		all = append(all, slices.Collect(Occurrences(s, horizon))...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})
	return all
}
