package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/campuswellness/weekplan/internal/models"
)

// 2024-10-07 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, 10, day, hour, minute, 0, 0, time.UTC)
}

func session(name string, start models.TimeOfDay, days ...time.Weekday) models.ClassSession {
	return models.ClassSession{
		Name:      name,
		Weekdays:  days,
		Start:     start,
		End:       start + 60,
		FirstDate: time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
	}
}

func strp(s string) *string { return &s }

func messages(rs []models.Reminder) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Message)
	}
	return out
}

func TestMatchClassWindow(t *testing.T) {
	now := at(7, 9, 0)
	tests := []struct {
		name  string
		start models.TimeOfDay
		days  []time.Weekday
		want  bool
	}{
		{name: "starts now", start: models.NewTimeOfDay(9, 0), days: []time.Weekday{time.Monday, time.Wednesday}, want: true},
		{name: "starts in 59 minutes", start: models.NewTimeOfDay(9, 59), days: []time.Weekday{time.Monday, time.Wednesday}, want: true},
		{name: "starts in 60 minutes", start: models.NewTimeOfDay(10, 0), days: []time.Weekday{time.Monday, time.Wednesday}, want: true},
		{name: "starts in 61 minutes", start: models.NewTimeOfDay(10, 1), days: []time.Weekday{time.Monday, time.Wednesday}, want: false},
		{name: "already started", start: models.NewTimeOfDay(8, 59), days: []time.Weekday{time.Monday, time.Wednesday}, want: false},
		{name: "other weekday", start: models.NewTimeOfDay(9, 30), days: []time.Weekday{time.Tuesday, time.Thursday}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := Match(Input{
				Username: "alice",
				Now:      now,
				Window:   time.Hour,
				Sessions: []models.ClassSession{session("Calculus", tt.start, tt.days...)},
			})
			if len(skipped) != 0 {
				t.Fatalf("unexpected skipped entries: %v", skipped)
			}
			if (len(got) == 1) != tt.want {
				t.Fatalf("Match() = %v, want reminder=%v", messages(got), tt.want)
			}
			if tt.want {
				want := "Reminder: You have Calculus starting at " + tt.start.ISO()
				if got[0].Message != want {
					t.Errorf("message = %q, want %q", got[0].Message, want)
				}
				if got[0].Kind != models.ReminderClass || got[0].Username != "alice" {
					t.Errorf("reminder = %+v", got[0])
				}
			}
		})
	}
}

func TestMatchClassStartingAtTick(t *testing.T) {
	s := session("Calculus", models.NewTimeOfDay(9, 0), time.Monday)
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "tick lands late", now: time.Date(2024, 10, 7, 9, 0, 0, 250_000_000, time.UTC), want: 1},
		{name: "end of minute", now: time.Date(2024, 10, 7, 9, 0, 59, 0, time.UTC), want: 1},
		{name: "next minute", now: time.Date(2024, 10, 7, 9, 1, 0, 0, time.UTC), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Match(Input{Now: tt.now, Window: time.Hour, Sessions: []models.ClassSession{s}})
			if len(got) != tt.want {
				t.Fatalf("Match() = %v, want %d reminder(s)", messages(got), tt.want)
			}
			if tt.want > 0 && !got[0].At.Equal(tt.now) {
				t.Errorf("At = %v, want %v", got[0].At, tt.now)
			}
		})
	}
}

func TestMatchClassNotYetStarted(t *testing.T) {
	s := session("Seminar", models.NewTimeOfDay(9, 30), time.Monday, time.Wednesday)
	s.FirstDate = time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)

	got, _ := Match(Input{Now: at(7, 9, 0), Sessions: []models.ClassSession{s}})
	if len(got) != 0 {
		t.Errorf("Match() = %v, want none before first date", messages(got))
	}
}

func TestMatchAssignmentDueToday(t *testing.T) {
	assignments := []models.Assignment{{Name: "Essay", DueDate: "2024-10-06"}}

	got, _ := Match(Input{Now: time.Date(2024, 10, 6, 7, 0, 0, 0, time.UTC), Assignments: assignments})
	if len(got) != 1 || got[0].Message != "Reminder: You have an assignment due today: Essay" {
		t.Errorf("on due date: Match() = %v", messages(got))
	}

	got, _ = Match(Input{Now: time.Date(2024, 10, 7, 7, 0, 0, 0, time.UTC), Assignments: assignments})
	if len(got) != 0 {
		t.Errorf("day after: Match() = %v, want none", messages(got))
	}
}

func TestMatchSuggestionExactMinute(t *testing.T) {
	rec := &models.SuggestionRecord{
		Date:            "2024-10-07",
		Breakfast:       strp("07:00:00"),
		Lunch:           strp("12:00:00"),
		Exercise:        strp("08:00:00"),
		AssignmentSlots: []string{"09:00:00", "10:00:00"},
	}

	tests := []struct {
		name string
		now  time.Time
		want []string
	}{
		{
			name: "breakfast",
			now:  at(7, 7, 0),
			want: []string{"Reminder: It's time for your suggested activity: breakfast at 07:00:00"},
		},
		{
			name: "seconds ignored",
			now:  at(7, 8, 0).Add(30 * time.Second),
			want: []string{"Reminder: It's time for your suggested activity: exercise at 08:00:00"},
		},
		{
			name: "one minute late",
			now:  at(7, 12, 1),
			want: nil,
		},
		{
			name: "work slot",
			now:  at(7, 10, 0),
			want: []string{"Reminder: It's time for your assignment at 10:00:00"},
		},
		{
			name: "record for another day",
			now:  at(8, 7, 0),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Match(Input{Now: tt.now, Suggestion: rec})
			msgs := messages(got)
			if strings.Join(msgs, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Match() = %v, want %v", msgs, tt.want)
			}
		})
	}
}

func TestMatchSkipsMalformedEntries(t *testing.T) {
	rec := &models.SuggestionRecord{
		Date:            "2024-10-07",
		Breakfast:       strp("seven"),
		Lunch:           strp("12:00:00"),
		AssignmentSlots: []string{"noon", "12:00:00"},
	}
	assignments := []models.Assignment{
		{Name: "Broken", DueDate: "10/07/2024"},
		{Name: "Lab", DueDate: "2024-10-07"},
	}

	got, skipped := Match(Input{Now: at(7, 12, 0), Assignments: assignments, Suggestion: rec})

	want := []string{
		"Reminder: You have an assignment due today: Lab",
		"Reminder: It's time for your suggested activity: lunch at 12:00:00",
		"Reminder: It's time for your assignment at 12:00:00",
	}
	if strings.Join(messages(got), "|") != strings.Join(want, "|") {
		t.Errorf("Match() = %v, want %v", messages(got), want)
	}
	if len(skipped) != 3 {
		t.Errorf("skipped = %v, want 3 entries", skipped)
	}
}

func TestMatchUnreadableSuggestionDate(t *testing.T) {
	rec := &models.SuggestionRecord{Date: "yesterday", Breakfast: strp("07:00:00")}

	got, skipped := Match(Input{Now: at(7, 7, 0), Suggestion: rec})
	if len(got) != 0 {
		t.Errorf("Match() = %v, want none", messages(got))
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want 1", skipped)
	}
}

func TestMatchOrdering(t *testing.T) {
	got, _ := Match(Input{
		Now:         at(7, 7, 0),
		Sessions:    []models.ClassSession{session("Biology", models.NewTimeOfDay(7, 30), time.Monday, time.Friday)},
		Assignments: []models.Assignment{{Name: "Essay", DueDate: "2024-10-07"}},
		Suggestion:  &models.SuggestionRecord{Date: "2024-10-07", Breakfast: strp("07:00")},
	})

	kinds := make([]models.ReminderKind, 0, len(got))
	for _, r := range got {
		kinds = append(kinds, r.Kind)
	}
	want := []models.ReminderKind{models.ReminderClass, models.ReminderAssignment, models.ReminderSuggestion}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}
