package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/storage/sqlite"
	"github.com/campuswellness/weekplan/internal/tui/components/classlist"
)

var fixedNow = time.Date(2024, 10, 7, 8, 30, 0, 0, time.Local)

func setupTestModel(t *testing.T) (Model, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.AddProfile(models.Profile{Username: "alice"}); err != nil {
		t.Fatalf("AddProfile() failed: %v", err)
	}
	if err := store.AddClassSession(models.ClassSession{
		ID:        "c1",
		Username:  "alice",
		Name:      "Calculus",
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
		Start:     models.NewTimeOfDay(9, 0),
		End:       models.NewTimeOfDay(10, 0),
		FirstDate: time.Date(2024, 9, 2, 0, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("AddClassSession() failed: %v", err)
	}
	for _, a := range []models.Assignment{
		{ID: "a1", Username: "alice", Name: "Lab report", DueDate: "2024-10-01"},
		{ID: "a2", Username: "alice", Name: "Essay", DueDate: "2024-10-09"},
	} {
		if err := store.AddAssignment(a); err != nil {
			t.Fatalf("AddAssignment() failed: %v", err)
		}
	}

	m := NewModel(store, scheduler.New(), "alice", func() time.Time { return fixedNow })
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, store
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_LoadsWeek(t *testing.T) {
	m, _ := setupTestModel(t)

	if m.status != "" {
		t.Fatalf("unexpected status: %s", m.status)
	}
	view := m.View()
	for _, want := range []string{"Week", "Classes", "Assignments", "Calculus", "Breakfast"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := setupTestModel(t)

	tests := []struct {
		msg  tea.KeyMsg
		want SessionState
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, StateClasses},
		{tea.KeyMsg{Type: tea.KeyTab}, StateAssignments},
		{tea.KeyMsg{Type: tea.KeyTab}, StateWeek},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, StateAssignments},
	}
	for i, tt := range tests {
		m = send(t, m, tt.msg)
		if m.state != tt.want {
			t.Fatalf("step %d: state = %v, want %v", i, m.state, tt.want)
		}
	}

	view := m.View()
	for _, want := range []string{"Late (1)", "Lab report", "Upcoming (1)", "Essay"} {
		if !strings.Contains(view, want) {
			t.Errorf("assignments view missing %q:\n%s", want, view)
		}
	}
}

func TestGenerateSavesSuggestions(t *testing.T) {
	m, store := setupTestModel(t)

	if _, err := store.GetSuggestion("alice", "2024-10-07"); err == nil {
		t.Fatal("suggestion should not be saved before generating")
	}
	m = send(t, m, runes("g"))
	if !strings.Contains(m.status, "Saved suggestions for 7 days") {
		t.Errorf("status = %q", m.status)
	}
	for _, date := range []string{"2024-10-07", "2024-10-13"} {
		if _, err := store.GetSuggestion("alice", date); err != nil {
			t.Errorf("GetSuggestion(%s) failed: %v", date, err)
		}
	}
}

func TestDeleteClassFlow(t *testing.T) {
	m, store := setupTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	next, cmd := m.Update(runes("d"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("delete key should emit a command")
	}
	msg, ok := cmd().(classlist.DeleteClassMsg)
	if !ok || msg.ID != "c1" {
		t.Fatalf("command produced %#v, want DeleteClassMsg for c1", msg)
	}

	m = send(t, m, msg)
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want StateConfirmDelete", m.state)
	}
	if !strings.Contains(m.View(), `Remove class "Calculus"?`) {
		t.Error("confirmation prompt not shown")
	}

	m = send(t, m, runes("y"))
	if m.state != StateClasses {
		t.Errorf("state = %v, want StateClasses", m.state)
	}
	sessions, err := store.GetClassSessions("alice")
	if err != nil {
		t.Fatalf("GetClassSessions() failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d after delete, want 0", len(sessions))
	}
	if m.classes.Len() != 0 {
		t.Errorf("class list = %d items, want 0", m.classes.Len())
	}
}

func TestDeleteClassCancelled(t *testing.T) {
	m, store := setupTestModel(t)
	m.state = StateClasses
	m = send(t, m, classlist.DeleteClassMsg{ID: "c1", Name: "Calculus"})
	m = send(t, m, runes("n"))

	if m.state != StateClasses {
		t.Errorf("state = %v, want StateClasses", m.state)
	}
	sessions, _ := store.GetClassSessions("alice")
	if len(sessions) != 1 {
		t.Errorf("sessions = %d, want 1", len(sessions))
	}
}

func TestAddClassOpensForm(t *testing.T) {
	m, _ := setupTestModel(t)
	m.state = StateClasses
	m = send(t, m, classlist.AddClassMsg{})
	if m.state != StateAddClass || m.form == nil {
		t.Fatalf("state = %v, form = %v; want add-class form", m.state, m.form)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateClasses {
		t.Errorf("esc should leave the form, state = %v", m.state)
	}
}

func TestUnknownUser(t *testing.T) {
	m, store := setupTestModel(t)
	m = NewModel(store, scheduler.New(), "bob", func() time.Time { return fixedNow })
	if !strings.Contains(m.status, "Failed to load user data") {
		t.Errorf("status = %q, want load failure", m.status)
	}
}

func TestValidationWarning(t *testing.T) {
	m, store := setupTestModel(t)
	if err := store.AddClassSession(models.ClassSession{
		ID:        "c2",
		Username:  "alice",
		Name:      "Physics",
		Weekdays:  []time.Weekday{time.Monday, time.Friday},
		Start:     models.NewTimeOfDay(9, 30),
		End:       models.NewTimeOfDay(10, 30),
		FirstDate: time.Date(2024, 9, 2, 0, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("AddClassSession() failed: %v", err)
	}
	m = send(t, m, runes("r"))
	if m.validationWarning != "⚠ 1 validation warning(s)" {
		t.Errorf("validationWarning = %q", m.validationWarning)
	}
}

func TestClassFormSession(t *testing.T) {
	f := ClassFormModel{Name: "Biology", Days: "tue,thu", Start: "13:00", End: "14:15"}
	s, err := f.Session("alice", time.UTC, time.Date(2024, 10, 7, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if s.FormatDays() != "Tue,Thu" || s.Start.String() != "13:00" || s.End.String() != "14:15" {
		t.Errorf("Session() = %+v", s)
	}
	if _, err := (ClassFormModel{Name: "Biology", Days: "tue", Start: "13:00", End: "14:00"}).Session("alice", time.UTC, time.Now()); err == nil {
		t.Error("Session() should reject a single weekday")
	}
}

func TestProfileFormApply(t *testing.T) {
	p := models.Profile{Username: "alice", Email: "old@campus.edu"}
	f := ProfileFormFrom(p)
	f.Email = " new@campus.edu "
	f.SleepHabit = "night owl"

	got := f.Apply(p)
	if got.Username != "alice" || got.Email != "new@campus.edu" || got.SleepHabit != "night owl" {
		t.Errorf("Apply() = %+v", got)
	}
}
