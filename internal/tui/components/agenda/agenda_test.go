package agenda

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/models"
)

func at(day, hour int) time.Time {
	return time.Date(2024, 10, day, hour, 0, 0, 0, time.UTC)
}

func TestFormat(t *testing.T) {
	start := time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)
	events := []models.CalendarEventInstance{
		{Title: "Calculus", Start: at(7, 9), End: at(7, 10), Kind: models.EventKindClass, Color: constants.ColorClass},
		{Title: "Essay", Start: at(8, 0), End: at(8, 0), AllDay: true, Kind: models.EventKindAssignment, Color: constants.ColorAssignment},
		{Title: "Career fair", Start: at(20, 12), End: at(20, 13), Kind: models.EventKindImported, Color: constants.ColorImported},
	}

	out := Format(start, 3, events)

	for _, want := range []string{
		"Monday Oct 7", "Tuesday Oct 8", "Wednesday Oct 9", "Sunday Oct 20",
		"Calculus", "09:00 - 10:00", "Essay", "all day", "nothing scheduled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Wednesday Oct 9") > strings.Index(out, "Sunday Oct 20") {
		t.Error("out-of-range day should be listed after the week")
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		tag  string
		want lipgloss.TerminalColor
	}{
		{"#FFA500", lipgloss.Color("#FFA500")},
		{"#3DD56", fallbackColor},
		{"", fallbackColor},
		{"#GGGGGG", fallbackColor},
	}
	for _, tt := range tests {
		if got := Color(tt.tag); got != tt.want {
			t.Errorf("Color(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestModelView(t *testing.T) {
	m := New(80, 20)
	if got := m.View(); !strings.Contains(got, "No week loaded") {
		t.Errorf("View() before SetWeek = %q", got)
	}
	m.SetWeek(at(7, 8), 1, []models.CalendarEventInstance{
		{Title: "Lunch", Start: at(7, 12), End: at(7, 13), Kind: models.EventKindMeal, Color: constants.ColorMeal},
	})
	if got := m.View(); !strings.Contains(got, "Lunch") {
		t.Errorf("View() after SetWeek missing event:\n%s", got)
	}
}
