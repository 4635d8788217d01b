package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/campuswellness/weekplan/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWeek:
		content = docStyle.Render(m.agenda.View())
	case StateClasses:
		content = docStyle.Render(m.classes.View())
	case StateAssignments:
		content = docStyle.Render(m.viewAssignments())
	case StateAddClass:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Week", "Classes", "Assignments"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, mutedStyle.Render("  "+m.username))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	var parts []string
	if m.validationWarning != "" {
		parts = append(parts, warningStyle.Render(m.validationWarning))
	}
	if m.status != "" {
		parts = append(parts, mutedStyle.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewAssignments() string {
	var b strings.Builder
	section := func(title string, list []models.Assignment) {
		b.WriteString(headingStyle.Render(fmt.Sprintf("%s (%d)", title, len(list))))
		b.WriteString("\n")
		if len(list) == 0 {
			b.WriteString(mutedStyle.Render("  none"))
			b.WriteString("\n")
		}
		for _, a := range list {
			fmt.Fprintf(&b, "  %s  %s\n", a.DueDate, a.Name)
		}
		b.WriteString("\n")
	}
	section("Late", m.assignments.Late)
	section("Upcoming", m.assignments.Upcoming)
	if len(m.invalidAssignments) > 0 {
		b.WriteString(dangerStyle.Render(fmt.Sprintf("%d assignment(s) with an unreadable due date", len(m.invalidAssignments))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Remove class %q?", m.classToDelete.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
