package classlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuswellness/weekplan/internal/models"
)

type AddClassMsg struct{}

type DeleteClassMsg struct {
	ID   string
	Name string
}

type Item struct {
	Session models.ClassSession
}

func (i Item) Title() string { return i.Session.Name }
func (i Item) Description() string {
	return fmt.Sprintf("%s %s-%s | from %s",
		i.Session.FormatDays(), i.Session.Start, i.Session.End, i.Session.FirstDate.Format("2006-01-02"))
}
func (i Item) FilterValue() string { return i.Session.Name }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(sessions []models.ClassSession, width, height int) Model {
	l := list.New(items(sessions), list.NewDefaultDelegate(), width, height)
	l.Title = "Classes"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(sessions []models.ClassSession) []list.Item {
	out := make([]list.Item, len(sessions))
	for i, s := range sessions {
		out[i] = Item{Session: s}
	}
	return out
}

func (m *Model) SetSessions(sessions []models.ClassSession) {
	m.list.SetItems(items(sessions))
}

// Len returns the number of listed sessions.
func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddClassMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteClassMsg{ID: i.Session.ID, Name: i.Session.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No classes yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
