package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campuswellness/weekplan/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginTop(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// fallbackColor is used when an event's color tag is not a full #RRGGBB value.
const fallbackColor = lipgloss.Color("42")

// Model renders a list of event instances grouped by day inside a viewport.
type Model struct {
	viewport viewport.Model
	Events   []models.CalendarEventInstance
	Start    time.Time
	Days     int
	loaded   bool
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return "No week loaded. Press 'r' to refresh."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetWeek replaces the displayed events. Days are listed from start for
// the given number of days, including days with nothing scheduled.
func (m *Model) SetWeek(start time.Time, days int, events []models.CalendarEventInstance) {
	m.Start = models.DateOf(start)
	m.Days = days
	m.Events = events
	m.loaded = true
	m.Render()
	m.viewport.GotoTop()
}

func (m *Model) Render() {
	if !m.loaded {
		m.viewport.SetContent("No week loaded.")
		return
	}
	m.viewport.SetContent(Format(m.Start, m.Days, m.Events))
}

// Format lays out events under one heading per day. Events outside
// [start, start+days) are listed under their own date after the range.
func Format(start time.Time, days int, events []models.CalendarEventInstance) string {
	byDay := make(map[string][]models.CalendarEventInstance)
	var extra []string
	for _, e := range events {
		key := e.Start.In(start.Location()).Format("2006-01-02")
		if _, ok := byDay[key]; !ok {
			d := models.DateIn(e.Start.In(start.Location()), start.Location())
			if d.Before(start) || !d.Before(start.AddDate(0, 0, days)) {
				extra = append(extra, key)
			}
		}
		byDay[key] = append(byDay[key], e)
	}

	var b strings.Builder
	writeDay := func(heading string, list []models.CalendarEventInstance) {
		b.WriteString(dayStyle.Render(heading))
		b.WriteString("\n")
		if len(list) == 0 {
			b.WriteString(kindStyle.Render("  nothing scheduled"))
			b.WriteString("\n")
			return
		}
		for _, e := range list {
			b.WriteString(Line(e))
			b.WriteString("\n")
		}
	}

	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		writeDay(d.Format("Monday Jan 2"), byDay[d.Format("2006-01-02")])
	}
	for _, key := range extra {
		list := byDay[key]
		writeDay(list[0].Start.In(start.Location()).Format("Monday Jan 2"), list)
	}
	return b.String()
}

// Line renders one event with a swatch in the event's color.
func Line(e models.CalendarEventInstance) string {
	span := "all day"
	if !e.AllDay {
		span = fmt.Sprintf("%s - %s", e.Start.Format("15:04"), e.End.Format("15:04"))
	}
	swatch := lipgloss.NewStyle().Foreground(Color(e.Color)).Render("●")
	return fmt.Sprintf("  %s %s %s %s",
		swatch,
		timeStyle.Render(span),
		titleStyle.Render(e.Title),
		kindStyle.Render(string(e.Kind)),
	)
}

// Color turns a stored color tag into a terminal color.
func Color(tag string) lipgloss.TerminalColor {
	if len(tag) != 7 || tag[0] != '#' {
		return fallbackColor
	}
	for _, c := range tag[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return fallbackColor
		}
	}
	return lipgloss.Color(tag)
}
