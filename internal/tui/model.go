package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/tui/components/agenda"
	"github.com/campuswellness/weekplan/internal/tui/components/classlist"
	"github.com/campuswellness/weekplan/internal/utils"
	"github.com/campuswellness/weekplan/internal/validation"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateClasses
	StateAssignments
	StateAddClass
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

type Model struct {
	store               storage.Provider
	scheduler           *scheduler.Scheduler
	username            string
	now                 func() time.Time
	state               SessionState
	keys                KeyMap
	help                help.Model
	agenda              agenda.Model
	classes             classlist.Model
	assignments         models.AssignmentGroups
	invalidAssignments  []models.Assignment
	form                *huh.Form
	classForm           *ClassFormModel
	classToDelete       classlist.DeleteClassMsg
	loc                 *time.Location
	today               time.Time
	horizonDays         int
	status              string
	validationWarning   string
	validationConflicts []validation.Conflict
	quitting            bool
	width               int
	height              int
}

// NewModel loads the week for username. now may be nil, meaning time.Now.
func NewModel(store storage.Provider, sched *scheduler.Scheduler, username string, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		store:     store,
		scheduler: sched,
		username:  username,
		now:       now,
		state:     StateWeek,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		agenda:    agenda.New(0, 0),
		classes:   classlist.New(nil, 0, 0),
		loc:       time.Local,
	}
	m.refresh(nil)
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	switch m.state {
	case StateWeek:
		keys = append(keys, m.keys.Generate)
	case StateClasses:
		keys = append(keys, m.keys.Add, m.keys.Delete)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateWeek:
		actions = []key.Binding{m.keys.Generate}
	case StateClasses:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads everything for the user. With a non-nil saver the week's
// suggestions are persisted as they are computed.
func (m *Model) refresh(saver scheduler.SuggestionSaver) {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.fail("load settings", err)
		return
	}
	models.ApplyDefaultSettings(&settings)
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		m.fail("load timezone", err)
		return
	}
	m.loc = loc
	m.horizonDays = settings.WeekHorizonDays
	m.today = models.DateOf(m.now().In(loc))

	data, err := storage.LoadUserData(m.store, m.username)
	if err != nil {
		m.fail("load user data", err)
		return
	}

	view, err := m.scheduler.Week(saver, scheduler.WeekInput{
		Username:    m.username,
		Today:       m.today,
		Days:        m.horizonDays,
		Sessions:    data.Sessions,
		Assignments: data.Assignments,
		Imported:    data.Events,
	})
	if err != nil {
		m.fail("build week", err)
		return
	}

	m.agenda.SetWeek(view.Start, m.horizonDays, view.Events)
	m.classes.SetSessions(data.Sessions)
	m.assignments, m.invalidAssignments = models.GroupAssignments(data.Assignments, m.today)
	m.updateValidationStatus(data)
	if saver != nil {
		m.status = fmt.Sprintf("Saved suggestions for %d days", len(view.Days))
	}
}

func (m *Model) fail(action string, err error) {
	logger.Component("tui").Error("tui action failed", "action", action, "user", m.username, "err", err)
	m.status = fmt.Sprintf("Failed to %s: %v", action, err)
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus(data storage.UserData) {
	result := validation.New().Validate(data.Sessions, data.Assignments)
	m.validationConflicts = result.Conflicts
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
