package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/campuswellness/weekplan/internal/tui/components/classlist"
)

// chromeHeight is the space taken by the tab bar, status line and help.
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateAddClass:
		return m.updateAddClass(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.agenda.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.classes.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		return m, nil

	case classlist.AddClassMsg:
		m.classForm = &ClassFormModel{}
		m.form = NewClassForm(m.classForm)
		m.state = StateAddClass
		return m, m.form.Init()

	case classlist.DeleteClassMsg:
		m.classToDelete = msg
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.refresh(nil)
			return m, nil
		case key.Matches(msg, m.keys.Generate) && m.state == StateWeek:
			m.refresh(m.store)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateWeek:
		m.agenda, cmd = m.agenda.Update(msg)
	case StateClasses:
		m.classes, cmd = m.classes.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAddClass(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateClasses
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		session, err := m.classForm.Session(m.username, m.loc, m.now())
		if err != nil {
			m.status = fmt.Sprintf("Class not added: %v", err)
			m.state = StateClasses
			return m, nil
		}
		session.ID = uuid.New().String()
		session.CreatedAt = m.now()
		if err := m.store.AddClassSession(session); err != nil {
			m.fail("add class", err)
			m.state = StateClasses
			return m, nil
		}
		m.status = fmt.Sprintf("Added class %s", session.Name)
		m.refresh(nil)
		m.state = StateClasses
	case huh.StateAborted:
		m.state = StateClasses
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if err := m.store.DeleteClassSession(m.username, m.classToDelete.ID); err != nil {
			m.fail("remove class", err)
		} else {
			m.status = fmt.Sprintf("Removed class %s", m.classToDelete.Name)
			m.refresh(nil)
		}
		m.state = StateClasses
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = StateClasses
	}
	return m, nil
}
