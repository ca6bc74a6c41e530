package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/meditrack/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateEditing {
		return m.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-7)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(7)
		case key.Matches(msg, m.keys.NextMonth):
			m.shiftMonth(1)
		case key.Matches(msg, m.keys.PrevMonth):
			m.shiftMonth(-1)
		case key.Matches(msg, m.keys.Today):
			today := utils.StartOfDay(m.tracker.Now())
			m.tracker.GoToMonth(today)
			m.cursor = today
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		case key.Matches(msg, m.keys.Clear):
			m.clearOverride()
		case key.Matches(msg, m.keys.Edit):
			return m, m.startEdit()
		}
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = stateCalendar
		m.err = ""
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.saveDayForm() {
			m.state = stateCalendar
		} else {
			m.form.State = huh.StateNormal
		}
	case huh.StateAborted:
		m.state = stateCalendar
	}
	return m, cmd
}
