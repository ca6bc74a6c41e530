// Package tui is the interactive month calendar.
package tui

import (
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/meditrack/internal/tracker"
	"github.com/julianstephens/meditrack/internal/utils"
	"github.com/julianstephens/meditrack/internal/validation"
)

type sessionState int

const (
	stateCalendar sessionState = iota
	stateEditing
)

// DayFormModel backs the single-day edit form.
type DayFormModel struct {
	Duration string
	Note     string
}

type Model struct {
	tracker  *tracker.Tracker
	state    sessionState
	keys     KeyMap
	help     help.Model
	cursor   time.Time
	form     *huh.Form
	dayForm  *DayFormModel
	status   string
	err      string
	quitting bool
	width    int
	height   int
}

// NewModel builds a calendar over a loaded tracker with the cursor on today.
func NewModel(tr *tracker.Tracker) Model {
	today := utils.StartOfDay(tr.Now())
	tr.GoToMonth(today)

	m := Model{
		tracker: tr,
		state:   stateCalendar,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		cursor:  today,
	}
	if n := len(tr.ParseErrors); n > 0 {
		m.err = strconv.Itoa(n) + " line(s) of the stored plan could not be read"
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// moveCursor shifts the selection by days, following it into other months.
func (m *Model) moveCursor(days int) {
	m.cursor = utils.AddDays(m.cursor, days)
	if !utils.SameDay(utils.FirstOfMonth(m.cursor), m.tracker.Month) {
		m.tracker.GoToMonth(m.cursor)
	}
}

// shiftMonth changes month and keeps the cursor on the same day number where
// the new month has one.
func (m *Model) shiftMonth(n int) {
	if n > 0 {
		m.tracker.NextMonth()
	} else {
		m.tracker.PrevMonth()
	}
	month := m.tracker.Month
	day := min(m.cursor.Day(), utils.DaysIn(month))
	m.cursor = utils.AddDays(month, day-1)
}

func (m *Model) toggle() {
	done, err := m.tracker.ToggleCompletion(m.cursor)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	if done {
		m.status = utils.ToKey(m.cursor) + " marked complete"
	} else {
		m.status = utils.ToKey(m.cursor) + " marked not complete"
	}
}

func (m *Model) clearOverride() {
	key := utils.ToKey(m.cursor)
	if _, ok := m.tracker.Overrides[key]; !ok {
		m.status = key + " has no manual edit"
		return
	}
	if err := m.tracker.ClearOverride(m.cursor); err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.status = "Manual edit for " + key + " removed"
}

func (m *Model) startEdit() tea.Cmd {
	fm := &DayFormModel{}
	if cell, ok := m.tracker.View().Cell(m.cursor); ok && cell.Duration > 0 {
		fm.Duration = strconv.Itoa(cell.Duration)
		fm.Note = cell.Note
	}
	m.dayForm = fm
	m.form = newDayForm(fm, m.cursor)
	m.state = stateEditing
	return m.form.Init()
}

// saveDayForm stores the submitted form. Validation problems keep the form open.
func (m *Model) saveDayForm() bool {
	err := m.tracker.SetOverride(m.cursor, m.dayForm.Duration, m.dayForm.Note)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			m.err = verr.Message
		} else {
			m.err = err.Error()
		}
		return false
	}
	m.err = ""
	m.status = utils.ToKey(m.cursor) + " saved"
	return true
}

func newDayForm(fm *DayFormModel, date time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(date.Format("Monday, January 2 2006")),
			huh.NewInput().
				Title("Duration (min)").
				Value(&fm.Duration).
				Validate(validateDuration),
			huh.NewInput().
				Title("Note").
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateDuration(s string) error {
	if _, err := validation.ParseDuration(s); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			return errors.New(verr.Message)
		}
		return err
	}
	return nil
}
