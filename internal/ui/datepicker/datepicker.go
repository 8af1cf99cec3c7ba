package datepicker

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/startracker/internal/models"
)

type Model struct {
	cursor time.Time
	today  time.Time
	width  int
	height int

	chosen    string
	done      bool
	cancelled bool
}

// New opens the picker on the month containing selected. Days after now
// cannot be chosen.
func New(selected string, now time.Time) Model {
	today := truncateDay(now)
	cursor, err := time.ParseInLocation(models.DateFormat, selected, now.Location())
	if err != nil || cursor.After(today) {
		cursor = today
	}
	return Model{cursor: cursor, today: today}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.cursor = m.cursor.AddDate(0, 0, -1)
		case key.Matches(msg, keys.Right):
			m.cursor = m.cursor.AddDate(0, 0, 1)
		case key.Matches(msg, keys.Up):
			m.cursor = m.cursor.AddDate(0, 0, -7)
		case key.Matches(msg, keys.Down):
			m.cursor = m.cursor.AddDate(0, 0, 7)
		case key.Matches(msg, keys.PrevMonth):
			m.cursor = addMonths(m.cursor, -1)
		case key.Matches(msg, keys.NextMonth):
			m.cursor = addMonths(m.cursor, 1)
		case key.Matches(msg, keys.Today):
			m.cursor = m.today
		case key.Matches(msg, keys.Select):
			if !m.cursor.After(m.today) {
				m.chosen = m.cursor.Format(models.DateFormat)
				m.done = true
			}
		case key.Matches(msg, keys.Back):
			m.cancelled = true
			m.done = true
		}
	}

	return m, nil
}

// Done reports whether the picker has closed, either by choice or by cancel.
func (m Model) Done() bool {
	return m.done
}

// Selected returns the chosen date and false when the picker was cancelled.
func (m Model) Selected() (string, bool) {
	return m.chosen, m.done && !m.cancelled
}

func (m Model) Cursor() string {
	return m.cursor.Format(models.DateFormat)
}

// Grid lists the days shown for the month containing t: whole Sunday-first
// weeks, padded with the tail of the previous month and the head of the next.
func Grid(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, 6-int(last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		Bold(true)

	dayStyle := lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	otherMonthStyle := dayStyle.Foreground(lipgloss.Color("#555"))
	futureStyle := dayStyle.Foreground(lipgloss.Color("#444")).Faint(true)
	todayStyle := dayStyle.Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	cursorStyle := dayStyle.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(1, 2)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	var b strings.Builder
	for _, name := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(dayStyle.Render(name))
	}
	weekdays := headerStyle.Render(b.String())

	var rows []string
	var row strings.Builder
	for i, d := range Grid(m.cursor) {
		label := d.Format("2")
		style := dayStyle
		switch {
		case d.Equal(m.cursor):
			style = cursorStyle
		case d.After(m.today):
			style = futureStyle
		case d.Equal(m.today):
			style = todayStyle
		case d.Month() != m.cursor.Month():
			style = otherMonthStyle
		}
		row.WriteString(style.Render(label))
		if i%7 == 6 {
			rows = append(rows, row.String())
			row.Reset()
		}
	}

	calendar := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("📅 "+m.cursor.Format("January 2006")),
		weekdays,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	help := helpStyle.Render("←/→/↑/↓: move • [/]: month • t: today • enter: select • esc: cancel")
	content := lipgloss.JoinVertical(lipgloss.Left, boxStyle.Render(calendar), help)

	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addMonths moves by whole months, clamping the day to the target month's
// length so Jan 31 + 1 month lands on the last day of February.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), lastDay)-1)
}

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Select    key.Binding
	Back      key.Binding
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous day"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next day"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous week"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next week"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("[", "pgup"),
		key.WithHelp("[", "previous month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("]", "pgdown"),
		key.WithHelp("]", "next month"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b", "q"),
		key.WithHelp("esc", "cancel"),
	),
}
