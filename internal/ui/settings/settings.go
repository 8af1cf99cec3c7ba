package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/startracker/internal/logger"
	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/storage"
)

const (
	fieldWindow = iota
	fieldSort
	fieldChart
	fieldCount
)

type Model struct {
	storage      *storage.Storage
	config       models.Config
	focusIndex   int
	saved        bool
	reset        bool
	confirmReset bool
	errorMsg     string
	width        int
	height       int
}

func New(storage *storage.Storage) (Model, error) {
	config, err := storage.GetConfig()
	if err != nil {
		return Model{}, err
	}

	return Model{
		storage: storage,
		config:  config,
	}, nil
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
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			m.focusIndex = (m.focusIndex + 1) % fieldCount
			return m, nil

		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			m.focusIndex = (m.focusIndex + fieldCount - 1) % fieldCount
			return m, nil

		case key.Matches(msg, keys.Change):
			m.cycle()
			m.saved = false
			return m, nil

		case key.Matches(msg, keys.Save):
			if err := m.storage.SaveConfig(m.config); err != nil {
				m.errorMsg = err.Error()
				m.saved = false
				return m, nil
			}
			m.saved = true
			m.errorMsg = ""
			return m, tea.Quit

		case key.Matches(msg, keys.Reset):
			if !m.confirmReset {
				m.confirmReset = true
				return m, nil
			}
			if err := m.resetAllData(); err != nil {
				m.errorMsg = err.Error()
				m.confirmReset = false
				return m, nil
			}
			m.reset = true
			return m, tea.Quit

		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			if m.confirmReset {
				m.confirmReset = false
				return m, nil
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) cycle() {
	switch m.focusIndex {
	case fieldWindow:
		m.config.ReviewWindow = m.config.ReviewWindow.Next()
	case fieldSort:
		m.config.SortBy = m.config.SortBy.Next()
	case fieldChart:
		m.config.ChartType = m.config.ChartType.Next()
	}
}

func (m *Model) resetAllData() error {
	if err := m.storage.ResetAllData(); err != nil {
		return err
	}
	logger.Info("All data reset from settings")

	m.config = models.DefaultConfig()
	return m.storage.SaveConfig(m.config)
}

// Config returns the preferences as last edited.
func (m Model) Config() models.Config {
	return m.config
}

func (m Model) WasReset() bool {
	return m.reset
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(4)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(2).
		Align(lipgloss.Center)

	formStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginTop(1).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		Width(24)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1)

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true).
		MarginTop(2)

	title := titleStyle.Render("⚙️  Settings")

	rows := []struct {
		label string
		value string
	}{
		{"Default review window:", m.config.ReviewWindow.Label()},
		{"Sort habits by:", m.config.SortBy.Label()},
		{"Chart type:", m.config.ChartType.Label()},
	}

	var form string
	for i, row := range rows {
		value := valueStyle.Render("‹ " + row.value + " ›")
		if i == m.focusIndex {
			value = focusedStyle.Render("‹ " + row.value + " ›")
		}
		form += labelStyle.Render(row.label) + value + "\n\n"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		formStyle.Render(form),
		m.renderHelp(),
	)

	if m.saved {
		content += "\n" + successStyle.Render("✅ Settings saved successfully!")
	}

	if m.reset {
		content += "\n" + successStyle.Render("🔄 All data reset successfully!")
	}

	if m.confirmReset {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + warningStyle.Render("⚠️  WARNING: This will delete ALL habits and star history!")
	}

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + errorStyle.Render(fmt.Sprintf("❌ %s", m.errorMsg))
	}

	return containerStyle.Render(content)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	if m.confirmReset {
		return helpStyle.Render("⚠️  Press 'r' again to confirm RESET (deletes all data) • b: cancel")
	}

	return helpStyle.Render("↑/↓: select • ←/→/enter: change • s: save • r: reset all data • b: back • q: quit")
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Change   key.Binding
	Save     key.Binding
	Reset    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next field"),
	),
	Change: key.NewBinding(
		key.WithKeys("left", "right", "h", "l", "enter", " "),
		key.WithHelp("←/→", "change"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset all data"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
