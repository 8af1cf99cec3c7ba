package help

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width   int
	height  int
	dataDir string
	quit    bool
}

func New(dataDir string) Model {
	return Model{dataDir: dataDir}
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
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Help):
			m.quit = true
			return m, nil
		}
	}

	return m, nil
}

// Reset clears the close request so the view can be shown again.
func (m Model) Reset() Model {
	m.quit = false
	return m
}

func (m Model) View() string {
	// Use reasonable defaults if dimensions aren't set
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(2)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	line := func(k, desc string) string {
		return fmt.Sprintf("%s - %s", keyStyle.Render(k), descStyle.Render(desc))
	}

	title := titleStyle.Render("⭐ Star Tracker Help")

	trackSection := sectionTitleStyle.Render("✨ Tracking")
	trackContent := lipgloss.JoinVertical(lipgloss.Left,
		line("space / enter", "Toggle today's star for the selected habit"),
		line("↑ / k, ↓ / j", "Select habit"),
		line("a", "Add a habit"),
		line("e", "Edit the selected habit"),
		line("d", "Delete the selected habit and its history"),
		line("K / J", "Move the selected habit up or down"),
	)

	dateSection := sectionTitleStyle.Render("📅 Dates")
	dateContent := lipgloss.JoinVertical(lipgloss.Left,
		line("← / h", "Previous day"),
		line("→ / l", "Next day"),
		line("t", "Jump to today"),
		line("c", "Open the calendar"),
	)

	reviewSection := sectionTitleStyle.Render("📊 Review")
	reviewContent := lipgloss.JoinVertical(lipgloss.Left,
		line("r", "Open the review screen"),
		line("w", "Switch between this month and all time"),
		line("v", "Cycle chart: top 10, all habits, summary"),
		line("s", "Cycle sort: performance, completion, name"),
		line("x", "Export a text report"),
	)

	appSection := sectionTitleStyle.Render("⚙️  Settings & App")
	appContent := lipgloss.JoinVertical(lipgloss.Left,
		line("g", "Open settings"),
		line("? / f1", "Show this help page"),
		line("b / esc", "Go back"),
		line("q / Ctrl+C", "Quit the application"),
	)

	aboutSection := sectionTitleStyle.Render("ℹ️  About")
	aboutContent := descStyle.Render(
		"Each habit earns at most one star per day. The review screen counts\n" +
			"tracked days against the days in the month, or against the days since\n" +
			"the habit was created, and flags habits that slipped two days running.\n\n" +
			"Data is stored locally in " + m.dataDir)

	footer := footerStyle.Render("Press 'b/esc' to go back")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		trackSection,
		trackContent,
		dateSection,
		dateContent,
		reviewSection,
		reviewContent,
		appSection,
		appContent,
		aboutSection,
		aboutContent,
		footer,
	)

	return containerStyle.Render(content)
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Back key.Binding
	Help key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc", "q"),
		key.WithHelp("b/esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?", "close help"),
	),
}
