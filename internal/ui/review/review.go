package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/stats"
	"github.com/adibhanna/startracker/internal/storage"
	"github.com/adibhanna/startracker/internal/tracker"
)

type exportResultMsg struct {
	success bool
	message string
}

type clearMessageMsg struct{}

type Model struct {
	tracker *tracker.Tracker
	window  models.Window
	chart   models.ChartType
	sortBy  models.SortBy
	stats   []models.MonthlyStats
	bar     progress.Model
	width   int
	height  int

	exportMessage string
	showMessage   bool
	quit          bool
}

func New(tr *tracker.Tracker, config models.Config) Model {
	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 30

	m := Model{
		tracker: tr,
		window:  config.ReviewWindow,
		chart:   config.ChartType,
		sortBy:  config.SortBy,
		bar:     prog,
	}
	return m.Refresh()
}

// Refresh recomputes the statistics for the current window.
func (m Model) Refresh() Model {
	m.stats = m.tracker.Stats(m.window)
	m.quit = false
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(40, msg.Width/3))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			m.quit = true
			return m, nil
		case key.Matches(msg, keys.Window):
			m.window = m.window.Next()
			m.stats = m.tracker.Stats(m.window)
		case key.Matches(msg, keys.Chart):
			m.chart = m.chart.Next()
		case key.Matches(msg, keys.Sort):
			m.sortBy = m.sortBy.Next()
		case key.Matches(msg, keys.Export):
			return m, m.exportReport()
		}
		return m, nil

	case exportResultMsg:
		m.exportMessage = msg.message
		m.showMessage = true
		// Clear message after 3 seconds
		return m, tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
			return clearMessageMsg{}
		})

	case clearMessageMsg:
		m.showMessage = false
		m.exportMessage = ""
		return m, nil
	}

	return m, nil
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

func (m Model) Window() models.Window {
	return m.window
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(1, 2)

	if len(m.stats) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888")).
			MarginTop(1)
		return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.renderTitle(),
			emptyStyle.Render("No habits yet. Add one from the dashboard to start collecting stars."),
			m.renderHelp(),
		))
	}

	var main string
	if m.chart == models.ChartSummary {
		main = m.renderSummary()
	} else {
		main = m.renderChart()
	}

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTopPerformers(),
		m.renderAttention(),
	)

	var body string
	if m.width >= 110 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, "    ", side)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, main, side)
	}

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderTotals(),
		body,
		m.renderHelp(),
	))
}

func (m Model) renderTitle() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB"))

	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(1)

	heading := m.window.Label()
	if m.window == models.WindowMonth {
		heading += " - " + m.tracker.Now().Format("January 2006")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("📊 Review: "+heading),
		subtitleStyle.Render(fmt.Sprintf("Chart: %s • Sort: %s", m.chart.Label(), m.sortBy.Label())),
	)
}

func (m Model) renderTotals() string {
	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	summary := stats.Summarize(m.stats)
	return statsStyle.Render(fmt.Sprintf(
		"Habits: %d | Completed days: %d | Average completion: %.1f%%",
		len(m.stats),
		summary.CompletedDays,
		summary.AverageCompletionRate,
	))
}

// renderChart draws one horizontal bar per habit: earned days in the habit's
// color followed by missed days.
func (m Model) renderChart() string {
	sectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(0, 1)

	nameStyle := lipgloss.NewStyle().Width(18)
	missedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#444"))
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))

	shown := stats.Display(m.stats, m.chart, m.sortBy)
	data := stats.Chart(shown, m.tracker.Habits())

	barWidth := 30
	if m.width < 90 {
		barWidth = 15
	}

	var rows []string
	for _, d := range data {
		total := d.Completed + d.Missed
		filled := 0
		if total > 0 {
			filled = max(0, min(barWidth, d.Completed*barWidth/total))
		}

		color := lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color))
		bar := color.Render(strings.Repeat("█", filled)) +
			missedStyle.Render(strings.Repeat("░", barWidth-filled))

		rows = append(rows, fmt.Sprintf("%s %s %s",
			nameStyle.Render(truncate(d.Name, 17)),
			bar,
			infoStyle.Render(fmt.Sprintf("%d/%d ★%.2f", d.Completed, total, d.AverageStars)),
		))
	}

	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderSummary() string {
	sectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FDFF8C")).
		Padding(0, 1)

	nameStyle := lipgloss.NewStyle().Bold(true)
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))

	var rows []string
	for _, s := range stats.Display(m.stats, m.chart, m.sortBy) {
		percent := max(0, min(1, s.CompletionRate/100))
		rows = append(rows,
			nameStyle.Render(s.HabitName)+" "+infoStyle.Render(fmt.Sprintf(
				"%d of %d days • %d stars • %.1f%%",
				s.CompletedDays, s.TotalDays, s.TotalStars, s.CompletionRate,
			)),
			m.bar.ViewAs(percent),
			"",
		)
	}

	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderTopPerformers() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4CAF50")).
		MarginTop(1)

	medals := []string{"🥇", "🥈", "🥉"}
	lines := []string{titleStyle.Render("🏆 Top Performers")}
	for i, s := range stats.TopPerformers(m.stats, stats.TopPerformersLimit) {
		lines = append(lines, fmt.Sprintf("%s %s (%.2f avg)", medals[i], s.HabitName, s.AverageStars))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderAttention() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginTop(1)

	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	lines := []string{titleStyle.Render("⚠️  Needs Attention")}
	flagged := stats.NeedsAttention(m.stats)
	if len(flagged) == 0 {
		lines = append(lines, okStyle.Render("✅ All habits on track"))
	}
	for _, s := range flagged {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("• %s (%.2f avg)", s.HabitName, s.AverageStars)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	help := "w: month/all time • v: chart • s: sort • x: export • b: back"

	if m.showMessage && m.exportMessage != "" {
		messageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
		help = messageStyle.Render(m.exportMessage) + "\n" + help
	}

	return helpStyle.Render(help)
}

func (m Model) exportReport() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		now := tr.Now()
		report := storage.ExportReport(tr.Habits(), tr.MonthlyStats(), tr.AllTimeStats(), now)

		filePath, err := storage.SaveReport(report, now)
		if err != nil {
			return exportResultMsg{success: false, message: fmt.Sprintf("Export failed: %v", err)}
		}
		return exportResultMsg{success: true, message: fmt.Sprintf("✅ Exported to %s", filePath)}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type keyMap struct {
	Window key.Binding
	Chart  key.Binding
	Sort   key.Binding
	Export key.Binding
	Back   key.Binding
}

var keys = keyMap{
	Window: key.NewBinding(
		key.WithKeys("w", "tab"),
		key.WithHelp("w", "month/all time"),
	),
	Chart: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "chart type"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort order"),
	),
	Export: key.NewBinding(
		key.WithKeys("x", "e"),
		key.WithHelp("x", "export"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc", "r"),
		key.WithHelp("b", "back"),
	),
}
