package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/startracker/internal/logger"
	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/storage"
	"github.com/adibhanna/startracker/internal/tracker"
	"github.com/adibhanna/startracker/internal/ui/datepicker"
	"github.com/adibhanna/startracker/internal/ui/habitform"
	"github.com/adibhanna/startracker/internal/ui/help"
	"github.com/adibhanna/startracker/internal/ui/review"
)

const (
	dayCheckInterval = time.Minute
	newDayNoticeTime = 5 * time.Second
	noticeTime       = 3 * time.Second
)

type dayTickMsg time.Time

// clearMessageMsg clears the notice it was scheduled for. A newer notice
// bumps the id and survives older clears.
type clearMessageMsg struct{ id int }

type ViewState int

const (
	HomeView ViewState = iota
	ReviewView
	HelpView
	CalendarView
	FormView
	ConfirmDeleteView
)

type Model struct {
	tracker      *tracker.Tracker
	storage      *storage.Storage
	config       models.Config
	habits       []models.Habit
	cursor       int
	selectedDate string
	today        string
	viewState    ViewState
	width        int
	height       int
	dayProgress  progress.Model

	// Sub-models
	reviewModel review.Model
	helpModel   help.Model
	pickerModel datepicker.Model
	form        *huh.Form
	formInput   *models.HabitInput
	editingID   string

	message   string
	messageID int

	shouldQuit   bool
	openSettings bool
}

func New(tr *tracker.Tracker, storage *storage.Storage) (Model, error) {
	config, err := storage.GetConfig()
	if err != nil {
		return Model{}, err
	}

	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 40

	today := tr.Today()
	return Model{
		tracker:      tr,
		storage:      storage,
		config:       config,
		habits:       tr.Habits(),
		selectedDate: today,
		today:        today,
		viewState:    HomeView,
		dayProgress:  prog,
		helpModel:    help.New(storage.DataDir()),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return dayTickCmd()
}

func dayTickCmd() tea.Cmd {
	return tea.Tick(dayCheckInterval, func(t time.Time) tea.Msg {
		return dayTickMsg(t)
	})
}

func (m *Model) flash(text string, d time.Duration) tea.Cmd {
	m.messageID++
	m.message = text
	id := m.messageID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearMessageMsg{id: id}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dayProgress.Width = max(10, min(msg.Width/3, 40))

		helpModel, _ := m.helpModel.Update(msg)
		m.helpModel = helpModel.(help.Model)
		reviewModel, _ := m.reviewModel.Update(msg)
		m.reviewModel = reviewModel.(review.Model)
		pickerModel, _ := m.pickerModel.Update(msg)
		m.pickerModel = pickerModel.(datepicker.Model)
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width-4, 70))
		}
		return m, nil

	case dayTickMsg:
		return m.checkNewDay()

	case clearMessageMsg:
		if msg.id == m.messageID {
			m.message = ""
		}
		return m, nil
	}

	switch m.viewState {
	case FormView:
		return m.updateForm(msg)
	case ReviewView:
		reviewModel, cmd := m.reviewModel.Update(msg)
		m.reviewModel = reviewModel.(review.Model)
		if m.reviewModel.ShouldQuit() {
			m.viewState = HomeView
		}
		return m, cmd
	case HelpView:
		helpModel, _ := m.helpModel.Update(msg)
		m.helpModel = helpModel.(help.Model)
		if m.helpModel.ShouldQuit() {
			m.viewState = HomeView
		}
		return m, nil
	case CalendarView:
		pickerModel, _ := m.pickerModel.Update(msg)
		m.pickerModel = pickerModel.(datepicker.Model)
		if m.pickerModel.Done() {
			if date, ok := m.pickerModel.Selected(); ok {
				m.selectedDate = date
			}
			m.viewState = HomeView
		}
		return m, nil
	case ConfirmDeleteView:
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.habits)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, keys.Toggle):
		return m.toggleSelected()

	case key.Matches(keyMsg, keys.PrevDay):
		m.selectedDate = shiftDate(m.selectedDate, -1)

	case key.Matches(keyMsg, keys.NextDay):
		if next := shiftDate(m.selectedDate, 1); next <= m.today {
			m.selectedDate = next
		}

	case key.Matches(keyMsg, keys.Today):
		m.selectedDate = m.today

	case key.Matches(keyMsg, keys.Calendar):
		m.pickerModel = datepicker.New(m.selectedDate, m.tracker.Now())
		pickerModel, _ := m.pickerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.pickerModel = pickerModel.(datepicker.Model)
		m.viewState = CalendarView

	case key.Matches(keyMsg, keys.Add):
		return m.openForm("✨ New Habit", "", &models.HabitInput{})

	case key.Matches(keyMsg, keys.Edit):
		if habit, ok := m.selectedHabit(); ok {
			return m.openForm("✏️  Edit Habit", habit.ID, &models.HabitInput{
				Name:        habit.Name,
				Description: habit.Description,
				Color:       habit.Color,
				Icon:        habit.Icon,
			})
		}

	case key.Matches(keyMsg, keys.Delete):
		if _, ok := m.selectedHabit(); ok {
			m.viewState = ConfirmDeleteView
		}

	case key.Matches(keyMsg, keys.MoveUp):
		return m.moveSelected(-1)

	case key.Matches(keyMsg, keys.MoveDown):
		return m.moveSelected(1)

	case key.Matches(keyMsg, keys.Review):
		m.reviewModel = review.New(m.tracker, m.config)
		reviewModel, _ := m.reviewModel.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.reviewModel = reviewModel.(review.Model)
		m.viewState = ReviewView

	case key.Matches(keyMsg, keys.Help):
		m.helpModel = m.helpModel.Reset()
		m.viewState = HelpView

	case key.Matches(keyMsg, keys.Settings):
		m.openSettings = true
		return m, tea.Quit
	}

	return m, nil
}

// checkNewDay follows the calendar forward when the date rolls over, unless
// the user is looking at another day.
func (m Model) checkNewDay() (tea.Model, tea.Cmd) {
	today := m.tracker.Today()
	if today == m.today {
		return m, dayTickCmd()
	}

	following := m.selectedDate == m.today
	m.today = today
	if !following {
		return m, dayTickCmd()
	}

	m.selectedDate = today
	logger.Debug("New day", "date", today)
	cmd := m.flash("🌅 A new day has begun! Time to earn some stars.", newDayNoticeTime)
	return m, tea.Batch(dayTickCmd(), cmd)
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	habit, ok := m.selectedHabit()
	if !ok {
		return m, nil
	}

	entry, err := m.tracker.ToggleStar(habit.ID, m.selectedDate)
	if err != nil {
		cmd := m.flash("❌ "+err.Error(), noticeTime)
		return m, cmd
	}
	if entry.Earned() {
		cmd := m.flash(fmt.Sprintf("⭐ Star earned for %s!", habit.Name), noticeTime)
		return m, cmd
	}
	return m, nil
}

func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	habit, ok := m.selectedHabit()
	if !ok {
		return m, nil
	}
	if err := m.tracker.MoveHabit(habit.ID, delta); err != nil {
		cmd := m.flash("❌ "+err.Error(), noticeTime)
		return m, cmd
	}
	m.refresh()
	for i, h := range m.habits {
		if h.ID == habit.ID {
			m.cursor = i
		}
	}
	return m, nil
}

func (m Model) openForm(title, editingID string, in *models.HabitInput) (tea.Model, tea.Cmd) {
	m.formInput = in
	m.editingID = editingID
	m.form = habitform.New(title, in)
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width-4, 70))
	}
	m.viewState = FormView
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var (
			habit models.Habit
			err   error
			verb  = "Added"
		)
		if m.editingID == "" {
			habit, err = m.tracker.AddHabit(*m.formInput)
		} else {
			verb = "Updated"
			habit, err = m.tracker.EditHabit(m.editingID, *m.formInput)
		}
		m.closeForm()
		if err != nil {
			cmd := m.flash("❌ "+err.Error(), noticeTime)
			return m, cmd
		}
		m.refresh()
		if verb == "Added" {
			m.cursor = len(m.habits) - 1
		}
		cmd := m.flash(fmt.Sprintf("%s %s %s", verb, habit.Icon, habit.Name), noticeTime)
		return m, cmd

	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}

	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.formInput = nil
	m.editingID = ""
	m.viewState = HomeView
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.viewState = HomeView
		habit, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		if err := m.tracker.DeleteHabit(habit.ID); err != nil {
			cmd := m.flash("❌ "+err.Error(), noticeTime)
			return m, cmd
		}
		m.refresh()
		cmd := m.flash(fmt.Sprintf("🗑️  Deleted %s", habit.Name), noticeTime)
		return m, cmd
	case "n", "N", "esc", "b":
		m.viewState = HomeView
	}
	return m, nil
}

func (m *Model) refresh() {
	m.habits = m.tracker.Habits()
	m.cursor = max(0, min(m.cursor, len(m.habits)-1))
}

func (m Model) selectedHabit() (models.Habit, bool) {
	if m.cursor < 0 || m.cursor >= len(m.habits) {
		return models.Habit{}, false
	}
	return m.habits[m.cursor], true
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.viewState {
	case ReviewView:
		return m.reviewModel.View()
	case HelpView:
		return m.helpModel.View()
	case CalendarView:
		return m.pickerModel.View()
	case FormView:
		return m.renderFormView()
	default:
		return m.renderHomeView()
	}
}

func (m Model) renderHomeView() string {
	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(1, 2)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.renderHeader(),
		m.renderDayProgress(),
		m.renderHabitList(),
		m.renderHelp(),
	)

	return containerStyle.Render(content)
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 3).
		MarginBottom(1)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	pastStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	date, _ := time.Parse(models.DateFormat, m.selectedDate)
	dateLine := dateStyle.Render(date.Format("Monday, January 2, 2006"))
	if m.selectedDate == m.today {
		dateLine += dateStyle.Render(" • Today")
	} else {
		dateLine += pastStyle.Render(" • Viewing past date (t: back to today)")
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("⭐ Star Tracker"),
		dateLine,
	)
}

func (m Model) renderDayProgress() string {
	progressStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(1).
		MarginBottom(1)

	total := len(m.habits)
	earned := m.tracker.EarnedOn(m.selectedDate)

	percent := 0.0
	if total > 0 {
		percent = float64(earned) / float64(total)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		progressStyle.Render(fmt.Sprintf("%d/%d stars earned", earned, total)),
		m.dayProgress.ViewAs(percent),
	)
}

func (m Model) renderHabitList() string {
	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF7CCB")).
		Padding(1, 2).
		MarginTop(1)

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	if len(m.habits) == 0 {
		return listStyle.Render(emptyStyle.Render("No habits yet. Press 'a' to add your first habit."))
	}

	earnedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	missedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7CCB")).Bold(true)

	var rows []string
	for i, habit := range m.habits {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("▶ ")
		}

		star := missedStyle.Render("☆")
		if m.tracker.Stars(habit.ID, m.selectedDate) == 1 {
			star = earnedStyle.Render("★")
		}

		nameStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(models.ColorFor(habit.Color).Hex)).
			Bold(i == m.cursor)

		row := fmt.Sprintf("%s%s  %s %s", cursor, star, habit.Icon, nameStyle.Render(habit.Name))
		if habit.Description != "" {
			row += descStyle.Render("  " + habit.Description)
		}
		rows = append(rows, row)
	}

	return listStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFormView() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(1, 2)

	if m.form == nil {
		return ""
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(m.form.View()))
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Bold(true)

	helpText := "space: star • ←/→: day • c: calendar • a: add • e: edit • d: delete • r: review • ?: help • g: settings • q: quit"

	if m.viewState == ConfirmDeleteView {
		habit, _ := m.selectedHabit()
		return lipgloss.JoinVertical(lipgloss.Center,
			warningStyle.Render(fmt.Sprintf("Delete %q and all of its stars? (y/n)", habit.Name)),
			helpStyle.Render(helpText),
		)
	}

	if m.message != "" {
		return lipgloss.JoinVertical(
			lipgloss.Center,
			messageStyle.Render(m.message),
			helpStyle.Render(helpText),
		)
	}

	return helpStyle.Render(helpText)
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func (m Model) ShouldOpenSettings() bool {
	return m.openSettings
}

func (m Model) SelectedDate() string {
	return m.selectedDate
}

func (m Model) Message() string {
	return m.message
}

func shiftDate(date string, days int) string {
	t, err := time.Parse(models.DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(models.DateFormat)
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Calendar key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Review   key.Binding
	Help     key.Binding
	Settings key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle star"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous day"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next day"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Calendar: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "calendar"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add habit"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit habit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete habit"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Review: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "review"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?/f1", "help"),
	),
	Settings: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "settings"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
