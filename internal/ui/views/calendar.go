package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/calendar"
	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/state"
	"github.com/tdnguyen/planboard/internal/ui/keys"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

// CalendarView shows the user's tasks and todos on a month grid
type CalendarView struct {
	client *api.Client
	store  *state.Store
	styles *styles.Styles
	keys   keys.KeyMap
	loc    *time.Location

	width  int
	height int
	loaded bool

	// First day of the displayed month, in loc
	month  time.Time
	cursor int // cell index into the built grid

	myTasks []models.Task

	statusText string
}

// NewCalendarView creates the calendar
func NewCalendarView(client *api.Client, store *state.Store, loc *time.Location) *CalendarView {
	now := time.Now().In(loc)
	return &CalendarView{
		client: client,
		store:  store,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		loc:    loc,
		month:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
	}
}

// Init initializes the view
func (v *CalendarView) Init() tea.Cmd {
	return v.loadMonth
}

type calendarLoadedMsg struct {
	tasks []models.Task
	todos []models.Todo
}

func (v *CalendarView) loadMonth() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()

	tasks, err := v.client.ListMyTasks(ctx)
	if err != nil {
		return ErrMsg{Err: err}
	}

	// Fetch todos for the whole displayed grid, filler weeks included
	start := v.month.AddDate(0, 0, -7)
	end := v.month.AddDate(0, 1, 7)
	todos, err := v.client.ListTodos(ctx, start, end)
	if err != nil {
		return ErrMsg{Err: err}
	}

	return calendarLoadedMsg{tasks: tasks, todos: todos}
}

func (v *CalendarView) grid() calendar.Grid {
	now := time.Now()
	entries := append(
		calendar.TaskEntries(v.myTasks, now, v.loc),
		calendar.TodoEntries(v.store.Todos, now, v.loc)...,
	)
	return calendar.Build(v.month, entries, now, v.loc)
}

// Update handles messages
func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case calendarLoadedMsg:
		v.myTasks = msg.tasks
		v.store.SetTodos(msg.todos)
		v.loaded = true
		v.statusText = ""
		return v, nil

	case ErrMsg:
		v.loaded = true
		v.statusText = msg.Err.Error()
		return v, nil

	case tea.KeyMsg:
		grid := v.grid()
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.PrevPeriod):
			v.month = v.month.AddDate(0, -1, 0)
			v.cursor = 0
			return v, v.loadMonth

		case key.Matches(msg, v.keys.NextPeriod):
			v.month = v.month.AddDate(0, 1, 0)
			v.cursor = 0
			return v, v.loadMonth

		case key.Matches(msg, v.keys.Today):
			now := time.Now().In(v.loc)
			v.month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, v.loc)
			v.cursor = 0
			return v, v.loadMonth

		case key.Matches(msg, v.keys.Left):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil

		case key.Matches(msg, v.keys.Right):
			if v.cursor < len(grid.Cells)-1 {
				v.cursor++
			}
			return v, nil

		case key.Matches(msg, v.keys.Up):
			if v.cursor >= 7 {
				v.cursor -= 7
			}
			return v, nil

		case key.Matches(msg, v.keys.Down):
			if v.cursor+7 < len(grid.Cells) {
				v.cursor += 7
			}
			return v, nil

		case msg.String() == "r":
			return v, v.loadMonth
		}
	}

	return v, nil
}

func stateColor(state string) lipgloss.Color {
	switch state {
	case calendar.StateDone:
		return styles.Current.Success
	case calendar.StateLate:
		return styles.Current.Error
	default:
		return styles.Current.Warning
	}
}

// Editing reports whether a text input owns the keyboard; the calendar has none
func (v *CalendarView) Editing() bool { return false }

// View renders the view
func (v *CalendarView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	grid := v.grid()
	if v.cursor >= len(grid.Cells) {
		v.cursor = len(grid.Cells) - 1
	}

	title := s.Title.Render("Calendar") + "  " +
		s.TitleMuted.Render(fmt.Sprintf("%s %d", grid.Month, grid.Year))
	if v.statusText != "" {
		title += "  " + s.StatusError.Render(v.statusText)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		v.renderGrid(grid),
		"",
		v.renderDayDetail(grid),
		v.renderHelp(),
	)
}

func (v *CalendarView) renderGrid(grid calendar.Grid) string {
	s := v.styles
	cellWidth := clamp(v.width/7-2, 8, 16)

	headers := make([]string, 7)
	for i, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		headers[i] = s.ColumnHeader.Width(cellWidth + 2).Render(d)
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, headers...)}

	for w := 0; w < grid.Weeks; w++ {
		cells := make([]string, 7)
		for d := 0; d < 7; d++ {
			idx := w*7 + d
			cells[d] = v.renderCell(grid.Cells[idx], idx == v.cursor, cellWidth)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *CalendarView) renderCell(cell calendar.Cell, selected bool, width int) string {
	s := v.styles

	dayStyle := lipgloss.NewStyle().Foreground(styles.Current.Foreground)
	if !cell.IsCurrentMonth {
		dayStyle = dayStyle.Foreground(styles.Current.ForegroundDim)
	}
	if cell.IsToday {
		dayStyle = dayStyle.Foreground(styles.Current.Primary).Bold(true)
	}

	day := dayStyle.Render(fmt.Sprintf("%2d", cell.Date.Day()))

	// One marker per entry, capped to the cell width
	markers := ""
	for i, e := range cell.Entries {
		if i >= width-3 {
			markers += "…"
			break
		}
		markers += lipgloss.NewStyle().Foreground(stateColor(e.State)).Render("●")
	}

	border := s.Column
	if selected {
		border = s.ColumnFocus
	}
	return border.Width(width).Render(day + "\n" + markers)
}

func (v *CalendarView) renderDayDetail(grid calendar.Grid) string {
	s := v.styles

	if v.cursor >= len(grid.Cells) {
		return ""
	}
	cell := grid.Cells[v.cursor]

	header := s.TitleMuted.Render(cell.Date.Format("Monday, Jan 2"))
	if len(cell.Entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, s.TitleMuted.Render("  nothing planned"))
	}

	lines := []string{header}
	for _, e := range cell.Entries {
		marker := lipgloss.NewStyle().Foreground(stateColor(e.State)).Render("●")
		lines = append(lines, fmt.Sprintf("  %s %s %s", marker, e.Title, s.TitleMuted.Render(e.Kind)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *CalendarView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s day • %s month • %s today • %s refresh • %s quit",
			s.HelpKey.Render("←↑↓→"),
			s.HelpKey.Render("[/]"),
			s.HelpKey.Render("t"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("q"),
		),
	)
}
