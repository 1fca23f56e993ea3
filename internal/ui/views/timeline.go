package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/state"
	"github.com/tdnguyen/planboard/internal/timeline"
	"github.com/tdnguyen/planboard/internal/ui/keys"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

// TimelineView renders the project's tasks as a Gantt-style chart
type TimelineView struct {
	client  *api.Client
	store   *state.Store
	project models.Project
	styles  *styles.Styles
	keys    keys.KeyMap
	loc     *time.Location

	width  int
	height int
	loaded bool
	cursor int

	statusText string
}

// NewTimelineView creates the timeline for one project
func NewTimelineView(client *api.Client, store *state.Store, project models.Project, loc *time.Location) *TimelineView {
	return &TimelineView{
		client:  client,
		store:   store,
		project: project,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		loc:     loc,
	}
}

// Init initializes the view
func (v *TimelineView) Init() tea.Cmd {
	return v.loadTasks
}

func (v *TimelineView) loadTasks() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	tasks, err := v.client.ListProjectTasks(ctx, v.project.ID)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return boardTasksLoadedMsg{projectID: v.project.ID, tasks: tasks}
}

// Update handles messages
func (v *TimelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case boardTasksLoadedMsg:
		if msg.projectID != v.project.ID {
			return v, nil
		}
		v.store.SetTasks(msg.tasks)
		v.loaded = true
		v.statusText = ""
		return v, nil

	case ErrMsg:
		v.loaded = true
		v.statusText = msg.Err.Error()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToProjects{} }
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil
		case key.Matches(msg, v.keys.Down):
			v.cursor++
			return v, nil
		case msg.String() == "r":
			return v, v.loadTasks
		}
	}

	return v, nil
}

// Editing reports whether a text input owns the keyboard; the timeline has none
func (v *TimelineView) Editing() bool { return false }

// View renders the view
func (v *TimelineView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	title := s.Title.Render(v.project.Name + " / Timeline")
	if v.statusText != "" {
		title += "  " + s.StatusError.Render(v.statusText)
	}

	layout := timeline.Compute(v.store.Tasks)
	if layout.Empty {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			s.TitleMuted.Render("No tasks with due dates to schedule."),
			"",
			v.renderHelp(),
		)
	}

	labelWidth := clamp(v.width/4, 12, 28)
	chartWidth := max(v.width-labelWidth-6, 20)

	visible := max(v.height-10, 4)
	if v.cursor > len(layout.Bars)-1 {
		v.cursor = max(0, len(layout.Bars)-1)
	}
	start := clamp(v.cursor-visible+1, 0, max(0, len(layout.Bars)-visible))
	end := min(start+visible, len(layout.Bars))

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, v.renderBar(layout.Bars[i], i == v.cursor, labelWidth, chartWidth))
	}

	axis := v.renderAxis(layout, labelWidth, chartWidth)
	span := s.TitleMuted.Render(fmt.Sprintf("%s – %s (%d days)",
		layout.MinDate.Format("Jan 2, 2006"),
		layout.MaxDate.Format("Jan 2, 2006"),
		layout.TotalSpanDays,
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		span,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		axis,
		"",
		v.renderHelp(),
	)
}

func (v *TimelineView) renderBar(bar timeline.Bar, selected bool, labelWidth, chartWidth int) string {
	s := v.styles

	label := bar.Label
	if len(label) > labelWidth-1 {
		label = label[:labelWidth-2] + "…"
	}
	labelStyle := s.TitleMuted
	if selected {
		labelStyle = s.Title
	}

	left := int(bar.LeftPercent / 100 * float64(chartWidth))
	width := int(bar.WidthPercent / 100 * float64(chartWidth))
	if width < 1 {
		width = 1
	}
	if left+width > chartWidth {
		left = chartWidth - width
	}
	if left < 0 {
		left = 0
	}

	block := lipgloss.NewStyle().
		Foreground(lipgloss.Color(bar.Color)).
		Render(strings.Repeat("█", width))

	row := strings.Repeat(" ", left) + block
	return labelStyle.Width(labelWidth).Render(label) + " " + row
}

func (v *TimelineView) renderAxis(layout timeline.Layout, labelWidth, chartWidth int) string {
	s := v.styles

	// Tick row
	ticks := make([]rune, chartWidth)
	for i := range ticks {
		ticks[i] = '─'
	}
	for _, l := range layout.Axis {
		pos := int(l.Percent / 100 * float64(chartWidth-1))
		ticks[clamp(pos, 0, chartWidth-1)] = '┴'
	}

	// Date labels under the ticks; skip ones that would collide
	labels := strings.Repeat(" ", chartWidth)
	lastEnd := -2
	for _, l := range layout.Axis {
		text := l.Date.Format("Jan 2")
		pos := int(l.Percent / 100 * float64(chartWidth-1))
		if pos+len(text) > chartWidth {
			pos = chartWidth - len(text)
		}
		if pos <= lastEnd {
			continue
		}
		labels = labels[:pos] + text + labels[pos+len(text):]
		lastEnd = pos + len(text)
	}

	pad := strings.Repeat(" ", labelWidth+1)
	return pad + s.TitleMuted.Render(string(ticks)) + "\n" + pad + s.TitleMuted.Render(labels)
}

func (v *TimelineView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s scroll • %s refresh • %s back • %s quit",
			s.HelpKey.Render("↑↓"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("esc"),
			s.HelpKey.Render("q"),
		),
	)
}
