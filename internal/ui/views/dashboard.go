package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/state"
	"github.com/tdnguyen/planboard/internal/ui/keys"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

// DashboardView is the landing screen: workload numbers, due-soon tasks
// and the notification inbox
type DashboardView struct {
	client *api.Client
	store  *state.Store
	styles *styles.Styles
	keys   keys.KeyMap
	loc    *time.Location

	width  int
	height int
	loaded bool
	cursor int // notification cursor

	myTasks []models.Task

	statusText string
}

// NewDashboardView creates the dashboard
func NewDashboardView(client *api.Client, store *state.Store, loc *time.Location) *DashboardView {
	return &DashboardView{
		client: client,
		store:  store,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		loc:    loc,
	}
}

// Init initializes the view
func (v *DashboardView) Init() tea.Cmd {
	return tea.Batch(v.loadMyTasks, v.loadNotifications)
}

type myTasksLoadedMsg struct {
	tasks []models.Task
}

type notificationsLoadedMsg struct {
	notifications []models.Notification
}

type notificationsMutatedMsg struct{}

func (v *DashboardView) loadMyTasks() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	tasks, err := v.client.ListMyTasks(ctx)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return myTasksLoadedMsg{tasks: tasks}
}

func (v *DashboardView) loadNotifications() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	notifications, err := v.client.ListNotifications(ctx)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return notificationsLoadedMsg{notifications: notifications}
}

// Update handles messages
func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case myTasksLoadedMsg:
		v.myTasks = msg.tasks
		v.loaded = true
		v.statusText = ""
		return v, nil

	case notificationsLoadedMsg:
		v.store.SetNotifications(msg.notifications)
		v.cursor = clamp(v.cursor, 0, max(0, len(v.store.Notifications)-1))
		return v, nil

	case notificationsMutatedMsg:
		return v, v.loadNotifications

	case ErrMsg:
		v.loaded = true
		v.statusText = msg.Err.Error()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil

		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.store.Notifications)-1 {
				v.cursor++
			}
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.cursor < len(v.store.Notifications) {
				n := v.store.Notifications[v.cursor]
				if !n.IsRead {
					id := n.ID
					return v, func() tea.Msg {
						ctx, cancel := reqContext()
						defer cancel()
						if err := v.client.MarkNotificationRead(ctx, id); err != nil {
							return ErrMsg{Err: err}
						}
						return notificationsMutatedMsg{}
					}
				}
			}
			return v, nil

		case msg.String() == "a":
			return v, func() tea.Msg {
				ctx, cancel := reqContext()
				defer cancel()
				if err := v.client.MarkAllNotificationsRead(ctx); err != nil {
					return ErrMsg{Err: err}
				}
				return notificationsMutatedMsg{}
			}

		case msg.String() == "r":
			return v, tea.Batch(v.loadMyTasks, v.loadNotifications)
		}
	}

	return v, nil
}

// Editing reports whether a text input owns the keyboard; the dashboard has none
func (v *DashboardView) Editing() bool { return false }

// View renders the view
func (v *DashboardView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	greeting := "Dashboard"
	if v.store.Me != nil {
		greeting = "Hello, " + v.store.Me.DisplayName()
	}
	title := s.Title.Render(greeting)
	if v.statusText != "" {
		title += "  " + s.StatusError.Render(v.statusText)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderStats(),
		" ",
		v.renderDueSoon(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		top,
		"",
		v.renderNotifications(),
		v.renderHelp(),
	)
}

func (v *DashboardView) renderStats() string {
	s := v.styles
	stats := v.store.Stats()

	byStatus := func(status string) int {
		n := 0
		for _, t := range v.myTasks {
			if t.Status == status {
				n++
			}
		}
		return n
	}

	lines := []string{
		s.ColumnHeader.Render("Workload"),
		fmt.Sprintf("Projects      %d (%d active)", stats.TotalProjects, stats.ActiveProjects),
		fmt.Sprintf("My tasks      %d", len(v.myTasks)),
		fmt.Sprintf("  to do       %d", byStatus(models.StatusTodo)),
		fmt.Sprintf("  in progress %d", byStatus(models.StatusInProgress)),
		fmt.Sprintf("  blocked     %d", byStatus(models.StatusBlocked)),
		fmt.Sprintf("  done        %d", byStatus(models.StatusDone)),
	}

	return s.Panel.Width(clamp(v.width/3, 24, 36)).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *DashboardView) renderDueSoon() string {
	s := v.styles
	cutoff := time.Now().AddDate(0, 0, 7)

	lines := []string{s.ColumnHeader.Render("Due soon")}
	count := 0
	for _, t := range v.myTasks {
		if t.Status == models.StatusDone || !t.DueDate.Valid() || t.DueDate.After(cutoff) {
			continue
		}
		marker := lipgloss.NewStyle().Foreground(styles.StatusColor(t.Status)).Render("●")
		lines = append(lines, fmt.Sprintf("%s %s %s", marker, t.Title,
			s.TitleMuted.Render(dueLabel(t.DueDate, v.loc))))
		count++
		if count >= 8 {
			break
		}
	}
	if count == 0 {
		lines = append(lines, s.TitleMuted.Render("Nothing due this week"))
	}

	return s.Panel.Width(clamp(v.width/2, 30, 60)).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *DashboardView) renderNotifications() string {
	s := v.styles

	header := s.ColumnHeader.Render("Notifications")
	if v.store.UnreadCount > 0 {
		header += " " + s.Badge.Render(fmt.Sprintf("%d", v.store.UnreadCount))
	}

	lines := []string{header}
	shown := min(len(v.store.Notifications), max(v.height/3, 4))
	for i := 0; i < shown; i++ {
		n := v.store.Notifications[i]
		marker := "·"
		if !n.IsRead {
			marker = lipgloss.NewStyle().Foreground(styles.Current.Error).Render("●")
		}
		ts := ""
		if n.CreatedAt.Valid() {
			ts = n.CreatedAt.In(v.loc).Format("Jan 2 15:04")
		}
		line := fmt.Sprintf("%s %s %s", marker, n.Title, s.TitleMuted.Render(ts))
		if i == v.cursor {
			lines = append(lines, s.ListSelected.Render(line))
		} else {
			lines = append(lines, s.ListItem.Render(line))
		}
	}
	if shown == 0 {
		lines = append(lines, s.TitleMuted.Render("No notifications"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *DashboardView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s mark read • %s mark all • %s refresh • %s quit",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("a"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("q"),
		),
	)
}
