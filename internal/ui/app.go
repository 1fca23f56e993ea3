package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/cache"
	"github.com/tdnguyen/planboard/internal/config"
	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/poll"
	"github.com/tdnguyen/planboard/internal/state"
	"github.com/tdnguyen/planboard/internal/ui/styles"
	"github.com/tdnguyen/planboard/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewDashboard View = iota
	ViewProjects
	ViewBoard
	ViewTimeline
	ViewThreads
	ViewCalendar
	ViewTodos
	ViewJournal
	ViewTeam
)

var viewNames = map[View]string{
	ViewDashboard: "Dashboard",
	ViewProjects:  "Projects",
	ViewBoard:     "Board",
	ViewTimeline:  "Timeline",
	ViewThreads:   "Threads",
	ViewCalendar:  "Calendar",
	ViewTodos:     "Todos",
	ViewJournal:   "Journal",
	ViewTeam:      "Team",
}

// Every view the app routes to
type viewModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	Editing() bool
}

type App struct {
	client     *api.Client
	store      *state.Store
	settings   *cache.Cache
	controller *poll.Controller
	cfg        config.Config
	log        *zap.SugaredLogger
	loc        *time.Location
	styles     *styles.Styles

	// send pushes poll results into the program loop; set before Run
	send func(tea.Msg)

	currentView View
	curView     atomic.Int64
	curProject  atomic.Int64

	project    models.Project
	hasProject bool

	dashboard   *views.DashboardView
	projectList *views.ProjectListView
	board       *views.BoardView
	timeline    *views.TimelineView
	threads     *views.ThreadsView
	calendar    *views.CalendarView
	todos       *views.TodosView
	journal     *views.JournalView
	team        *views.TeamView

	width  int
	height int

	fatal error
}

// NewApp creates the application model
func NewApp(client *api.Client, settings *cache.Cache, cfg config.Config, log *zap.SugaredLogger) *App {
	store := state.NewStore()
	loc := cfg.Location()

	return &App{
		client:      client,
		store:       store,
		settings:    settings,
		controller:  poll.NewController(),
		cfg:         cfg,
		log:         log,
		loc:         loc,
		styles:      styles.NewStyles(),
		currentView: ViewDashboard,
		dashboard:   views.NewDashboardView(client, store, loc),
		projectList: views.NewProjectListView(client, store),
		calendar:    views.NewCalendarView(client, store, loc),
		todos:       views.NewTodosView(client, store, loc),
		journal:     views.NewJournalView(client, store, loc),
		team:        views.NewTeamView(client, store),
	}
}

// SetSend wires the program's message injector. Must be called before Run.
func (a *App) SetSend(send func(tea.Msg)) {
	a.send = send
}

// Close stops every polling loop
func (a *App) Close() {
	a.controller.StopAll()
}

// FatalErr reports the error that forced the app to exit, if any
func (a *App) FatalErr() error {
	return a.fatal
}

type meLoadedMsg struct {
	me *models.User
}

type threadsPolledMsg struct {
	projectID int64
	epoch     int64
	threads   []models.Thread
	err       error
}

type activitiesPolledMsg struct {
	projectID  int64
	epoch      int64
	activities []models.Activity
	err        error
}

type badgePolledMsg struct {
	epoch int64
	count int
	err   error
}

func (a *App) Init() tea.Cmd {
	a.curView.Store(int64(a.currentView))
	a.startBadgeChannel()

	cmds := []tea.Cmd{
		a.loadMe,
		a.dashboard.Init(),
	}

	// Reopen the last project so the board is one keypress away
	if raw, err := a.settings.GetSetting(cache.KeyLastProjectID); err == nil && raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cmds = append(cmds, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				project, err := a.client.GetProject(ctx, id)
				if err != nil {
					return nil
				}
				return views.SelectedProject{Project: *project}
			})
		}
	}

	return tea.Batch(cmds...)
}

func (a *App) loadMe() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	me, err := a.client.Me(ctx)
	if err != nil {
		return views.ErrMsg{Err: err}
	}
	return meLoadedMsg{me: me}
}

// channelValid ties a polling loop to the view and project that started it
func (a *App) channelValid(view View, projectID int64) poll.ValidFunc {
	return func() bool {
		if View(a.curView.Load()) != view {
			return false
		}
		return projectID == 0 || a.curProject.Load() == projectID
	}
}

func (a *App) startBadgeChannel() {
	a.controller.Start("badge", a.cfg.BadgePollInterval(), nil, func(epoch int64) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		count, err := a.client.UnreadCount(ctx)
		a.send(badgePolledMsg{epoch: epoch, count: count, err: err})
	})
}

func threadsKey(projectID int64) string  { return fmt.Sprintf("threads:%d", projectID) }
func activityKey(projectID int64) string { return fmt.Sprintf("activity:%d", projectID) }

func (a *App) startThreadChannels(projectID int64) {
	a.controller.Start(threadsKey(projectID), a.cfg.PollInterval(),
		a.channelValid(ViewThreads, projectID), func(epoch int64) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			threads, err := a.client.ListThreads(ctx, projectID)
			a.send(threadsPolledMsg{projectID: projectID, epoch: epoch, threads: threads, err: err})
		})

	a.controller.Start(activityKey(projectID), a.cfg.ActivityPollInterval(),
		a.channelValid(ViewThreads, projectID), func(epoch int64) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			activities, err := a.client.ListActivities(ctx, projectID, 30)
			a.send(activitiesPolledMsg{projectID: projectID, epoch: epoch, activities: activities, err: err})
		})
}

func (a *App) stopThreadChannels(projectID int64) {
	a.controller.Stop(threadsKey(projectID))
	a.controller.Stop(activityKey(projectID))
}

// setView switches the active view. The previous view's polling channels
// are stopped before the new view initializes.
func (a *App) setView(view View) tea.Cmd {
	if view == a.currentView {
		return nil
	}
	if (view == ViewBoard || view == ViewTimeline || view == ViewThreads) && !a.hasProject {
		view = ViewProjects
	}

	if a.currentView == ViewThreads {
		a.stopThreadChannels(a.project.ID)
	}

	a.currentView = view
	a.curView.Store(int64(view))
	_ = a.settings.SetSetting(cache.KeyLastView, viewNames[view])

	if view == ViewThreads {
		a.startThreadChannels(a.project.ID)
	}

	return tea.Batch(
		a.active().Init(),
		a.sizeCmd(),
	)
}

func (a *App) sizeCmd() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height - 2}
	}
}

func (a *App) openProject(project models.Project) tea.Cmd {
	if a.currentView == ViewThreads {
		a.stopThreadChannels(a.project.ID)
	}

	a.project = project
	a.hasProject = true
	a.curProject.Store(project.ID)
	a.store.SetProject(project.ID)
	_ = a.settings.SetSetting(cache.KeyLastProjectID, strconv.FormatInt(project.ID, 10))

	a.board = views.NewBoardView(a.client, a.store, project, a.loc)
	a.timeline = views.NewTimelineView(a.client, a.store, project, a.loc)
	a.threads = views.NewThreadsView(a.client, a.store, project, a.loc)

	a.currentView = ViewBoard
	a.curView.Store(int64(ViewBoard))

	return tea.Batch(a.board.Init(), a.sizeCmd())
}

func (a *App) active() viewModel {
	switch a.currentView {
	case ViewProjects:
		return a.projectList
	case ViewBoard:
		return a.board
	case ViewTimeline:
		return a.timeline
	case ViewThreads:
		return a.threads
	case ViewCalendar:
		return a.calendar
	case ViewTodos:
		return a.todos
	case ViewJournal:
		return a.journal
	case ViewTeam:
		return a.team
	default:
		return a.dashboard
	}
}

var tabOrder = []View{
	ViewDashboard, ViewProjects, ViewBoard, ViewTimeline, ViewThreads,
	ViewCalendar, ViewTodos, ViewJournal, ViewTeam,
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Reserve the tab bar line, then fan out to every view
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		for _, v := range a.allViews() {
			v.Update(inner)
		}
		return a, nil

	case views.SelectedProject:
		return a, a.openProject(msg.Project)

	case views.BackToProjects:
		cmd := a.setView(ViewProjects)
		return a, cmd

	case meLoadedMsg:
		a.store.Me = msg.me
		return a, nil

	case threadsPolledMsg:
		if !a.controller.Valid(threadsKey(msg.projectID), msg.epoch) {
			return a, nil
		}
		if msg.err != nil {
			return a, a.handleErr(msg.err)
		}
		if a.store.ProjectID != msg.projectID {
			return a, nil
		}
		grew := a.store.SetThreads(msg.threads)
		if a.threads != nil {
			a.threads.Update(views.ThreadsRefreshedMsg{Grew: grew})
		}
		return a, nil

	case activitiesPolledMsg:
		if !a.controller.Valid(activityKey(msg.projectID), msg.epoch) {
			return a, nil
		}
		if msg.err != nil {
			return a, a.handleErr(msg.err)
		}
		if a.store.ProjectID != msg.projectID {
			return a, nil
		}
		a.store.SetActivities(msg.activities)
		if a.threads != nil {
			a.threads.Update(views.ActivitiesRefreshedMsg{})
		}
		return a, nil

	case badgePolledMsg:
		if !a.controller.Valid("badge", msg.epoch) {
			return a, nil
		}
		if msg.err != nil {
			return a, a.handleErr(msg.err)
		}
		a.store.UnreadCount = msg.count
		return a, nil

	case views.ErrMsg:
		if cmd := a.handleErr(msg.Err); cmd != nil {
			return a, cmd
		}
		// Non-fatal errors are the view's to display

	case tea.KeyMsg:
		if !a.active().Editing() {
			if cmd, ok := a.handleTabKey(msg); ok {
				return a, cmd
			}
		}
	}

	_, cmd := a.active().Update(msg)
	return a, cmd
}

// handleErr logs and decides whether an error ends the session. An expired
// or revoked token cannot recover, so the app exits.
func (a *App) handleErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	a.log.Warnw("request failed", "error", err)
	if errors.Is(err, api.ErrUnauthorized) {
		a.fatal = err
		return tea.Quit
	}
	return nil
}

func (a *App) handleTabKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return nil, false
	}
	idx := int(s[0] - '1')
	if idx >= len(tabOrder) {
		return nil, false
	}
	return a.setView(tabOrder[idx]), true
}

func (a *App) allViews() []viewModel {
	all := []viewModel{
		a.dashboard, a.projectList, a.calendar, a.todos, a.journal, a.team,
	}
	if a.board != nil {
		all = append(all, a.board)
	}
	if a.timeline != nil {
		all = append(all, a.timeline)
	}
	if a.threads != nil {
		all = append(all, a.threads)
	}
	return all
}

func (a *App) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabBar(),
		a.active().View(),
	)
}

func (a *App) renderTabBar() string {
	s := a.styles

	var tabs []string
	for i, view := range tabOrder {
		if (view == ViewBoard || view == ViewTimeline || view == ViewThreads) && !a.hasProject {
			continue
		}
		label := fmt.Sprintf("%d %s", i+1, viewNames[view])
		if view == a.currentView {
			tabs = append(tabs, s.TabActive.Render(label))
		} else {
			tabs = append(tabs, s.Tab.Render(label))
		}
	}

	if a.store.UnreadCount > 0 {
		tabs = append(tabs, s.Badge.Render(fmt.Sprintf("✉ %d", a.store.UnreadCount)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}
