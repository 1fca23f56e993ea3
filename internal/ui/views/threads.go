package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/state"
	"github.com/tdnguyen/planboard/internal/ui/keys"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

// ThreadsRefreshedMsg tells the view its polled thread data changed.
// Grew means the feed gained a new trailing message.
type ThreadsRefreshedMsg struct {
	Grew bool
}

// ActivitiesRefreshedMsg tells the view its polled activity feed changed
type ActivitiesRefreshedMsg struct{}

// ThreadsView shows a project discussion feed beside the activity log
type ThreadsView struct {
	client  *api.Client
	store   *state.Store
	project models.Project
	styles  *styles.Styles
	keys    keys.KeyMap
	loc     *time.Location

	width  int
	height int
	loaded bool

	cursor   int
	atBottom bool

	composing bool
	replyTo   *int64
	editingID int64
	compose   textarea.Model

	confirmingDelete bool
	deleteTargetID   int64

	statusText string
}

// NewThreadsView creates the discussion view for one project
func NewThreadsView(client *api.Client, store *state.Store, project models.Project, loc *time.Location) *ThreadsView {
	compose := textarea.New()
	compose.Placeholder = "Write a message... use @name to mention"
	compose.CharLimit = 4000
	compose.SetWidth(60)
	compose.SetHeight(3)
	compose.ShowLineNumbers = false

	return &ThreadsView{
		client:   client,
		store:    store,
		project:  project,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		loc:      loc,
		compose:  compose,
		atBottom: true,
	}
}

// Init initializes the view
func (v *ThreadsView) Init() tea.Cmd {
	return tea.Batch(v.loadThreads, v.loadActivities)
}

type threadsLoadedMsg struct {
	projectID int64
	threads   []models.Thread
}

type activitiesLoadedMsg struct {
	projectID  int64
	activities []models.Activity
}

type threadSentMsg struct{}

func (v *ThreadsView) loadThreads() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	threads, err := v.client.ListThreads(ctx, v.project.ID)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return threadsLoadedMsg{projectID: v.project.ID, threads: threads}
}

func (v *ThreadsView) loadActivities() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	activities, err := v.client.ListActivities(ctx, v.project.ID, 30)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return activitiesLoadedMsg{projectID: v.project.ID, activities: activities}
}

// Update handles messages
func (v *ThreadsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.compose.SetWidth(clamp(v.feedWidth()-4, 20, 70))
		return v, nil

	case threadsLoadedMsg:
		if msg.projectID != v.project.ID {
			return v, nil
		}
		grew := v.store.SetThreads(msg.threads)
		v.loaded = true
		v.afterFeedChange(grew)
		return v, nil

	case activitiesLoadedMsg:
		if msg.projectID != v.project.ID {
			return v, nil
		}
		v.store.SetActivities(msg.activities)
		return v, nil

	case ThreadsRefreshedMsg:
		v.loaded = true
		v.afterFeedChange(msg.Grew)
		return v, nil

	case ActivitiesRefreshedMsg:
		return v, nil

	case threadSentMsg:
		v.statusText = ""
		return v, v.loadThreads

	case ErrMsg:
		v.loaded = true
		v.statusText = msg.Err.Error()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.composing {
			return v.updateComposing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

// afterFeedChange keeps the cursor pinned to the newest message when the
// reader was already at the bottom; otherwise the position is preserved.
func (v *ThreadsView) afterFeedChange(grew bool) {
	n := len(v.store.Threads)
	if n == 0 {
		v.cursor = 0
		return
	}
	if v.atBottom && grew {
		v.cursor = n - 1
	}
	v.cursor = clamp(v.cursor, 0, n-1)
	if v.cursor == n-1 {
		v.atBottom = true
	}
}

func (v *ThreadsView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		v.atBottom = v.cursor == len(v.store.Threads)-1
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.store.Threads)-1 {
			v.cursor++
		}
		v.atBottom = v.cursor == len(v.store.Threads)-1
		return v, nil

	case msg.String() == "G":
		v.cursor = max(0, len(v.store.Threads)-1)
		v.atBottom = true
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startCompose(nil, 0, "")
		return v, textarea.Blink

	case key.Matches(msg, v.keys.Enter):
		// Reply to the selected thread
		if t, ok := v.selectedThread(); ok {
			id := t.ID
			v.startCompose(&id, 0, "")
			return v, textarea.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if t, ok := v.selectedThread(); ok && v.isMine(t) {
			v.startCompose(nil, t.ID, t.Content)
			return v, textarea.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selectedThread(); ok && v.isMine(t) {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
		}
		return v, nil

	case msg.String() == "r":
		return v, tea.Batch(v.loadThreads, v.loadActivities)
	}

	return v, nil
}

func (v *ThreadsView) selectedThread() (models.Thread, bool) {
	if len(v.store.Threads) == 0 {
		return models.Thread{}, false
	}
	return v.store.Threads[clamp(v.cursor, 0, len(v.store.Threads)-1)], true
}

func (v *ThreadsView) isMine(t models.Thread) bool {
	return v.store.Me != nil && t.UserID == v.store.Me.ID
}

func (v *ThreadsView) startCompose(replyTo *int64, editingID int64, content string) {
	v.composing = true
	v.replyTo = replyTo
	v.editingID = editingID
	v.compose.SetValue(content)
	v.compose.Focus()
}

func (v *ThreadsView) updateComposing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.composing = false
		v.compose.Reset()
		v.compose.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.submitMessage()

	default:
		var cmd tea.Cmd
		v.compose, cmd = v.compose.Update(msg)
		return v, cmd
	}
}

func (v *ThreadsView) submitMessage() tea.Cmd {
	content := strings.TrimSpace(v.compose.Value())
	if content == "" {
		return nil
	}

	replyTo := v.replyTo
	editingID := v.editingID
	v.composing = false
	v.compose.Reset()
	v.compose.Blur()
	v.atBottom = true

	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		var err error
		if editingID != 0 {
			_, err = v.client.UpdateThread(ctx, editingID, content)
		} else {
			_, err = v.client.CreateThread(ctx, v.project.ID, content, replyTo)
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return threadSentMsg{}
	}
}

func (v *ThreadsView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := v.deleteTargetID
		v.confirmingDelete = false
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			if err := v.client.DeleteThread(ctx, id); err != nil {
				return ErrMsg{Err: err}
			}
			return threadSentMsg{}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ThreadsView) feedWidth() int {
	// The activity panel takes a third of wide terminals
	if v.width >= 100 {
		return v.width * 2 / 3
	}
	return v.width
}

// Editing reports whether the compose box or a confirmation owns the keyboard
func (v *ThreadsView) Editing() bool {
	return v.composing || v.confirmingDelete
}

// View renders the view
func (v *ThreadsView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles

	title := s.Title.Render(v.project.Name + " / Discussion")
	if v.statusText != "" {
		title += "  " + s.StatusError.Render(v.statusText)
	}

	feed := v.renderFeed()
	if v.width >= 100 {
		feed = lipgloss.JoinHorizontal(lipgloss.Top,
			feed,
			" ",
			v.renderActivityPanel(),
		)
	}

	parts := []string{title, "", feed}
	if v.composing {
		label := "New message"
		if v.replyTo != nil {
			label = "Reply"
		} else if v.editingID != 0 {
			label = "Edit message"
		}
		parts = append(parts, "",
			s.TitleMuted.Render(label),
			s.InputFocused.Render(v.compose.View()),
			s.Help.Render(fmt.Sprintf("%s send • %s cancel", s.HelpKey.Render("ctrl+s"), s.HelpKey.Render("esc"))),
		)
	} else if v.confirmingDelete {
		parts = append(parts, "",
			s.Title.Foreground(styles.Current.Error).Render("Delete message? (y/n)"),
		)
	} else {
		parts = append(parts, "", v.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *ThreadsView) renderFeed() string {
	s := v.styles
	width := clamp(v.feedWidth()-4, 20, 90)

	if len(v.store.Threads) == 0 {
		return s.TitleMuted.Render("No messages yet. Press 'n' to start the discussion.")
	}

	// Window the feed around the cursor
	available := max(v.height-12, 6)
	perThread := 3
	visible := max(available/perThread, 2)
	start := clamp(v.cursor-visible+1, 0, max(0, len(v.store.Threads)-visible))
	end := min(start+visible, len(v.store.Threads))

	mention := lipgloss.NewStyle().Foreground(styles.Current.Accent).Bold(true)

	var blocks []string
	for i := start; i < end; i++ {
		t := v.store.Threads[i]
		name := "unknown"
		if t.User != nil {
			name = t.User.DisplayName()
		}

		header := authorLine(s, name, t.CreatedAt, v.loc)
		if t.IsEdited {
			header += " " + s.TitleMuted.Render("(edited)")
		}

		body := t.Content
		if t.IsDeleted {
			body = s.TitleMuted.Render("(deleted)")
		} else {
			body = highlightMentions(body, mention)
		}

		lines := []string{header, lipgloss.NewStyle().Width(width).Render(body)}
		for _, r := range t.Replies {
			rName := "unknown"
			if r.User != nil {
				rName = r.User.DisplayName()
			}
			rBody := r.Content
			if r.IsDeleted {
				rBody = s.TitleMuted.Render("(deleted)")
			} else {
				rBody = highlightMentions(rBody, mention)
			}
			reply := lipgloss.JoinVertical(lipgloss.Left,
				authorLine(s, rName, r.CreatedAt, v.loc),
				lipgloss.NewStyle().Width(width-4).Render(rBody),
			)
			lines = append(lines, lipgloss.NewStyle().PaddingLeft(4).Render(reply))
		}

		block := lipgloss.JoinVertical(lipgloss.Left, lines...)
		if i == v.cursor && !v.composing {
			block = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(styles.Current.BorderFocus).
				PaddingLeft(1).
				Render(block)
		} else {
			block = lipgloss.NewStyle().PaddingLeft(2).Render(block)
		}
		blocks = append(blocks, block, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (v *ThreadsView) renderActivityPanel() string {
	s := v.styles
	width := clamp(v.width/3-4, 20, 44)
	available := max(v.height-12, 6)

	var lines []string
	lines = append(lines, s.ColumnHeader.Render("Activity"))
	n := len(v.store.Activities)
	shown := min(n, available/2)
	// Newest entries last, like the feed
	for i := n - shown; i < n; i++ {
		a := v.store.Activities[i]
		ts := ""
		if a.CreatedAt.Valid() {
			ts = a.CreatedAt.In(v.loc).Format("Jan 2 15:04")
		}
		lines = append(lines,
			s.TitleMuted.Render(ts),
			lipgloss.NewStyle().Width(width-2).Render(a.Description),
		)
	}
	if shown == 0 {
		lines = append(lines, s.TitleMuted.Render("No activity"))
	}

	return s.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *ThreadsView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s reply • %s new • %s edit • %s del • %s bottom • %s refresh • %s back",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("G"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("esc"),
		),
	)
}
