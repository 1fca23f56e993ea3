package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/state"
	"github.com/tdnguyen/planboard/internal/ui/keys"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

// JournalView shows personal work logs and notes side by side. Selecting
// an item in one pane clears the selection in the other.
type JournalView struct {
	client *api.Client
	store  *state.Store
	styles *styles.Styles
	keys   keys.KeyMap
	loc    *time.Location

	width  int
	height int
	loaded bool

	pane       int // 0=work logs, 1=notes
	logCursor  int
	noteCursor int

	editing      bool
	editingNew   bool
	editID       int64
	editTitle    textinput.Model
	editContent  textarea.Model
	editFocusIdx int // 0=title, 1=content, 2=save

	confirmingDelete bool
	deleteTargetID   int64

	statusText string
}

// NewJournalView creates the journal
func NewJournalView(client *api.Client, store *state.Store, loc *time.Location) *JournalView {
	editTitle := textinput.New()
	editTitle.Placeholder = "Title"
	editTitle.CharLimit = 200

	editContent := textarea.New()
	editContent.Placeholder = "Content"
	editContent.CharLimit = 10000
	editContent.SetWidth(60)
	editContent.SetHeight(8)
	editContent.ShowLineNumbers = false

	return &JournalView{
		client:      client,
		store:       store,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		loc:         loc,
		editTitle:   editTitle,
		editContent: editContent,
	}
}

// Init initializes the view
func (v *JournalView) Init() tea.Cmd {
	return tea.Batch(v.loadWorkLogs, v.loadNotes)
}

type workLogsLoadedMsg struct {
	logs []models.WorkLog
}

type notesLoadedMsg struct {
	notes []models.Note
}

type journalMutatedMsg struct{}

func (v *JournalView) loadWorkLogs() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	logs, err := v.client.ListWorkLogs(ctx)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return workLogsLoadedMsg{logs: logs}
}

func (v *JournalView) loadNotes() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	notes, err := v.client.ListNotes(ctx)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return notesLoadedMsg{notes: notes}
}

// Update handles messages
func (v *JournalView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.editContent.SetWidth(clamp(msg.Width-10, 20, 70))
		return v, nil

	case workLogsLoadedMsg:
		v.store.SetWorkLogs(msg.logs)
		v.loaded = true
		v.statusText = ""
		v.logCursor = clamp(v.logCursor, 0, max(0, len(v.store.WorkLogs)-1))
		return v, nil

	case notesLoadedMsg:
		v.store.SetNotes(msg.notes)
		v.noteCursor = clamp(v.noteCursor, 0, max(0, len(v.store.Notes)-1))
		return v, nil

	case journalMutatedMsg:
		return v, tea.Batch(v.loadWorkLogs, v.loadNotes)

	case ErrMsg:
		v.loaded = true
		v.statusText = msg.Err.Error()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *JournalView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Right):
		v.pane = 1 - v.pane
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.pane == 0 && v.logCursor > 0 {
			v.logCursor--
		}
		if v.pane == 1 && v.noteCursor > 0 {
			v.noteCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.pane == 0 && v.logCursor < len(v.store.WorkLogs)-1 {
			v.logCursor++
		}
		if v.pane == 1 && v.noteCursor < len(v.store.Notes)-1 {
			v.noteCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// Selection is exclusive across the two panes
		if v.pane == 0 {
			if wl, ok := v.selectedWorkLog(); ok {
				v.store.SelectWorkLog(wl.ID)
				v.store.SelectNote(0)
			}
		} else {
			if n, ok := v.selectedNote(); ok {
				v.store.SelectNote(n.ID)
				v.store.SelectWorkLog(0)
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startEdit(true, 0, "", "")
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if v.pane == 0 {
			if wl, ok := v.selectedWorkLog(); ok {
				v.startEdit(false, wl.ID, wl.Title, wl.Content)
				return v, textinput.Blink
			}
		} else {
			if n, ok := v.selectedNote(); ok {
				v.startEdit(false, n.ID, n.Title, n.Content)
				return v, textinput.Blink
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if v.pane == 0 {
			if wl, ok := v.selectedWorkLog(); ok {
				v.confirmingDelete = true
				v.deleteTargetID = wl.ID
			}
		} else {
			if n, ok := v.selectedNote(); ok {
				v.confirmingDelete = true
				v.deleteTargetID = n.ID
			}
		}
		return v, nil

	case msg.String() == "r":
		return v, tea.Batch(v.loadWorkLogs, v.loadNotes)
	}

	return v, nil
}

func (v *JournalView) selectedWorkLog() (models.WorkLog, bool) {
	if len(v.store.WorkLogs) == 0 {
		return models.WorkLog{}, false
	}
	return v.store.WorkLogs[clamp(v.logCursor, 0, len(v.store.WorkLogs)-1)], true
}

func (v *JournalView) selectedNote() (models.Note, bool) {
	if len(v.store.Notes) == 0 {
		return models.Note{}, false
	}
	return v.store.Notes[clamp(v.noteCursor, 0, len(v.store.Notes)-1)], true
}

func (v *JournalView) startEdit(isNew bool, id int64, title, content string) {
	v.editing = true
	v.editingNew = isNew
	v.editID = id
	v.editFocusIdx = 0
	v.editTitle.SetValue(title)
	v.editContent.SetValue(content)
	v.editTitle.Focus()
	v.editContent.Blur()
}

func (v *JournalView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.save()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 3
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 2) % 3
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx == 0 {
			v.editFocusIdx = 1
			v.updateEditFocus()
			return v, nil
		}
		if v.editFocusIdx == 2 {
			return v, v.save()
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editContent, cmd = v.editContent.Update(msg)
	}
	return v, cmd
}

func (v *JournalView) updateEditFocus() {
	v.editTitle.Blur()
	v.editContent.Blur()
	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editContent.Focus()
	}
}

func (v *JournalView) save() tea.Cmd {
	title := strings.TrimSpace(v.editTitle.Value())
	if title == "" {
		return nil
	}
	content := strings.TrimSpace(v.editContent.Value())

	pane := v.pane
	isNew := v.editingNew
	id := v.editID
	v.editing = false

	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		var err error
		if pane == 0 {
			req := api.WorkLogRequest{Title: title, Content: content}
			if isNew {
				_, err = v.client.CreateWorkLog(ctx, req)
			} else {
				_, err = v.client.UpdateWorkLog(ctx, id, req)
			}
		} else {
			now := models.Time{Time: time.Now()}
			req := api.NoteRequest{Title: title, Content: content}
			if isNew {
				req.NoteDate = &now
				_, err = v.client.CreateNote(ctx, req)
			} else {
				_, err = v.client.UpdateNote(ctx, id, req)
			}
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return journalMutatedMsg{}
	}
}

func (v *JournalView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := v.deleteTargetID
		pane := v.pane
		v.confirmingDelete = false
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			var err error
			if pane == 0 {
				err = v.client.DeleteWorkLog(ctx, id)
			} else {
				err = v.client.DeleteNote(ctx, id)
			}
			if err != nil {
				return ErrMsg{Err: err}
			}
			return journalMutatedMsg{}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

// Editing reports whether a text input or modal owns the keyboard
func (v *JournalView) Editing() bool {
	return v.editing || v.confirmingDelete
}

// View renders the view
func (v *JournalView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	if v.editing {
		return v.renderEditForm()
	}

	title := s.Title.Render("Journal")
	if v.statusText != "" {
		title += "  " + s.StatusError.Render(v.statusText)
	}

	paneWidth := clamp(v.width/2-4, 24, 60)
	logs := v.renderWorkLogPane(paneWidth)
	notes := v.renderNotePane(paneWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, " ", notes)

	parts := []string{title, "", body, "", v.renderDetail()}
	if v.confirmingDelete {
		parts = append(parts, s.Title.Foreground(styles.Current.Error).Render("Delete entry? (y/n)"))
	} else {
		parts = append(parts, v.renderHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *JournalView) renderWorkLogPane(width int) string {
	s := v.styles

	header := s.ColumnHeader.Render("Work Logs" + countSuffix(len(v.store.WorkLogs)))
	var items []string
	for i, wl := range v.store.WorkLogs {
		line := wl.Title
		if wl.CreatedAt.Valid() {
			line = wl.CreatedAt.In(v.loc).Format("Jan 2") + "  " + line
		}
		selected := v.pane == 0 && i == v.logCursor
		if selected {
			items = append(items, s.ListSelected.Width(width-4).Render(line))
		} else {
			items = append(items, s.ListItem.Width(width-4).Render(line))
		}
	}
	if len(items) == 0 {
		items = append(items, s.TitleMuted.Render("No work logs"))
	}

	style := s.Column
	if v.pane == 0 {
		style = s.ColumnFocus
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{header, ""}, items...)...))
}

func (v *JournalView) renderNotePane(width int) string {
	s := v.styles

	header := s.ColumnHeader.Render("Notes" + countSuffix(len(v.store.Notes)))
	var items []string
	for i, n := range v.store.Notes {
		line := n.Title
		if n.NoteDate.Valid() {
			line = n.NoteDate.In(v.loc).Format("Jan 2") + "  " + line
		}
		selected := v.pane == 1 && i == v.noteCursor
		if selected {
			items = append(items, s.ListSelected.Width(width-4).Render(line))
		} else {
			items = append(items, s.ListItem.Width(width-4).Render(line))
		}
	}
	if len(items) == 0 {
		items = append(items, s.TitleMuted.Render("No notes"))
	}

	style := s.Column
	if v.pane == 1 {
		style = s.ColumnFocus
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{header, ""}, items...)...))
}

// renderDetail shows whichever entry is selected; the store guarantees at
// most one across both panes
func (v *JournalView) renderDetail() string {
	s := v.styles
	textWidth := clamp(v.width-8, 30, 90)

	if wl, ok := v.store.SelectedWorkLog(); ok {
		lines := []string{
			s.Title.Render(wl.Title),
			lipgloss.NewStyle().Width(textWidth).Render(wl.Content),
		}
		if len(wl.Attachments) > 0 {
			var names []string
			for _, a := range wl.Attachments {
				names = append(names, a.Name)
			}
			lines = append(lines, s.TitleMuted.Render("Attachments: "+strings.Join(names, ", ")))
		}
		return s.Panel.Width(textWidth + 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
	}

	if n, ok := v.store.SelectedNote(); ok {
		return s.Panel.Width(textWidth + 4).Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render(n.Title),
			lipgloss.NewStyle().Width(textWidth).Render(n.Content),
		)) + "\n"
	}

	return ""
}

func (v *JournalView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	kind := "Work Log"
	if v.pane == 1 {
		kind = "Note"
	}
	formTitle := "New " + kind
	if !v.editingNew {
		formTitle = "Edit " + kind
	}

	titleStyle := s.Input
	contentStyle := s.Input
	btnStyle := s.Button
	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		contentStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 60)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Content:",
		contentStyle.Render(v.editContent.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *JournalView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s select • %s pane • %s new • %s edit • %s del • %s refresh • %s quit",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("tab"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("q"),
		),
	)
}
