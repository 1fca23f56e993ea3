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

// TodosView is the personal weekly todo list
type TodosView struct {
	client *api.Client
	store  *state.Store
	styles *styles.Styles
	keys   keys.KeyMap
	loc    *time.Location

	width  int
	height int
	loaded bool
	cursor int

	// Sunday of the displayed week
	weekStart time.Time

	adding   bool
	newTodo  textinput.Model
	bulkMode bool
	bulkText textarea.Model

	confirmingDelete bool
	deleteTargetID   int64

	statusText string
}

// NewTodosView creates the todo list view
func NewTodosView(client *api.Client, store *state.Store, loc *time.Location) *TodosView {
	newTodo := textinput.New()
	newTodo.Placeholder = "What needs doing?"
	newTodo.CharLimit = 200

	bulkText := textarea.New()
	bulkText.Placeholder = "One todo per line"
	bulkText.CharLimit = 4000
	bulkText.SetWidth(50)
	bulkText.SetHeight(6)
	bulkText.ShowLineNumbers = false

	now := time.Now().In(loc)
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, loc)

	return &TodosView{
		client:    client,
		store:     store,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		loc:       loc,
		weekStart: weekStart,
		newTodo:   newTodo,
		bulkText:  bulkText,
	}
}

// Init initializes the view
func (v *TodosView) Init() tea.Cmd {
	return v.loadTodos
}

type todosLoadedMsg struct {
	todos []models.Todo
}

type todoMutatedMsg struct{}

func (v *TodosView) loadTodos() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	todos, err := v.client.ListTodos(ctx, v.weekStart, v.weekStart.AddDate(0, 0, 6))
	if err != nil {
		return ErrMsg{Err: err}
	}
	return todosLoadedMsg{todos: todos}
}

// Update handles messages
func (v *TodosView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.bulkText.SetWidth(clamp(msg.Width-10, 20, 60))
		return v, nil

	case todosLoadedMsg:
		v.store.SetTodos(msg.todos)
		v.loaded = true
		v.statusText = ""
		v.cursor = clamp(v.cursor, 0, max(0, len(v.store.Todos)-1))
		return v, nil

	case todoMutatedMsg:
		return v, v.loadTodos

	case ErrMsg:
		v.loaded = true
		v.statusText = msg.Err.Error()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.adding {
			return v.updateAdding(msg)
		}
		if v.bulkMode {
			return v.updateBulk(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TodosView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.store.Todos)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.PrevPeriod):
		v.weekStart = v.weekStart.AddDate(0, 0, -7)
		v.cursor = 0
		return v, v.loadTodos

	case key.Matches(msg, v.keys.NextPeriod):
		v.weekStart = v.weekStart.AddDate(0, 0, 7)
		v.cursor = 0
		return v, v.loadTodos

	case key.Matches(msg, v.keys.Today):
		now := time.Now().In(v.loc)
		start := now.AddDate(0, 0, -int(now.Weekday()))
		v.weekStart = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, v.loc)
		v.cursor = 0
		return v, v.loadTodos

	case key.Matches(msg, v.keys.Toggle), key.Matches(msg, v.keys.Enter):
		if todo, ok := v.selectedTodo(); ok {
			id := todo.ID
			return v, func() tea.Msg {
				ctx, cancel := reqContext()
				defer cancel()
				if _, err := v.client.ToggleTodo(ctx, id); err != nil {
					return ErrMsg{Err: err}
				}
				return todoMutatedMsg{}
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.adding = true
		v.newTodo.Reset()
		v.newTodo.Focus()
		return v, textinput.Blink

	case msg.String() == "b":
		v.bulkMode = true
		v.bulkText.Reset()
		v.bulkText.Focus()
		return v, textarea.Blink

	case key.Matches(msg, v.keys.Delete):
		if todo, ok := v.selectedTodo(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = todo.ID
		}
		return v, nil

	case msg.String() == "r":
		return v, v.loadTodos
	}

	return v, nil
}

func (v *TodosView) selectedTodo() (models.Todo, bool) {
	if len(v.store.Todos) == 0 {
		return models.Todo{}, false
	}
	return v.store.Todos[clamp(v.cursor, 0, len(v.store.Todos)-1)], true
}

func (v *TodosView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.adding = false
		v.newTodo.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		title := strings.TrimSpace(v.newTodo.Value())
		if title == "" {
			return v, nil
		}
		v.adding = false
		v.newTodo.Blur()
		planned := models.Time{Time: v.plannedDate()}
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			if _, err := v.client.CreateTodo(ctx, api.TodoRequest{Title: title, PlannedDate: &planned}); err != nil {
				return ErrMsg{Err: err}
			}
			return todoMutatedMsg{}
		}

	default:
		var cmd tea.Cmd
		v.newTodo, cmd = v.newTodo.Update(msg)
		return v, cmd
	}
}

func (v *TodosView) updateBulk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.bulkMode = false
		v.bulkText.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Save):
		var reqs []api.TodoRequest
		planned := models.Time{Time: v.plannedDate()}
		for _, line := range strings.Split(v.bulkText.Value(), "\n") {
			title := strings.TrimSpace(line)
			if title == "" {
				continue
			}
			reqs = append(reqs, api.TodoRequest{Title: title, PlannedDate: &planned})
		}
		if len(reqs) == 0 {
			return v, nil
		}
		v.bulkMode = false
		v.bulkText.Blur()
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			if _, err := v.client.CreateTodosBulk(ctx, reqs); err != nil {
				return ErrMsg{Err: err}
			}
			return todoMutatedMsg{}
		}

	default:
		var cmd tea.Cmd
		v.bulkText, cmd = v.bulkText.Update(msg)
		return v, cmd
	}
}

// plannedDate picks today when the displayed week contains it, otherwise
// the start of the displayed week
func (v *TodosView) plannedDate() time.Time {
	now := time.Now().In(v.loc)
	if !now.Before(v.weekStart) && now.Before(v.weekStart.AddDate(0, 0, 7)) {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.loc)
	}
	return v.weekStart
}

func (v *TodosView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := v.deleteTargetID
		v.confirmingDelete = false
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			if err := v.client.DeleteTodo(ctx, id); err != nil {
				return ErrMsg{Err: err}
			}
			return todoMutatedMsg{}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

// Editing reports whether a text input or modal owns the keyboard
func (v *TodosView) Editing() bool {
	return v.adding || v.bulkMode || v.confirmingDelete
}

// View renders the view
func (v *TodosView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	weekEnd := v.weekStart.AddDate(0, 0, 6)
	title := s.Title.Render("Todos") + "  " +
		s.TitleMuted.Render(fmt.Sprintf("%s – %s",
			v.weekStart.Format("Jan 2"), weekEnd.Format("Jan 2, 2006")))
	if v.statusText != "" {
		title += "  " + s.StatusError.Render(v.statusText)
	}

	parts := []string{title, ""}

	if len(v.store.Todos) == 0 {
		parts = append(parts, s.TitleMuted.Render("Nothing planned this week. Press 'n' to add."))
	} else {
		// Group by planned day
		lastKey := ""
		for i, todo := range v.store.Todos {
			dayKey := ""
			if todo.PlannedDate.Valid() {
				dayKey = todo.PlannedDate.LocalDateKey(v.loc)
			}
			if dayKey != lastKey {
				label := "Unplanned"
				if todo.PlannedDate.Valid() {
					label = todo.PlannedDate.In(v.loc).Format("Monday, Jan 2")
				}
				parts = append(parts, s.ColumnHeader.Render(label))
				lastKey = dayKey
			}
			parts = append(parts, v.renderTodo(todo, i == v.cursor))
		}
	}

	switch {
	case v.adding:
		parts = append(parts, "",
			s.InputFocused.Width(clamp(v.width-6, 20, 54)).Render(v.newTodo.View()),
			s.Help.Render(fmt.Sprintf("%s add • %s cancel", s.HelpKey.Render("↵"), s.HelpKey.Render("esc"))),
		)
	case v.bulkMode:
		parts = append(parts, "",
			s.TitleMuted.Render("Bulk add"),
			s.InputFocused.Render(v.bulkText.View()),
			s.Help.Render(fmt.Sprintf("%s add all • %s cancel", s.HelpKey.Render("ctrl+s"), s.HelpKey.Render("esc"))),
		)
	case v.confirmingDelete:
		parts = append(parts, "", s.Title.Foreground(styles.Current.Error).Render("Delete todo? (y/n)"))
	default:
		parts = append(parts, "", v.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *TodosView) renderTodo(todo models.Todo, selected bool) string {
	s := v.styles

	checkbox := "[ ]"
	if todo.IsDone {
		checkbox = "[x]"
	}

	line := checkbox + " " + todo.Title
	if todo.IsDone {
		line = s.TitleMuted.Render(line)
	}
	if selected {
		return s.ListSelected.Render(line)
	}
	return s.ListItem.Render(line)
}

func (v *TodosView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s toggle • %s new • %s bulk • %s del • %s week • %s today • %s quit",
			s.HelpKey.Render("space"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("b"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("[/]"),
			s.HelpKey.Render("t"),
			s.HelpKey.Render("q"),
		),
	)
}
