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

var priorityCycle = []string{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
	models.PriorityUrgent,
}

var columnTitles = map[string]string{
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusDone:       "Done",
	models.StatusBlocked:    "Blocked",
}

// BoardView shows a project's tasks as kanban columns
type BoardView struct {
	client  *api.Client
	store   *state.Store
	project models.Project
	styles  *styles.Styles
	keys    keys.KeyMap
	loc     *time.Location

	width  int
	height int
	loaded bool

	colIdx  int
	cursors [4]int

	// Task creation/editing
	editing      bool
	editingNew   bool
	editTaskID   int64
	editTitle    textinput.Model
	editDesc     textarea.Model
	editDue      textinput.Model
	editTags     textinput.Model
	priorityIdx  int
	assigneeIDs  []int64
	assignCursor int
	editFocusIdx int // 0=title, 1=desc, 2=priority, 3=due, 4=tags, 5=assignees, 6=save

	// Task detail (read-only with comments and subtasks)
	viewingTask    bool
	detailComments []models.Comment
	subtaskCursor  int
	commentInput   textarea.Model
	commentFocused bool
	newSubtask     textinput.Model
	subtaskFocused bool

	// Confirmations
	confirmingDelete   bool
	deleteTargetID     int64
	confirmingComplete bool
	completeTargetID   int64

	statusText string
	statusSeq  int
}

// NewBoardView creates a board for one project
func NewBoardView(client *api.Client, store *state.Store, project models.Project, loc *time.Location) *BoardView {
	s := styles.NewStyles()

	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 2000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDue := textinput.New()
	editDue.Placeholder = "YYYY-MM-DD"
	editDue.CharLimit = 10

	editTags := textinput.New()
	editTags.Placeholder = "tag,tag"
	editTags.CharLimit = 100

	commentInput := textarea.New()
	commentInput.Placeholder = "Add a comment... use @name to mention"
	commentInput.CharLimit = 2000
	commentInput.SetWidth(50)
	commentInput.SetHeight(3)
	commentInput.ShowLineNumbers = false

	newSubtask := textinput.New()
	newSubtask.Placeholder = "New subtask"
	newSubtask.CharLimit = 200

	return &BoardView{
		client:       client,
		store:        store,
		project:      project,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		loc:          loc,
		editTitle:    editTitle,
		editDesc:     editDesc,
		editDue:      editDue,
		editTags:     editTags,
		commentInput: commentInput,
		newSubtask:   newSubtask,
	}
}

// Init initializes the view
func (v *BoardView) Init() tea.Cmd {
	return tea.Batch(v.loadTasks, v.loadUsers)
}

type boardTasksLoadedMsg struct {
	projectID int64
	tasks     []models.Task
}

type usersLoadedMsg struct {
	users []models.User
}

type taskDetailMsg struct {
	task     models.Task
	comments []models.Comment
}

type taskMutatedMsg struct {
	note string
}

func (v *BoardView) loadTasks() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	tasks, err := v.client.ListProjectTasks(ctx, v.project.ID)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return boardTasksLoadedMsg{projectID: v.project.ID, tasks: tasks}
}

func (v *BoardView) loadUsers() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	users, err := v.client.ListUsers(ctx)
	if err != nil {
		return nil
	}
	return usersLoadedMsg{users: users}
}

func (v *BoardView) loadDetail(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		task, err := v.client.GetTask(ctx, id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		comments, err := v.client.ListTaskComments(ctx, id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return taskDetailMsg{task: *task, comments: comments}
	}
}

// column returns the tasks in one board column, in position order as the
// server returned them
func (v *BoardView) column(status string) []models.Task {
	var out []models.Task
	for _, t := range v.store.Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (v *BoardView) selectedTask() (models.Task, bool) {
	col := v.column(models.BoardColumns[v.colIdx])
	if len(col) == 0 {
		return models.Task{}, false
	}
	i := clamp(v.cursors[v.colIdx], 0, len(col)-1)
	return col[i], true
}

// Update handles messages
func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := clamp(msg.Width/2, 20, 50)
		v.editDesc.SetWidth(inputWidth)
		v.commentInput.SetWidth(inputWidth)
		return v, nil

	case boardTasksLoadedMsg:
		if msg.projectID != v.project.ID {
			return v, nil
		}
		v.store.SetTasks(msg.tasks)
		v.loaded = true
		v.statusText = ""
		if v.viewingTask {
			if _, ok := v.store.OpenedTask(); !ok {
				v.closeDetail()
			}
		}
		return v, nil

	case usersLoadedMsg:
		v.store.Users = msg.users
		return v, nil

	case taskDetailMsg:
		// Merge the detail payload into the cached task list
		for i := range v.store.Tasks {
			if v.store.Tasks[i].ID == msg.task.ID {
				v.store.Tasks[i] = msg.task
			}
		}
		v.detailComments = msg.comments
		return v, nil

	case taskMutatedMsg:
		v.statusText = msg.note
		cmds := []tea.Cmd{v.loadTasks}
		if msg.note != "" {
			v.statusSeq++
			cmds = append(cmds, clearStatusAfter(v.statusSeq))
		}
		if v.viewingTask {
			if task, ok := v.store.OpenedTask(); ok {
				cmds = append(cmds, v.loadDetail(task.ID))
			}
		}
		return v, tea.Batch(cmds...)

	case statusClearMsg:
		if msg.seq == v.statusSeq {
			v.statusText = ""
		}
		return v, nil

	case ErrMsg:
		v.loaded = true
		v.statusText = msg.Err.Error()
		v.statusSeq++
		v.confirmingDelete = false
		v.confirmingComplete = false
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.confirmingComplete {
			return v.updateConfirmComplete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.viewingTask {
			return v.updateViewingTask(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Left):
		if v.colIdx > 0 {
			v.colIdx--
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.colIdx < len(models.BoardColumns)-1 {
			v.colIdx++
		}
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursors[v.colIdx] > 0 {
			v.cursors[v.colIdx]--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		col := v.column(models.BoardColumns[v.colIdx])
		if v.cursors[v.colIdx] < len(col)-1 {
			v.cursors[v.colIdx]++
		}
		return v, nil

	case key.Matches(msg, v.keys.MoveLeft):
		return v, v.moveSelected(-1)

	case key.Matches(msg, v.keys.MoveRight):
		return v, v.moveSelected(1)

	case key.Matches(msg, v.keys.Enter):
		if task, ok := v.selectedTask(); ok {
			v.viewingTask = true
			v.subtaskCursor = 0
			v.store.OpenTask(task.ID)
			return v, v.loadDetail(task.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if task, ok := v.selectedTask(); ok {
			v.startEditTask(task)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.selectedTask(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = task.ID
		}
		return v, nil

	case msg.String() == "r":
		return v, v.loadTasks
	}

	return v, nil
}

// moveSelected moves the selected card one column in the given direction.
// A move into Done with unfinished subtasks needs explicit confirmation.
func (v *BoardView) moveSelected(dir int) tea.Cmd {
	task, ok := v.selectedTask()
	if !ok {
		return nil
	}
	target := v.colIdx + dir
	if target < 0 || target >= len(models.BoardColumns) {
		return nil
	}
	newStatus := models.BoardColumns[target]

	if newStatus == models.StatusDone && task.TotalSubtasks > task.CompletedSubtasks {
		v.confirmingComplete = true
		v.completeTargetID = task.ID
		return nil
	}

	newPos := len(v.column(newStatus))
	id := task.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if _, err := v.client.MoveTask(ctx, id, api.TaskMove{NewStatus: newStatus, NewPosition: newPos}); err != nil {
			return ErrMsg{Err: err}
		}
		return taskMutatedMsg{}
	}
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := v.deleteTargetID
		v.confirmingDelete = false
		v.closeDetail()
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			if err := v.client.DeleteTask(ctx, id); err != nil {
				return ErrMsg{Err: err}
			}
			return taskMutatedMsg{note: "Task deleted"}
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *BoardView) updateConfirmComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := v.completeTargetID
		v.confirmingComplete = false
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			if _, err := v.client.ConfirmCompleteTask(ctx, id); err != nil {
				return ErrMsg{Err: err}
			}
			return taskMutatedMsg{note: "Task completed"}
		}
	case "n", "N", "esc":
		v.confirmingComplete = false
		return v, nil
	}
	return v, nil
}

func (v *BoardView) updateViewingTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.commentFocused {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.commentFocused = false
			v.commentInput.Blur()
			return v, nil
		case key.Matches(msg, v.keys.Save):
			return v, v.submitComment()
		default:
			var cmd tea.Cmd
			v.commentInput, cmd = v.commentInput.Update(msg)
			return v, cmd
		}
	}

	if v.subtaskFocused {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.subtaskFocused = false
			v.newSubtask.Blur()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			return v, v.submitSubtask()
		default:
			var cmd tea.Cmd
			v.newSubtask, cmd = v.newSubtask.Update(msg)
			return v, cmd
		}
	}

	task, ok := v.store.OpenedTask()
	if !ok {
		v.closeDetail()
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Back):
		v.closeDetail()
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		v.closeDetail()
		v.startEditTask(task)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		v.confirmingDelete = true
		v.deleteTargetID = task.ID
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.subtaskCursor > 0 {
			v.subtaskCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.subtaskCursor < len(task.Subtasks)-1 {
			v.subtaskCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if v.subtaskCursor < len(task.Subtasks) {
			return v, v.toggleSubtask(task.Subtasks[v.subtaskCursor])
		}
		return v, nil

	case msg.String() == "s":
		v.subtaskFocused = true
		v.newSubtask.Reset()
		v.newSubtask.Focus()
		return v, textinput.Blink

	case msg.String() == "c":
		v.commentFocused = true
		v.commentInput.Focus()
		return v, textarea.Blink

	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *BoardView) closeDetail() {
	v.viewingTask = false
	v.commentFocused = false
	v.subtaskFocused = false
	v.detailComments = nil
	v.store.CloseTask()
}

func (v *BoardView) toggleSubtask(st models.SubTask) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		done := !st.IsDone
		req := api.SubTaskRequest{Title: st.Title, Description: st.Description, IsDone: &done}
		if _, err := v.client.UpdateSubTask(ctx, st.ID, req); err != nil {
			return ErrMsg{Err: err}
		}
		return taskMutatedMsg{}
	}
}

func (v *BoardView) submitSubtask() tea.Cmd {
	title := strings.TrimSpace(v.newSubtask.Value())
	if title == "" {
		return nil
	}
	task, ok := v.store.OpenedTask()
	if !ok {
		return nil
	}
	v.subtaskFocused = false
	v.newSubtask.Reset()
	v.newSubtask.Blur()
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if _, err := v.client.CreateSubTask(ctx, api.SubTaskRequest{TaskID: task.ID, Title: title}); err != nil {
			return ErrMsg{Err: err}
		}
		return taskMutatedMsg{}
	}
}

func (v *BoardView) submitComment() tea.Cmd {
	content := strings.TrimSpace(v.commentInput.Value())
	if content == "" {
		return nil
	}
	task, ok := v.store.OpenedTask()
	if !ok {
		return nil
	}
	v.commentInput.Reset()
	v.commentFocused = false
	v.commentInput.Blur()
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if _, err := v.client.CreateComment(ctx, task.ID, content); err != nil {
			return ErrMsg{Err: err}
		}
		return taskMutatedMsg{}
	}
}

func (v *BoardView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editTaskID = 0
	v.editFocusIdx = 0
	v.priorityIdx = 1 // medium
	v.assigneeIDs = nil
	v.assignCursor = 0
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDue.Reset()
	v.editTags.Reset()
	v.updateEditFocus()
}

func (v *BoardView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editTaskID = task.ID
	v.editFocusIdx = 0
	v.assignCursor = 0
	v.priorityIdx = 1
	for i, p := range priorityCycle {
		if p == task.Priority {
			v.priorityIdx = i
		}
	}
	v.assigneeIDs = make([]int64, 0, len(task.Assignees))
	for _, u := range task.Assignees {
		v.assigneeIDs = append(v.assigneeIDs, u.ID)
	}
	v.editTitle.SetValue(task.Title)
	v.editDesc.SetValue(task.Description)
	if task.DueDate.Valid() {
		v.editDue.SetValue(task.DueDate.In(v.loc).Format("2006-01-02"))
	} else {
		v.editDue.Reset()
	}
	v.editTags.SetValue(task.Tags)
	v.updateEditFocus()
}

func (v *BoardView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 7
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 6) % 7
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.editFocusIdx {
		case 0, 3, 4:
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		case 5:
			v.toggleAssignee()
			return v, nil
		case 6:
			return v, v.saveTask()
		}
		// Textarea keeps enter for newlines

	case key.Matches(msg, v.keys.Left):
		if v.editFocusIdx == 2 {
			v.priorityIdx = (v.priorityIdx + len(priorityCycle) - 1) % len(priorityCycle)
			return v, nil
		}

	case key.Matches(msg, v.keys.Right):
		if v.editFocusIdx == 2 {
			v.priorityIdx = (v.priorityIdx + 1) % len(priorityCycle)
			return v, nil
		}

	case key.Matches(msg, v.keys.Up):
		if v.editFocusIdx == 5 && v.assignCursor > 0 {
			v.assignCursor--
			return v, nil
		}

	case key.Matches(msg, v.keys.Down):
		if v.editFocusIdx == 5 && v.assignCursor < len(v.store.Users)-1 {
			v.assignCursor++
			return v, nil
		}

	case msg.String() == " ":
		if v.editFocusIdx == 5 {
			v.toggleAssignee()
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case 3:
		v.editDue, cmd = v.editDue.Update(msg)
	case 4:
		v.editTags, cmd = v.editTags.Update(msg)
	}
	return v, cmd
}

func (v *BoardView) toggleAssignee() {
	if v.assignCursor >= len(v.store.Users) {
		return
	}
	id := v.store.Users[v.assignCursor].ID
	for i, existing := range v.assigneeIDs {
		if existing == id {
			v.assigneeIDs = append(v.assigneeIDs[:i], v.assigneeIDs[i+1:]...)
			return
		}
	}
	v.assigneeIDs = append(v.assigneeIDs, id)
}

func (v *BoardView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	v.editDue.Blur()
	v.editTags.Blur()

	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDesc.Focus()
	case 3:
		v.editDue.Focus()
	case 4:
		v.editTags.Focus()
	}
}

func (v *BoardView) saveTask() tea.Cmd {
	title := strings.TrimSpace(v.editTitle.Value())
	if title == "" {
		return nil
	}

	req := api.TaskRequest{
		Title:       title,
		Description: strings.TrimSpace(v.editDesc.Value()),
		Priority:    priorityCycle[v.priorityIdx],
		Tags:        strings.TrimSpace(v.editTags.Value()),
		AssigneeIDs: v.assigneeIDs,
	}
	if raw := strings.TrimSpace(v.editDue.Value()); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, v.loc)
		if err != nil {
			v.statusText = "Due date must be YYYY-MM-DD"
			return nil
		}
		due := models.Time{Time: parsed}
		req.DueDate = &due
	}

	isNew := v.editingNew
	id := v.editTaskID
	if isNew {
		req.ProjectID = v.project.ID
		req.Status = models.BoardColumns[v.colIdx]
	}
	v.editing = false

	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		var err error
		if isNew {
			_, err = v.client.CreateTask(ctx, req)
		} else {
			_, err = v.client.UpdateTask(ctx, id, req)
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return taskMutatedMsg{note: "Task saved"}
	}
}

// Editing reports whether a text input or modal owns the keyboard
func (v *BoardView) Editing() bool {
	return v.editing || v.commentFocused || v.subtaskFocused ||
		v.confirmingDelete || v.confirmingComplete
}

// View renders the view
func (v *BoardView) View() string {
	if v.confirmingDelete {
		return v.renderConfirm("Delete Task?", "")
	}
	if v.confirmingComplete {
		return v.renderConfirm("Complete Task?", "Unfinished subtasks will be marked done.")
	}
	if v.editing {
		return v.renderEditForm()
	}
	if v.viewingTask {
		return v.renderTaskDetail()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.project.Name))
	if v.statusText != "" {
		b.WriteString("  " + v.styles.StatusError.Render(v.statusText))
	}
	b.WriteString("\n")
	b.WriteString(v.renderColumns())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *BoardView) renderColumns() string {
	s := v.styles
	colWidth := max(v.width/len(models.BoardColumns)-4, 16)
	colHeight := max(v.height-8, 6)

	var cols []string
	for ci, status := range models.BoardColumns {
		tasks := v.column(status)
		header := s.ColumnHeader.Foreground(styles.StatusColor(status)).
			Render(fmt.Sprintf("%s%s", columnTitles[status], countSuffix(len(tasks))))

		var cards []string
		for ti, task := range tasks {
			selected := ci == v.colIdx && ti == clamp(v.cursors[ci], 0, len(tasks)-1)
			cards = append(cards, v.renderCard(task, selected, colWidth-2))
		}
		if len(cards) == 0 {
			cards = append(cards, s.TitleMuted.Render("empty"))
		}

		body := lipgloss.JoinVertical(lipgloss.Left, cards...)
		colStyle := s.Column
		if ci == v.colIdx {
			colStyle = s.ColumnFocus
		}
		cols = append(cols, colStyle.Width(colWidth).Height(colHeight).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", body),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (v *BoardView) renderCard(task models.Task, selected bool, width int) string {
	s := v.styles

	prio := lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority)).Render("●")
	title := task.Title

	meta := ""
	if task.TotalSubtasks > 0 {
		meta = fmt.Sprintf("%d/%d", task.CompletedSubtasks, task.TotalSubtasks)
	}
	if due := dueLabel(task.DueDate, v.loc); due != "" {
		if meta != "" {
			meta += "  "
		}
		meta += due
	}

	cardStyle := s.Card
	if selected {
		cardStyle = s.CardSelected
	}

	lines := []string{prio + " " + title}
	if meta != "" {
		lines = append(lines, s.TitleMuted.Render(meta))
	}
	return cardStyle.Width(width).Render(strings.Join(lines, "\n")) + "\n"
}

func (v *BoardView) renderTaskDetail() string {
	task, ok := v.store.OpenedTask()
	if !ok {
		return ""
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	textWidth := clamp(contentWidth-10, 20, 70)

	descText := task.Description
	if descText == "" {
		descText = s.TitleMuted.Render("No description")
	}

	assignees := "Unassigned"
	if len(task.Assignees) > 0 {
		var names []string
		for _, u := range task.Assignees {
			names = append(names, u.DisplayName())
		}
		assignees = strings.Join(names, ", ")
	}

	// Subtasks with checkbox list
	var subtaskLines []string
	for i, st := range task.Subtasks {
		checkbox := "[ ]"
		if st.IsDone {
			checkbox = "[x]"
		}
		line := checkbox + " " + st.Title
		if i == v.subtaskCursor && !v.commentFocused && !v.subtaskFocused {
			subtaskLines = append(subtaskLines, s.ListSelected.Render(line))
		} else {
			subtaskLines = append(subtaskLines, s.ListItem.Render(line))
		}
	}
	subtasksContent := s.TitleMuted.Render("No subtasks")
	if len(subtaskLines) > 0 {
		subtasksContent = lipgloss.JoinVertical(lipgloss.Left, subtaskLines...)
	}
	if v.subtaskFocused {
		subtasksContent = lipgloss.JoinVertical(lipgloss.Left,
			subtasksContent,
			s.InputFocused.Render(v.newSubtask.View()),
		)
	}

	var commentLines []string
	for _, comment := range v.detailComments {
		name := "unknown"
		if comment.User != nil {
			name = comment.User.DisplayName()
		}
		body := highlightMentions(comment.Content, lipgloss.NewStyle().Foreground(styles.Current.Accent))
		commentLines = append(commentLines, lipgloss.JoinVertical(lipgloss.Left,
			authorLine(s, name, comment.CreatedAt, v.loc),
			lipgloss.NewStyle().Width(textWidth).Render(body),
		))
	}
	commentsContent := s.TitleMuted.Render("No comments yet")
	if len(commentLines) > 0 {
		commentsContent = lipgloss.JoinVertical(lipgloss.Left, commentLines...)
	}

	commentInputStyle := s.Input
	if v.commentFocused {
		commentInputStyle = s.InputFocused
	}

	var helpText string
	switch {
	case v.commentFocused:
		helpText = s.Help.Render(fmt.Sprintf("%s submit • %s cancel",
			s.HelpKey.Render("ctrl+s"), s.HelpKey.Render("esc")))
	case v.subtaskFocused:
		helpText = s.Help.Render(fmt.Sprintf("%s add • %s cancel",
			s.HelpKey.Render("↵"), s.HelpKey.Render("esc")))
	default:
		helpText = s.Help.Render(fmt.Sprintf("%s toggle subtask • %s add subtask • %s comment • %s edit • %s delete • %s back",
			s.HelpKey.Render("space"), s.HelpKey.Render("s"), s.HelpKey.Render("c"),
			s.HelpKey.Render("e"), s.HelpKey.Render("d"), s.HelpKey.Render("esc")))
	}

	statusLine := lipgloss.NewStyle().Foreground(styles.StatusColor(task.Status)).Render(columnTitles[task.Status]) +
		"  " + lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority)).Render(task.Priority)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.MarginBottom(1).Render(task.Title),
		statusLine,
		"",
		s.TitleMuted.Render("Assignees"),
		assignees,
		"",
		s.TitleMuted.Render("Description"),
		lipgloss.NewStyle().Width(textWidth).Render(descText),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Subtasks (%d/%d)", task.CompletedSubtasks, task.TotalSubtasks)),
		progressBar(task.ProgressPercent, 24),
		subtasksContent,
		"",
		s.TitleMuted.Render("Comments"),
		commentsContent,
		"",
		commentInputStyle.Render(v.commentInput.View()),
		helpText,
	)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(content)
	return styles.CenterView(padded, v.width, v.height)
}

func (v *BoardView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	titleStyle := s.Input
	descStyle := s.Input
	prioStyle := s.Button
	dueStyle := s.Input
	tagsStyle := s.Input
	assignStyle := s.Input
	btnStyle := s.Button

	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		prioStyle = s.ButtonFocused
	case 3:
		dueStyle = s.InputFocused
	case 4:
		tagsStyle = s.InputFocused
	case 5:
		assignStyle = s.InputFocused
	case 6:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)
	prio := priorityCycle[v.priorityIdx]
	prioLabel := lipgloss.NewStyle().Foreground(styles.PriorityColor(prio)).Render(prio)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.editDesc.View()),
		"",
		"Priority:",
		prioStyle.Render("◀ "+prioLabel+" ▶"),
		"",
		"Due date:",
		dueStyle.Width(14).Render(v.editDue.View()),
		"",
		"Tags:",
		tagsStyle.Width(inputWidth).Render(v.editTags.View()),
		"",
		"Assignees:",
		v.renderAssigneeSelector(assignStyle, inputWidth),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Space: toggle assignee • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderAssigneeSelector(containerStyle lipgloss.Style, width int) string {
	s := v.styles

	if len(v.store.Users) == 0 {
		return containerStyle.Width(width).Render(s.TitleMuted.Render("No users"))
	}

	var items []string
	for i, u := range v.store.Users {
		isSelected := false
		for _, id := range v.assigneeIDs {
			if id == u.ID {
				isSelected = true
				break
			}
		}

		checkbox := "[ ]"
		if isSelected {
			checkbox = "[x]"
		}
		itemText := checkbox + " " + u.DisplayName()

		if v.editFocusIdx == 5 && i == v.assignCursor {
			items = append(items, s.ListSelected.Render(itemText))
		} else {
			items = append(items, s.ListItem.Render(itemText))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return containerStyle.Width(width).Render(content)
}

func (v *BoardView) renderConfirm(title, note string) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	parts := []string{
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
	}
	if note != "" {
		parts = append(parts, s.TitleMuted.Render(note), "")
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center,
		s.ButtonPrimary.Render(" Y - Yes "),
		"  ",
		s.Button.Render(" N - No "),
	))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s open • %s new • %s edit • %s del • %s move • %s refresh • %s back",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("H/L"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("esc"),
		),
	)
}
