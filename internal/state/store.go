package state

import (
	"github.com/tdnguyen/planboard/internal/models"
)

// Store owns every canonical in-memory collection the client renders from.
// Collections are mutated only through the Set* methods after a fetch
// completes; views are read-only consumers. Selection is tracked per panel
// and is mutually exclusive within each panel: at most one selected work
// log, one selected note, one open task.
type Store struct {
	Me       *models.User
	Projects []models.Project
	Types    []models.ProjectType
	Users    []models.User

	// Per-project collections, valid for ProjectID
	ProjectID  int64
	Tasks      []models.Task
	Threads    []models.Thread
	Activities []models.Activity

	Todos         []models.Todo
	WorkLogs      []models.WorkLog
	Notes         []models.Note
	Notifications []models.Notification
	UnreadCount   int

	openTaskID        int64
	selectedWorkLogID int64
	selectedNoteID    int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

func taskID(t models.Task) int64             { return t.ID }
func threadID(t models.Thread) int64         { return t.ID }
func workLogID(w models.WorkLog) int64       { return w.ID }
func noteID(n models.Note) int64             { return n.ID }
func projectID(p models.Project) int64       { return p.ID }
func todoID(t models.Todo) int64             { return t.ID }
func notificationID(n models.Notification) int64 { return n.ID }

// SetProject resets the per-project collections for a newly opened project
func (s *Store) SetProject(id int64) {
	if s.ProjectID == id {
		return
	}
	s.ProjectID = id
	s.Tasks = nil
	s.Threads = nil
	s.Activities = nil
	s.openTaskID = 0
}

// SetProjects replaces the project list
func (s *Store) SetProjects(fresh []models.Project) {
	s.Projects = Reconcile(s.Projects, fresh, projectID)
}

// SetTasks replaces the task list; an open task is re-resolved from the
// fresh data and closed if it disappeared.
func (s *Store) SetTasks(fresh []models.Task) {
	s.Tasks = Reconcile(s.Tasks, fresh, taskID)
	if s.openTaskID != 0 {
		if _, ok := ResolveSelection(s.Tasks, taskID, s.openTaskID); !ok {
			s.openTaskID = 0
		}
	}
}

// SetThreads replaces the thread list and reports whether the feed gained a
// new trailing message (the auto-scroll signal).
func (s *Store) SetThreads(fresh []models.Thread) bool {
	grew := HasNewTrailingItem(s.Threads, fresh, threadID)
	s.Threads = Reconcile(s.Threads, fresh, threadID)
	return grew
}

// SetActivities replaces the activity feed and reports growth
func (s *Store) SetActivities(fresh []models.Activity) bool {
	grew := HasNewTrailingItem(s.Activities, fresh, func(a models.Activity) int64 { return a.ID })
	s.Activities = Reconcile(s.Activities, fresh, func(a models.Activity) int64 { return a.ID })
	return grew
}

// SetTodos replaces the todo list
func (s *Store) SetTodos(fresh []models.Todo) {
	s.Todos = Reconcile(s.Todos, fresh, todoID)
}

// SetWorkLogs replaces the work logs, resetting a vanished selection
func (s *Store) SetWorkLogs(fresh []models.WorkLog) {
	s.WorkLogs = Reconcile(s.WorkLogs, fresh, workLogID)
	if s.selectedWorkLogID != 0 {
		if _, ok := ResolveSelection(s.WorkLogs, workLogID, s.selectedWorkLogID); !ok {
			s.selectedWorkLogID = 0
		}
	}
}

// SetNotes replaces the notes, resetting a vanished selection
func (s *Store) SetNotes(fresh []models.Note) {
	s.Notes = Reconcile(s.Notes, fresh, noteID)
	if s.selectedNoteID != 0 {
		if _, ok := ResolveSelection(s.Notes, noteID, s.selectedNoteID); !ok {
			s.selectedNoteID = 0
		}
	}
}

// SetNotifications replaces the notification list
func (s *Store) SetNotifications(fresh []models.Notification) {
	s.Notifications = Reconcile(s.Notifications, fresh, notificationID)
}

// OpenTask marks a task as the one open in the detail panel
func (s *Store) OpenTask(id int64) { s.openTaskID = id }

// CloseTask clears the open task
func (s *Store) CloseTask() { s.openTaskID = 0 }

// OpenedTask resolves the open task against the current collection
func (s *Store) OpenedTask() (models.Task, bool) {
	if s.openTaskID == 0 {
		return models.Task{}, false
	}
	return ResolveSelection(s.Tasks, taskID, s.openTaskID)
}

// SelectWorkLog sets the work log panel selection
func (s *Store) SelectWorkLog(id int64) { s.selectedWorkLogID = id }

// SelectedWorkLog resolves the selected work log from the fresh collection
func (s *Store) SelectedWorkLog() (models.WorkLog, bool) {
	if s.selectedWorkLogID == 0 {
		return models.WorkLog{}, false
	}
	return ResolveSelection(s.WorkLogs, workLogID, s.selectedWorkLogID)
}

// SelectNote sets the note panel selection
func (s *Store) SelectNote(id int64) { s.selectedNoteID = id }

// SelectedNote resolves the selected note from the fresh collection
func (s *Store) SelectedNote() (models.Note, bool) {
	if s.selectedNoteID == 0 {
		return models.Note{}, false
	}
	return ResolveSelection(s.Notes, noteID, s.selectedNoteID)
}

// UserByID finds a user in the cached directory
func (s *Store) UserByID(id int64) (models.User, bool) {
	return ResolveSelection(s.Users, func(u models.User) int64 { return u.ID }, id)
}

// Stats derives dashboard numbers from the cached collections
func (s *Store) Stats() models.DashboardStats {
	stats := models.DashboardStats{
		TotalProjects:   len(s.Projects),
		TasksByStatus:   make(map[string]int),
		TasksByPriority: make(map[string]int),
	}
	for _, p := range s.Projects {
		if p.Status == models.ProjectActive {
			stats.ActiveProjects++
		}
	}
	stats.TotalTasks = len(s.Tasks)
	for _, t := range s.Tasks {
		stats.TasksByStatus[t.Status]++
		stats.TasksByPriority[t.Priority]++
	}
	return stats
}
