package models

// Task statuses as the server reports them
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusBlocked    = "blocked"
)

// BoardColumns is the kanban column order
var BoardColumns = []string{StatusTodo, StatusInProgress, StatusDone, StatusBlocked}

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Project statuses
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

// User represents an account on the server
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	AvatarURL  string `json:"avatar_url"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Team       string `json:"team"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  Time   `json:"created_at"`
}

// DisplayName returns the full name, falling back to the username
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Project represents a project container
type Project struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	Color         string `json:"color"`
	OwnerID       int64  `json:"owner_id"`
	WorkspaceID   *int64 `json:"workspace_id"`
	ProjectTypeID *int64 `json:"project_type_id"`
	DueDate       Time   `json:"due_date"`
	CreatedAt     Time   `json:"created_at"`
	UpdatedAt     Time   `json:"updated_at"`
}

// ProjectType is a selectable project category
type ProjectType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubTask is a checklist entry under a task
type SubTask struct {
	ID            int64  `json:"id"`
	TaskID        int64  `json:"task_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	AttachmentURL string `json:"attachment_url"`
	IsDone        bool   `json:"is_done"`
	WorkLogID     *int64 `json:"work_log_id"`
	CreatedAt     Time   `json:"created_at"`
}

// Task represents a work item on a project board.
// Progress and subtask counts are computed server-side; the client only
// displays them.
type Task struct {
	ID                int64     `json:"id"`
	ProjectID         int64     `json:"project_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	Tags              string    `json:"tags"`
	Position          int       `json:"position"`
	DueDate           Time      `json:"due_date"`
	CreatedAt         Time      `json:"created_at"`
	UpdatedAt         Time      `json:"updated_at"`
	Subtasks          []SubTask `json:"subtasks"`
	ProgressPercent   float64   `json:"progress_percent"`
	CompletedSubtasks int       `json:"completed_subtasks"`
	TotalSubtasks     int       `json:"total_subtasks"`
	Assignees         []User    `json:"assignees"`
}

// Thread is a project discussion message with one level of replies
type Thread struct {
	ID        int64    `json:"id"`
	ProjectID int64    `json:"project_id"`
	UserID    int64    `json:"user_id"`
	ParentID  *int64   `json:"parent_id"`
	Content   string   `json:"content"`
	Mentions  []int64  `json:"mentions"`
	IsEdited  bool     `json:"is_edited"`
	IsDeleted bool     `json:"is_deleted"`
	CreatedAt Time     `json:"created_at"`
	UpdatedAt Time     `json:"updated_at"`
	User      *User    `json:"user"`
	Replies   []Thread `json:"replies"`
}

// Comment is a comment attached to a task
type Comment struct {
	ID            int64  `json:"id"`
	TaskID        int64  `json:"task_id"`
	UserID        int64  `json:"user_id"`
	Content       string `json:"content"`
	AttachmentURL string `json:"attachment_url"`
	IsEdited      bool   `json:"is_edited"`
	IsDeleted     bool   `json:"is_deleted"`
	CreatedAt     Time   `json:"created_at"`
	User          *User  `json:"user"`
}

// Activity is an append-only project audit entry
type Activity struct {
	ID           int64  `json:"id"`
	ProjectID    int64  `json:"project_id"`
	UserID       int64  `json:"user_id"`
	ActivityType string `json:"activity_type"`
	EntityType   string `json:"entity_type"`
	EntityID     int64  `json:"entity_id"`
	Description  string `json:"description"`
	CreatedAt    Time   `json:"created_at"`
	User         *User  `json:"user"`
}

// Todo is a personal planned item for a calendar day
type Todo struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PlannedDate Time   `json:"planned_date"`
	IsDone      bool   `json:"is_done"`
	DoneAt      Time   `json:"done_at"`
	CreatedAt   Time   `json:"created_at"`
}

// Attachment is an uploaded file reference on a work log
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// WorkLog is a dated journal entry, optionally linked to work items
type WorkLog struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"owner_id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ProjectID   *int64       `json:"project_id"`
	TaskID      *int64       `json:"task_id"`
	SubtaskID   *int64       `json:"subtask_id"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   Time         `json:"created_at"`
	UpdatedAt   Time         `json:"updated_at"`
}

// Note is a free-form note, optionally linked to a project, task, or work log
type Note struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"owner_id"`
	Title     string `json:"title"`
	NoteDate  Time   `json:"note_date"`
	Content   string `json:"content"`
	ProjectID *int64 `json:"project_id"`
	TaskID    *int64 `json:"task_id"`
	WorkLogID *int64 `json:"work_log_id"`
	CreatedAt Time   `json:"created_at"`
	UpdatedAt Time   `json:"updated_at"`
}

// Notification is a server-pushed alert for the current user
type Notification struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ProjectID *int64 `json:"project_id"`
	TaskID    *int64 `json:"task_id"`
	ThreadID  *int64 `json:"thread_id"`
	IsRead    bool   `json:"is_read"`
	ReadAt    Time   `json:"read_at"`
	CreatedAt Time   `json:"created_at"`
}

// DashboardStats summarizes the current user's workload
type DashboardStats struct {
	TotalProjects   int            `json:"total_projects"`
	ActiveProjects  int            `json:"active_projects"`
	TotalTasks      int            `json:"total_tasks"`
	TasksByStatus   map[string]int `json:"tasks_by_status"`
	TasksByPriority map[string]int `json:"tasks_by_priority"`
}
