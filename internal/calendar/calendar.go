// Package calendar builds the month grid for the calendar view: whole weeks
// of day cells with tasks and todos bucketed by the viewer's local calendar
// date. Pure computation, no rendering.
package calendar

import (
	"time"

	"github.com/tdnguyen/planboard/internal/models"
)

// Entry states, in precedence order
const (
	StateDone       = "done"
	StateLate       = "late"
	StateInProgress = "in_progress"
)

// Entry is a task or todo pinned to a calendar day
type Entry struct {
	Kind  string // "task" or "todo"
	ID    int64
	Title string
	State string
	Date  models.Time
}

// Cell is one day square in the grid. Entries are only bucketed into cells
// of the displayed month; leading/trailing filler days stay empty.
type Cell struct {
	Date           time.Time
	IsCurrentMonth bool
	IsToday        bool
	Entries        []Entry
}

// Grid is a whole-week month layout, always a multiple of 7 cells
type Grid struct {
	Year  int
	Month time.Month
	Cells []Cell
	Weeks int
}

// Classify derives an entry's display state. Done wins over everything;
// late means the date has passed without completion.
func Classify(done bool, date models.Time, now time.Time, loc *time.Location) string {
	if done {
		return StateDone
	}
	if loc == nil {
		loc = time.Local
	}
	if date.Valid() && date.LocalDateKey(loc) < now.In(loc).Format("2006-01-02") {
		return StateLate
	}
	return StateInProgress
}

// TaskEntries converts due-dated tasks into calendar entries
func TaskEntries(tasks []models.Task, now time.Time, loc *time.Location) []Entry {
	out := make([]Entry, 0, len(tasks))
	for _, t := range tasks {
		if !t.DueDate.Valid() {
			continue
		}
		out = append(out, Entry{
			Kind:  "task",
			ID:    t.ID,
			Title: t.Title,
			State: Classify(t.Status == models.StatusDone, t.DueDate, now, loc),
			Date:  t.DueDate,
		})
	}
	return out
}

// TodoEntries converts todos into calendar entries
func TodoEntries(todos []models.Todo, now time.Time, loc *time.Location) []Entry {
	out := make([]Entry, 0, len(todos))
	for _, td := range todos {
		if !td.PlannedDate.Valid() {
			continue
		}
		out = append(out, Entry{
			Kind:  "todo",
			ID:    td.ID,
			Title: td.Title,
			State: Classify(td.IsDone, td.PlannedDate, now, loc),
			Date:  td.PlannedDate,
		})
	}
	return out
}

// Build lays out the month containing ref. The grid starts on the Sunday on
// or before the 1st and runs whole weeks until the month is covered.
func Build(ref time.Time, entries []Entry, now time.Time, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	ref = ref.In(loc)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	offset := int(first.Weekday()) // 0=Sunday..6=Saturday
	daysInMonth := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, loc).Day()
	weeks := (daysInMonth + offset + 6) / 7
	totalCells := weeks * 7
	gridStart := first.AddDate(0, 0, -offset)

	// Bucket entries by local date key up front
	byDay := make(map[string][]Entry, len(entries))
	for _, e := range entries {
		key := e.Date.LocalDateKey(loc)
		byDay[key] = append(byDay[key], e)
	}
	todayKey := now.In(loc).Format("2006-01-02")

	cells := make([]Cell, 0, totalCells)
	for i := 0; i < totalCells; i++ {
		date := gridStart.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		cell := Cell{
			Date:           date,
			IsCurrentMonth: date.Month() == ref.Month() && date.Year() == ref.Year(),
			IsToday:        key == todayKey,
		}
		if cell.IsCurrentMonth {
			cell.Entries = byDay[key]
		}
		cells = append(cells, cell)
	}

	return Grid{
		Year:  ref.Year(),
		Month: ref.Month(),
		Cells: cells,
		Weeks: weeks,
	}
}
