package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/planboard/internal/models"
)

func wl(id int64, title string) models.WorkLog {
	return models.WorkLog{ID: id, Title: title}
}

func TestReconcileIsFullReplace(t *testing.T) {
	old := []models.WorkLog{wl(1, "a"), wl(2, "b")}
	fresh := []models.WorkLog{wl(2, "b2")}
	got := Reconcile(old, fresh, func(w models.WorkLog) int64 { return w.ID })
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].Title)
}

func TestReconcileEmptyFreshIsValid(t *testing.T) {
	old := []models.WorkLog{wl(1, "a")}
	got := Reconcile(old, nil, func(w models.WorkLog) int64 { return w.ID })
	assert.Empty(t, got)
}

func TestHasNewTrailingItem(t *testing.T) {
	id := func(th models.Thread) int64 { return th.ID }
	mk := func(ids ...int64) []models.Thread {
		out := make([]models.Thread, len(ids))
		for i, v := range ids {
			out[i] = models.Thread{ID: v}
		}
		return out
	}

	assert.True(t, HasNewTrailingItem(mk(1, 2, 3), mk(1, 2, 3, 4), id), "longer list")
	assert.True(t, HasNewTrailingItem(mk(1, 2, 3), mk(1, 2, 4), id), "different last id")
	assert.False(t, HasNewTrailingItem(mk(1, 2, 3), mk(1, 2, 3), id), "identical lists")
	assert.False(t, HasNewTrailingItem(nil, nil, id), "both empty")
	assert.True(t, HasNewTrailingItem(nil, mk(1), id), "first message")
}

func TestSelectionSurvivesRefresh(t *testing.T) {
	s := NewStore()
	s.SetWorkLogs([]models.WorkLog{wl(1, "one"), wl(2, "two")})
	s.SelectWorkLog(2)

	s.SetWorkLogs([]models.WorkLog{wl(2, "two-renamed"), wl(3, "three")})
	got, ok := s.SelectedWorkLog()
	require.True(t, ok)
	// The refreshed object, not the stale cached one
	assert.Equal(t, "two-renamed", got.Title)
}

func TestSelectionResetsWhenItemDisappears(t *testing.T) {
	s := NewStore()
	s.SetWorkLogs([]models.WorkLog{wl(1, "one"), wl(2, "two")})
	s.SelectWorkLog(2)

	s.SetWorkLogs([]models.WorkLog{wl(3, "three")})
	_, ok := s.SelectedWorkLog()
	assert.False(t, ok)
}

func TestOpenTaskClosedWhenDeletedServerSide(t *testing.T) {
	s := NewStore()
	s.SetTasks([]models.Task{{ID: 10, Title: "x"}, {ID: 11, Title: "y"}})
	s.OpenTask(11)

	s.SetTasks([]models.Task{{ID: 10, Title: "x"}})
	_, ok := s.OpenedTask()
	assert.False(t, ok)
}

func TestSetThreadsReportsGrowth(t *testing.T) {
	s := NewStore()
	grew := s.SetThreads([]models.Thread{{ID: 1}, {ID: 2}})
	assert.True(t, grew, "initial load counts as growth")

	grew = s.SetThreads([]models.Thread{{ID: 1}, {ID: 2}})
	assert.False(t, grew)

	grew = s.SetThreads([]models.Thread{{ID: 1}, {ID: 2}, {ID: 3}})
	assert.True(t, grew)
}

func TestSetProjectResetsScopedCollections(t *testing.T) {
	s := NewStore()
	s.SetProject(1)
	s.SetTasks([]models.Task{{ID: 1}})
	s.SetThreads([]models.Thread{{ID: 1}})
	s.OpenTask(1)

	s.SetProject(2)
	assert.Empty(t, s.Tasks)
	assert.Empty(t, s.Threads)
	_, ok := s.OpenedTask()
	assert.False(t, ok)

	// Re-opening the same project keeps the cache
	s.SetTasks([]models.Task{{ID: 9}})
	s.SetProject(2)
	assert.Len(t, s.Tasks, 1)
}

func TestStats(t *testing.T) {
	s := NewStore()
	s.SetProjects([]models.Project{
		{ID: 1, Status: models.ProjectActive},
		{ID: 2, Status: models.ProjectArchived},
	})
	s.SetTasks([]models.Task{
		{ID: 1, Status: models.StatusTodo, Priority: models.PriorityHigh},
		{ID: 2, Status: models.StatusDone, Priority: models.PriorityHigh},
		{ID: 3, Status: models.StatusTodo, Priority: models.PriorityLow},
	})

	stats := s.Stats()
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 2, stats.TasksByStatus[models.StatusTodo])
	assert.Equal(t, 2, stats.TasksByPriority[models.PriorityHigh])
}
