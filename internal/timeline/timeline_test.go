package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/planboard/internal/models"
)

func task(id int64, created, due string) models.Task {
	return models.Task{
		ID:        id,
		Title:     "t",
		Status:    models.StatusTodo,
		CreatedAt: models.ParseTime(created),
		DueDate:   models.ParseTime(due),
	}
}

func TestComputeConcreteGeometry(t *testing.T) {
	tasks := []models.Task{
		task(1, "2024-01-01", "2024-01-03"),
		task(2, "2024-01-02", "2024-01-06"),
	}
	l := Compute(tasks)
	require.False(t, l.Empty)

	assert.Equal(t, "2024-01-01", l.MinDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-06", l.MaxDate.Format("2006-01-02"))
	assert.Equal(t, 5, l.TotalSpanDays)

	require.Len(t, l.Bars, 2)
	assert.Equal(t, int64(1), l.Bars[0].TaskID)
	assert.InDelta(t, 0.0, l.Bars[0].LeftPercent, 1e-9)
	assert.InDelta(t, 40.0, l.Bars[0].WidthPercent, 1e-9)
	assert.Equal(t, int64(2), l.Bars[1].TaskID)
	assert.InDelta(t, 20.0, l.Bars[1].LeftPercent, 1e-9)
	assert.InDelta(t, 80.0, l.Bars[1].WidthPercent, 1e-9)
}

func TestComputeEmptyWhenNoDueDates(t *testing.T) {
	tasks := []models.Task{
		task(1, "2024-01-01", ""),
		task(2, "2024-01-05", ""),
	}
	l := Compute(tasks)
	assert.True(t, l.Empty)
	assert.Empty(t, l.Bars)
}

func TestComputeEmptyInput(t *testing.T) {
	assert.True(t, Compute(nil).Empty)
}

func TestSingleTaskFullWidth(t *testing.T) {
	l := Compute([]models.Task{task(1, "2024-02-01", "2024-02-01")})
	require.False(t, l.Empty)
	assert.Equal(t, 1, l.TotalSpanDays)
	require.Len(t, l.Bars, 1)
	assert.InDelta(t, 0.0, l.Bars[0].LeftPercent, 1e-9)
	assert.InDelta(t, 100.0, l.Bars[0].WidthPercent, 1e-9)
}

func TestMinimumOneDayWidth(t *testing.T) {
	tasks := []models.Task{
		task(1, "2024-01-01", "2024-01-01"), // zero-length span
		task(2, "2024-01-01", "2024-01-11"),
	}
	l := Compute(tasks)
	require.Len(t, l.Bars, 2)
	assert.Equal(t, 10, l.TotalSpanDays)
	assert.InDelta(t, 10.0, l.Bars[0].WidthPercent, 1e-9)
}

func TestDueDateFallbackForStart(t *testing.T) {
	// No created_at: the due date anchors the bar
	l := Compute([]models.Task{
		task(1, "", "2024-03-05"),
		task(2, "2024-03-01", "2024-03-07"),
	})
	require.False(t, l.Empty)
	assert.Equal(t, "2024-03-01", l.MinDate.Format("2006-01-02"))
	require.Len(t, l.Bars, 2)
	assert.Equal(t, int64(2), l.Bars[0].TaskID, "ordered by effective start")
}

func TestTaskWithoutAnyDateIsSkipped(t *testing.T) {
	l := Compute([]models.Task{
		task(1, "", ""),
		task(2, "2024-01-01", "2024-01-04"),
	})
	require.False(t, l.Empty)
	assert.Len(t, l.Bars, 1)
}

func TestStableOrderOnEqualStarts(t *testing.T) {
	l := Compute([]models.Task{
		task(7, "2024-01-01", "2024-01-02"),
		task(8, "2024-01-01", "2024-01-05"),
		task(9, "2024-01-01", "2024-01-03"),
	})
	require.Len(t, l.Bars, 3)
	assert.Equal(t, []int64{7, 8, 9}, []int64{l.Bars[0].TaskID, l.Bars[1].TaskID, l.Bars[2].TaskID})
}

func TestAxisLabels(t *testing.T) {
	l := Compute([]models.Task{task(1, "2024-01-01", "2024-01-31")})
	require.False(t, l.Empty)
	assert.LessOrEqual(t, len(l.Axis), 7)
	assert.InDelta(t, 0.0, l.Axis[0].Percent, 1e-9)
	for _, a := range l.Axis {
		assert.GreaterOrEqual(t, a.Percent, 0.0)
		assert.LessOrEqual(t, a.Percent, 100.0)
	}
	// step = max(1, 30/6) = 5 days
	assert.Equal(t, "2024-01-06", l.Axis[1].Date.Format("2006-01-02"))
}

func TestNoInputMutation(t *testing.T) {
	tasks := []models.Task{
		task(2, "2024-01-02", "2024-01-06"),
		task(1, "2024-01-01", "2024-01-03"),
	}
	Compute(tasks)
	assert.Equal(t, int64(2), tasks[0].ID, "input order changed")
}
