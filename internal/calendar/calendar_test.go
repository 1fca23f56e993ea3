package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/planboard/internal/models"
)

func TestGridCoversWholeWeeks(t *testing.T) {
	loc := time.UTC
	months := []time.Time{
		time.Date(2024, time.February, 15, 0, 0, 0, 0, loc), // leap February
		time.Date(2024, time.March, 1, 0, 0, 0, 0, loc),
		time.Date(2024, time.September, 30, 0, 0, 0, 0, loc), // starts on Sunday
		time.Date(2026, time.February, 10, 0, 0, 0, 0, loc),
	}
	for _, ref := range months {
		g := Build(ref, nil, ref, loc)
		assert.Zero(t, len(g.Cells)%7, "%s: cell count not a multiple of 7", ref.Month())

		current := 0
		seen := map[int]bool{}
		for _, c := range g.Cells {
			if c.IsCurrentMonth {
				current++
				assert.False(t, seen[c.Date.Day()], "duplicate day %d", c.Date.Day())
				seen[c.Date.Day()] = true
			}
		}
		daysInMonth := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, loc).Day()
		assert.Equal(t, daysInMonth, current, "%s: month days covered exactly once", ref.Month())
	}
}

func TestGridStartsOnSunday(t *testing.T) {
	loc := time.UTC
	// March 2024 starts on a Friday; grid start is Sunday Feb 25
	g := Build(time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), nil, time.Now(), loc)
	assert.Equal(t, time.Sunday, g.Cells[0].Date.Weekday())
	assert.Equal(t, 25, g.Cells[0].Date.Day())
	assert.False(t, g.Cells[0].IsCurrentMonth)
}

func TestLocalDateBinningNearMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, loc)

	// 23:30 local on March 10 is March 11 in UTC; it must land on March 10
	task := models.Task{
		ID:      1,
		Title:   "deploy",
		Status:  models.StatusInProgress,
		DueDate: models.ParseTime("2024-03-10T23:30:00-05:00"),
	}
	entries := TaskEntries([]models.Task{task}, now, loc)
	g := Build(time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), entries, now, loc)

	for _, c := range g.Cells {
		if !c.IsCurrentMonth {
			continue
		}
		switch c.Date.Day() {
		case 10:
			require.Len(t, c.Entries, 1, "entry missing from March 10")
		case 11:
			assert.Empty(t, c.Entries, "entry leaked into March 11")
		}
	}
}

func TestIsTodayFlag(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.March, 14, 23, 59, 0, 0, loc)
	g := Build(now, nil, now, loc)

	var todays int
	for _, c := range g.Cells {
		if c.IsToday {
			todays++
			assert.Equal(t, 14, c.Date.Day())
		}
	}
	assert.Equal(t, 1, todays)
}

func TestClassifyPrecedence(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.March, 14, 10, 0, 0, 0, loc)
	yesterday := models.ParseTime("2024-03-13")
	tomorrow := models.ParseTime("2024-03-15")

	assert.Equal(t, StateDone, Classify(true, yesterday, now, loc), "done wins over late")
	assert.Equal(t, StateLate, Classify(false, yesterday, now, loc))
	assert.Equal(t, StateInProgress, Classify(false, tomorrow, now, loc))
	assert.Equal(t, StateInProgress, Classify(false, models.ParseTime("2024-03-14"), now, loc),
		"due today is not late")
}

func TestTodoEntries(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.March, 14, 0, 0, 0, 0, loc)
	todos := []models.Todo{
		{ID: 1, Title: "a", PlannedDate: models.ParseTime("2024-03-13"), IsDone: true},
		{ID: 2, Title: "b", PlannedDate: models.ParseTime("2024-03-13")},
		{ID: 3, Title: "no date"},
	}
	entries := TodoEntries(todos, now, loc)
	require.Len(t, entries, 2)
	assert.Equal(t, StateDone, entries[0].State)
	assert.Equal(t, StateLate, entries[1].State)
}

func TestFillerCellsCarryNoEntries(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)
	// Feb 25 belongs to the leading filler row of the March grid
	task := models.Task{ID: 1, Title: "x", DueDate: models.ParseTime("2024-02-25")}
	g := Build(now, TaskEntries([]models.Task{task}, now, loc), now, loc)

	assert.Equal(t, 25, g.Cells[0].Date.Day())
	assert.Empty(t, g.Cells[0].Entries)
}
