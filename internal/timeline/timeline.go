// Package timeline computes Gantt chart geometry from a task collection.
// Everything here is pure: tasks in, axis and bar percentages out, no
// mutation of the input.
package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/tdnguyen/planboard/internal/models"
)

// Bar is one task's row on the chart. Percentages are relative to the
// shared date axis.
type Bar struct {
	TaskID       int64
	Label        string
	Status       string
	Color        string
	LeftPercent  float64
	WidthPercent float64
	Start        time.Time
	End          time.Time
}

// AxisLabel is a dated tick on the shared axis
type AxisLabel struct {
	Date    time.Time
	Percent float64
}

// Layout is the full render model for the chart
type Layout struct {
	Bars          []Bar
	Axis          []AxisLabel
	MinDate       time.Time
	MaxDate       time.Time
	TotalSpanDays int
	// Empty is set when no task in the set has a due date; the view shows
	// the "no schedulable tasks" state instead of a chart.
	Empty bool
}

// Bar colors by task status
var statusColors = map[string]string{
	models.StatusTodo:       "#7aa2f7",
	models.StatusInProgress: "#e0af68",
	models.StatusDone:       "#9ece6a",
	models.StatusBlocked:    "#f7768e",
}

// StatusColor returns the bar color for a task status
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[models.StatusTodo]
}

const fallbackSpan = 48 * time.Hour

type span struct {
	task  models.Task
	start time.Time
	end   time.Time
}

// effectiveSpan derives the date range used for layout: start is created_at
// with due_date as fallback, end is due_date with start+2d as fallback.
func effectiveSpan(t models.Task) (span, bool) {
	var start, end time.Time
	switch {
	case t.CreatedAt.Valid():
		start = t.CreatedAt.Time
	case t.DueDate.Valid():
		start = t.DueDate.Time
	default:
		return span{}, false
	}
	if t.DueDate.Valid() {
		end = t.DueDate.Time
	} else {
		end = start.Add(fallbackSpan)
	}
	if end.Before(start) {
		end = start
	}
	return span{task: t, start: start, end: end}, true
}

// Compute lays out the chart for a task collection
func Compute(tasks []models.Task) Layout {
	spans := make([]span, 0, len(tasks))
	var minDate, maxDate time.Time
	anyDue := false

	for _, t := range tasks {
		sp, ok := effectiveSpan(t)
		if !ok {
			continue
		}
		spans = append(spans, sp)
		if minDate.IsZero() || sp.start.Before(minDate) {
			minDate = sp.start
		}
		if t.DueDate.Valid() {
			anyDue = true
			if maxDate.IsZero() || t.DueDate.After(maxDate) {
				maxDate = t.DueDate.Time
			}
		}
	}
	if !anyDue || len(spans) == 0 {
		return Layout{Empty: true}
	}

	// 1-day floor keeps the single-date case out of division by zero
	totalDays := int(math.Ceil(maxDate.Sub(minDate).Hours() / 24))
	if totalDays < 1 {
		totalDays = 1
	}
	total := float64(totalDays)

	// Stable sort: ties keep the original collection order
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})

	bars := make([]Bar, 0, len(spans))
	for _, sp := range spans {
		startDays := sp.start.Sub(minDate).Hours() / 24
		widthDays := sp.end.Sub(sp.start).Hours() / 24
		if widthDays < 1 {
			widthDays = 1
		}
		bars = append(bars, Bar{
			TaskID:       sp.task.ID,
			Label:        sp.task.Title,
			Status:       sp.task.Status,
			Color:        StatusColor(sp.task.Status),
			LeftPercent:  startDays / total * 100,
			WidthPercent: widthDays / total * 100,
			Start:        sp.start,
			End:          sp.end,
		})
	}

	return Layout{
		Bars:          bars,
		Axis:          axisLabels(minDate, totalDays),
		MinDate:       minDate,
		MaxDate:       maxDate,
		TotalSpanDays: totalDays,
	}
}

// axisLabels samples at most 7 evenly spaced ticks across the span
func axisLabels(minDate time.Time, totalDays int) []AxisLabel {
	step := totalDays / 6
	if step < 1 {
		step = 1
	}
	labels := make([]AxisLabel, 0, 7)
	for off := 0; off <= totalDays && len(labels) < 7; off += step {
		pct := float64(off) / float64(totalDays) * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		labels = append(labels, AxisLabel{
			Date:    minDate.AddDate(0, 0, off),
			Percent: pct,
		})
	}
	return labels
}
