package views

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// SelectedProject signals that a project was opened from the project list
type SelectedProject struct {
	Project models.Project
}

// BackToProjects signals to go back to the project list
type BackToProjects struct{}

// ErrMsg carries a request failure into the UI
type ErrMsg struct {
	Err error
}

// requestTimeout bounds every command-driven API call
const requestTimeout = 15 * time.Second

func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Success notes in the status line clear on their own after a short delay;
// errors stay until the next action. The sequence number keeps a pending
// clear from wiping a newer message.
const statusClearDelay = 4 * time.Second

type statusClearMsg struct{ seq int }

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// mentionPattern matches @username tokens in message content
var mentionPattern = regexp.MustCompile(`@[A-Za-z0-9_.-]+`)

// highlightMentions colors @username tokens within content
func highlightMentions(content string, style lipgloss.Style) string {
	return mentionPattern.ReplaceAllStringFunc(content, func(m string) string {
		return style.Render(m)
	})
}

// dueLabel formats a task due date for list rows; overdue dates are flagged
func dueLabel(due models.Time, loc *time.Location) string {
	if !due.Valid() {
		return ""
	}
	label := due.In(loc).Format("Jan 2")
	if due.Before(time.Now()) {
		return "! " + label
	}
	return label
}

// progressBar renders a fixed-width completion bar
func progressBar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(percent / 100 * float64(width))
	filled = clamp(filled, 0, width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fg := styles.Current.Success
	if percent < 100 {
		fg = styles.Current.Primary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(bar)
}

// authorLine formats a message header: name and relative-ish timestamp
func authorLine(s *styles.Styles, name string, at models.Time, loc *time.Location) string {
	ts := ""
	if at.Valid() {
		ts = at.In(loc).Format("Jan 2 15:04")
	}
	return s.Title.Render(name) + " " + s.TitleMuted.Render(ts)
}

// countSuffix renders "(n)" for non-zero counts
func countSuffix(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d)", n)
}
