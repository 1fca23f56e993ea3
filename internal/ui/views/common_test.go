package views

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/tdnguyen/planboard/internal/models"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, clamp(5, 0, 3))
	assert.Equal(t, 0, clamp(-2, 0, 3))
	assert.Equal(t, 2, clamp(2, 0, 3))
}

func TestMentionPattern(t *testing.T) {
	got := mentionPattern.FindAllString("ping @alice and @bob.smith, not bare@text", -1)
	assert.Equal(t, []string{"@alice", "@bob.smith", "@text"}, got)

	assert.Empty(t, mentionPattern.FindAllString("no mentions here", -1))
}

func TestHighlightMentionsKeepsSurroundingText(t *testing.T) {
	out := highlightMentions("hey @carol done?", lipgloss.NewStyle())
	assert.Contains(t, out, "hey ")
	assert.Contains(t, out, "@carol")
	assert.Contains(t, out, " done?")
}

func TestDueLabel(t *testing.T) {
	assert.Equal(t, "", dueLabel(models.Time{}, time.UTC))

	past := models.Time{Time: time.Now().AddDate(0, 0, -3)}
	assert.True(t, strings.HasPrefix(dueLabel(past, time.UTC), "! "))

	future := models.Time{Time: time.Now().AddDate(0, 0, 3)}
	assert.False(t, strings.HasPrefix(dueLabel(future, time.UTC), "! "))
}

func TestProgressBar(t *testing.T) {
	bar := progressBar(50, 10)
	assert.Equal(t, 5, strings.Count(bar, "█"))
	assert.Equal(t, 5, strings.Count(bar, "░"))

	full := progressBar(100, 10)
	assert.Equal(t, 10, strings.Count(full, "█"))
	assert.Equal(t, 0, strings.Count(full, "░"))

	empty := progressBar(0, 10)
	assert.Equal(t, 0, strings.Count(empty, "█"))
}

func TestCountSuffix(t *testing.T) {
	assert.Equal(t, "", countSuffix(0))
	assert.Equal(t, " (4)", countSuffix(4))
}
