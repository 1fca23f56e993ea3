package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSpaceSeparator(t *testing.T) {
	ts := ParseTime("2024-01-02 15:04:05")
	require.True(t, ts.Valid())
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.January, ts.Month())
	assert.Equal(t, 2, ts.Day())
	assert.Equal(t, 15, ts.Hour())
}

func TestParseTimeVariants(t *testing.T) {
	cases := map[string]bool{
		"2024-03-10T23:30:00-05:00":  true,
		"2024-03-10T23:30:00Z":       true,
		"2024-03-10T23:30:00.123456": true,
		"2024-03-10":                 true,
		"":                          false,
		"null":                      false,
		"not-a-date":                false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseTime(in).Valid(), "input %q", in)
	}
}

func TestTimeUnmarshalNull(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"due_date":null,"created_at":"2024-01-01 08:00:00"}`), &task))
	assert.False(t, task.DueDate.Valid())
	assert.True(t, task.CreatedAt.Valid())
}

func TestLocalDateKeyUsesViewerZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := ParseTime("2024-03-10T23:30:00-05:00")
	// 23:30 local is already March 11 in UTC; the key must stay on March 10.
	assert.Equal(t, "2024-03-10", ts.LocalDateKey(loc))
	assert.Equal(t, "2024-03-11", ts.LocalDateKey(time.UTC))
}
