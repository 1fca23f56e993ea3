package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Time wraps time.Time for timestamps coming off the API. The server emits
// ISO 8601 strings but sometimes with a space instead of the "T" separator,
// and date-only values for due dates. A value that cannot be parsed decodes
// to the zero Time and is treated as absent everywhere downstream.
type Time struct {
	time.Time
}

// Layouts tried in order when decoding server timestamps
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime normalizes and parses a server timestamp string
func ParseTime(s string) Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return Time{}
	}
	// Space separator variant: "2024-01-02 15:04:05"
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{Time: t}
		}
	}
	return Time{}
}

// Valid reports whether the timestamp is present
func (t Time) Valid() bool {
	return !t.IsZero()
}

// LocalDateKey returns the YYYY-MM-DD key of the timestamp in loc.
// Day bucketing always uses the viewer's calendar date, never the UTC day.
func (t Time) LocalDateKey(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02")
}

// UnmarshalJSON accepts a JSON string or null
func (t *Time) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*t = Time{}
		return nil
	}
	*t = ParseTime(*s)
	return nil
}

// MarshalJSON emits RFC 3339 or null when absent
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
