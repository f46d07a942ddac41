package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the day-granularity format used by attendance records and
// task due dates.
const DateFormat = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NewID returns a new opaque record identifier.
func NewID() string {
	return uuid.New().String()
}

// CleanDate normalizes a date string to day granularity, dropping any time
// part (e.g. "2025-03-10T08:00:00Z" -> "2025-03-10").
func CleanDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i != -1 {
		s = s[:i]
	}
	return s
}

// ParseDate parses a day-granularity date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, CleanDate(s))
}
