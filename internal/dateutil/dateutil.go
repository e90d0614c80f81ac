// Package dateutil provides scheduled-window parsing and date utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidWindow = errors.New("window must be a date (YYYY-MM-DD), a weekday name, 'today', 'tomorrow' or 'yesterday'")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Window is a half-open day range [Start, End) selecting which scheduled
// tasks are visible.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayWindow returns the single-day window containing t.
func DayWindow(t time.Time) Window {
	start := TruncateToDay(t)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// ParseWindow parses a scheduled-window selector relative to a reference
// instant. Supported inputs (case-insensitive):
//   - "" or "today"
//   - "tomorrow", "yesterday"
//   - weekday names ("monday".."sunday"), meaning the next occurrence
//   - absolute dates in YYYY-MM-DD format
//
// The selector is re-parsed every refresh tick, so "today" follows the
// wall clock across midnight on long-running sessions.
func ParseWindow(s string, relativeTo time.Time) (Window, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return DayWindow(today), nil
	case "tomorrow":
		return DayWindow(today.AddDate(0, 0, 1)), nil
	case "yesterday":
		return DayWindow(today.AddDate(0, 0, -1)), nil
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return DayWindow(nextWeekday(today, targetDay)), nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", input, relativeTo.Location())
	if err != nil {
		return Window{}, ErrInvalidWindow
	}
	return DayWindow(parsed), nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nextWeekday returns the next occurrence of the given weekday on or after
// today. If today is the target weekday, today is returned.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil < 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
