// Package task defines the read model for scheduled tasks and the
// provider interface the schedule is loaded through.
package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcallahan/taskschedule/internal/dateutil"
)

// Validation errors returned by New.
var (
	ErrEmptyDescription = errors.New("task description must not be empty")
	ErrMissingStart     = errors.New("task must have a scheduled start")
	ErrEndBeforeStart   = errors.New("task end must not be before its start")
)

// Status glyphs shown in the margin next to each task.
const (
	GlyphPending   = '•'
	GlyphActive    = '»'
	GlyphOverdue   = '!'
	GlyphCompleted = '✓'
)

// View is one task as the schedule shows it: an immutable snapshot of
// the provider's state at load time.
type View struct {
	ID          int
	Description string
	Project     string
	Start       time.Time
	End         *time.Time
	Completed   bool
	Active      bool
	Glyph       rune
}

// New validates the fields and derives the status glyph against the
// given clock. Completed beats active, which beats overdue.
func New(id int, description, project string, start time.Time, end *time.Time, completed, active bool, now time.Time) (View, error) {
	if description == "" {
		return View{}, ErrEmptyDescription
	}
	if start.IsZero() {
		return View{}, ErrMissingStart
	}
	if end != nil && end.Before(start) {
		return View{}, ErrEndBeforeStart
	}

	v := View{
		ID:          id,
		Description: description,
		Project:     project,
		Start:       start,
		End:         end,
		Completed:   completed,
		Active:      active,
	}

	switch {
	case completed:
		v.Glyph = GlyphCompleted
	case active:
		v.Glyph = GlyphActive
	case v.Overdue(now):
		v.Glyph = GlyphOverdue
	default:
		v.Glyph = GlyphPending
	}

	return v, nil
}

// Hour returns the local hour bucket the task belongs to.
func (v View) Hour() int {
	return v.Start.Hour()
}

// StartTime returns the start as a wall clock string.
func (v View) StartTime() string {
	return v.Start.Format("15:04")
}

// TimeCell returns the time column content, a range when the task has
// an end.
func (v View) TimeCell() string {
	if v.End == nil {
		return v.StartTime()
	}
	return fmt.Sprintf("%s-%s", v.StartTime(), v.End.Format("15:04"))
}

// Overdue reports whether the start has passed without completion.
func (v View) Overdue(now time.Time) bool {
	return v.Start.Before(now) && !v.Completed
}

// ShouldBeActive reports whether the task covers the current moment:
// it has started, and its successor has not. A task the provider
// already marks active keeps that stronger signal instead. Without a
// successor there is no end to the task's slot, so no claim is made.
func (v View) ShouldBeActive(next *View, now time.Time) bool {
	if v.Active || next == nil {
		return false
	}
	return !v.Start.After(now) && !next.Start.Before(now)
}

// Provider loads the tasks scheduled inside a day window.
type Provider interface {
	Query(ctx context.Context, window dateutil.Window, includeCompleted bool) ([]View, error)
}
