package schedule

import (
	"time"

	"github.com/jcallahan/taskschedule/internal/task"
)

// State is the visual classification of one schedule row.
type State int

const (
	// StateNormal and StateNormalAlt are pending rows on the two
	// alternating background shades.
	StateNormal State = iota
	StateNormalAlt
	// StateCompleted and StateCompletedAlt are done rows, also striped.
	StateCompleted
	StateCompletedAlt
	// StateOverdue marks pending tasks whose start has passed.
	StateOverdue
	// StateCurrent marks the task implied to be in progress by its
	// position between now and the next scheduled task.
	StateCurrent
	// StateActive marks a task explicitly being worked on.
	StateActive
)

// String returns the state name for debugging and test output.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateNormalAlt:
		return "normal-alt"
	case StateCompleted:
		return "completed"
	case StateCompletedAlt:
		return "completed-alt"
	case StateOverdue:
		return "overdue"
	case StateCurrent:
		return "current"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Highlighted reports whether the state is one of the three highlight
// colors that override zebra striping.
func (s State) Highlighted() bool {
	return s == StateActive || s == StateCurrent || s == StateOverdue
}

// Classify maps a task, its neighbor in the same hour bucket, the current
// instant and the row alternation flag to a visual state. Precedence, first
// match wins:
//
//  1. explicitly active
//  2. implied current (started, next neighbor not yet started)
//  3. overdue and not completed
//  4. completed or normal, striped by the alternation flag
func Classify(v task.View, next *task.View, now time.Time, alternate bool) State {
	switch {
	case v.Active:
		return StateActive
	case v.ShouldBeActive(next, now):
		return StateCurrent
	case v.Overdue(now) && !v.Completed:
		return StateOverdue
	case v.Completed:
		if alternate {
			return StateCompleted
		}
		return StateCompletedAlt
	default:
		if alternate {
			return StateNormal
		}
		return StateNormalAlt
	}
}
