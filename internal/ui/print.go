package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/jcallahan/taskschedule/internal/dateutil"
	"github.com/jcallahan/taskschedule/internal/schedule"
	"github.com/jcallahan/taskschedule/internal/task"
)

func (a *App) printCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the schedule once and exit",
		Long: `Print a snapshot of the schedule without starting the live view.

Useful for scripts, pagers and narrow terminals. Honors the same flags
as the live view.`,
		Example: `  taskschedule print
  taskschedule print -s tomorrow
  taskschedule print -s 2025-03-14 -a`,
		RunE: func(_ *cobra.Command, _ []string) error {
			provider, err := a.openProvider()
			if err != nil {
				return err
			}
			return a.printOnce(os.Stdout, provider, time.Now())
		},
	}
	return cmd
}

// printOnce loads the schedule for the selected day and writes one
// rendering of it. A provider failure is reported but still exits
// cleanly with an empty schedule, matching the live view.
func (a *App) printOnce(w io.Writer, provider task.Provider, now time.Time) error {
	window, err := dateutil.ParseWindow(a.scheduled, now)
	if err != nil {
		return err
	}

	idx, loadErr := schedule.Load(context.Background(), provider, window, !a.hideCompleted)
	renderSchedule(w, idx, now, a.showAllHours, a.hideProject, termWidth())

	if loadErr != nil {
		fmt.Fprintln(w, formatMuted("provider unavailable, showing empty schedule"))
	}
	return nil
}

// renderSchedule writes the hour-by-hour schedule. Empty hours before
// the first task are skipped unless allHours is set; empty hours after
// it are kept so gaps in the day stay visible.
func renderSchedule(w io.Writer, idx *schedule.Index, now time.Time, allHours, hideProject bool, width int) {
	fmt.Fprintln(w, formatHeader(headerLine(idx.Offsets(), hideProject)))

	pastFirstTask := false
	for hour := 0; hour < schedule.HoursPerDay; hour++ {
		bucket := idx.Bucket(hour)
		if len(bucket) == 0 {
			if pastFirstTask || allHours {
				fmt.Fprintln(w, formatMuted(fmt.Sprintf("%d", hour)))
			}
			continue
		}

		for i, v := range bucket {
			label := ""
			if i == 0 {
				label = fmt.Sprintf("%d", hour)
			}
			var next *task.View
			if i+1 < len(bucket) {
				next = &bucket[i+1]
			}
			line := taskLine(label, v, idx.Offsets(), hideProject)
			fmt.Fprintln(w, colorize(ansi.Truncate(line, width, ""), schedule.Classify(v, next, now, false)))
		}
		pastFirstTask = true
	}
}

// headerLine lays the column headers out at the index's offsets.
func headerLine(o schedule.Offsets, hideProject bool) string {
	buf := newLineBuffer()
	buf.put(o.ID, schedule.HeaderID)
	buf.put(o.Time, schedule.HeaderTime)
	if hideProject {
		buf.put(o.Project, schedule.HeaderDescription)
	} else {
		buf.put(o.Project, schedule.HeaderProject)
		buf.put(o.Description, schedule.HeaderDescription)
	}
	return strings.Repeat(" ", schedule.ContentColumn) + buf.String()
}

// taskLine lays one task out at the index's offsets, with the hour
// label and glyph in the left margin.
func taskLine(label string, v task.View, o schedule.Offsets, hideProject bool) string {
	buf := newLineBuffer()
	if v.ID != 0 {
		buf.put(o.ID, fmt.Sprintf("%d", v.ID))
	}
	buf.put(o.Time, v.TimeCell())
	if hideProject {
		buf.put(o.Project, v.Description)
	} else {
		buf.put(o.Project, v.Project)
		buf.put(o.Description, v.Description)
	}
	return fmt.Sprintf("%-3s%c ", label, v.Glyph) + buf.String()
}

func colorize(line string, state schedule.State) string {
	switch state {
	case schedule.StateActive:
		return formatActive(line)
	case schedule.StateCurrent:
		return formatCurrent(line)
	case schedule.StateOverdue:
		return formatOverdue(line)
	case schedule.StateCompleted, schedule.StateCompletedAlt:
		return formatDone(line)
	default:
		return line
	}
}

// lineBuffer is a rune canvas for positional column writes. Offsets
// count from the first content column, past the fixed margin.
type lineBuffer struct {
	runes []rune
}

func newLineBuffer() *lineBuffer {
	return &lineBuffer{}
}

func (b *lineBuffer) put(offset int, s string) {
	pos := offset - schedule.ContentColumn
	if pos < 0 {
		pos = 0
	}
	for _, r := range s {
		for len(b.runes) <= pos {
			b.runes = append(b.runes, ' ')
		}
		b.runes[pos] = r
		pos++
	}
}

func (b *lineBuffer) String() string {
	return string(b.runes)
}
