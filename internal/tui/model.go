package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcallahan/taskschedule/internal/dateutil"
	"github.com/jcallahan/taskschedule/internal/schedule"
	"github.com/jcallahan/taskschedule/internal/task"
)

// Options are the dashboard settings, mirroring the CLI flags.
type Options struct {
	Refresh       time.Duration // period between provider reloads
	Scheduled     string        // window selector, re-parsed every tick
	ShowAllHours  bool          // draw empty hours before the first task too
	HideCompleted bool          // drop completed tasks from the grid
	HideProject   bool          // drop the project column
}

// Model is the dashboard state threaded through the refresh loop: the
// current index, the previous tick's flattened snapshot for diffing, and
// the last provider failure for the footer.
type Model struct {
	provider task.Provider
	opts     Options
	styles   *Styles
	keys     KeyMap
	now      func() time.Time

	width  int
	height int

	index    *schedule.Index
	snapshot schedule.Snapshot
	lastErr  error
}

// New creates a dashboard model.
func New(provider task.Provider, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second
	}
	return Model{
		provider: provider,
		opts:     opts,
		styles:   DefaultStyles(),
		keys:     DefaultKeyMap(),
		now:      time.Now,
	}
}

// Init triggers the first schedule load.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// tickMsg requests a reload after the refresh period has elapsed.
type tickMsg struct{}

// scheduleMsg carries one tick's freshly loaded index. Index is non-nil
// whenever the window selector parsed; Err records a provider failure
// that was degraded to an empty grid.
type scheduleMsg struct {
	Index *schedule.Index
	Err   error
}

// loadCmd queries the provider off the update loop. The window selector
// is re-parsed against the current clock so "today" rolls over midnight
// on long-running sessions.
func (m Model) loadCmd() tea.Cmd {
	provider, opts, now := m.provider, m.opts, m.now
	return func() tea.Msg {
		window, err := dateutil.ParseWindow(opts.Scheduled, now())
		if err != nil {
			return scheduleMsg{Err: err}
		}
		idx, err := schedule.Load(context.Background(), provider, window, !opts.HideCompleted)
		return scheduleMsg{Index: idx, Err: err}
	}
}

// tickCmd sleeps for the refresh period, then requests the next load.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Run starts the dashboard and blocks until it is quit or interrupted.
// The alternate screen is restored on every exit path, signals included.
// An unparseable window selector is rejected before the terminal is
// taken over, so the mistake surfaces as a plain error.
func Run(provider task.Provider, opts Options) error {
	if _, err := dateutil.ParseWindow(opts.Scheduled, time.Now()); err != nil {
		return fmt.Errorf("invalid scheduled window %q: %w", opts.Scheduled, err)
	}

	p := tea.NewProgram(New(provider, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
