package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcallahan/taskschedule/internal/config"
	"github.com/jcallahan/taskschedule/internal/db"
	"github.com/jcallahan/taskschedule/internal/task"
	"github.com/jcallahan/taskschedule/internal/taskwarrior"
	"github.com/jcallahan/taskschedule/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command

	provider task.Provider
	closer   io.Closer

	refresh       int
	scheduled     string
	showAllHours  bool
	hideCompleted bool
	hideProject   bool
}

// NewApp creates a new CLI application with the given config. Flag
// defaults come from the config so a flag always wins when set.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "taskschedule",
		Short: "A live schedule report for your tasks",
		Long: `Taskschedule shows the day's scheduled tasks on an hour-by-hour
timeline that refreshes itself, so upcoming, running and overdue work
is visible at a glance.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			provider, err := a.openProvider()
			if err != nil {
				return err
			}
			return tui.Run(provider, a.options())
		},
	}

	a.root.PersistentFlags().IntVarP(&a.refresh, "refresh", "r", cfg.UI.Refresh,
		"seconds between schedule refreshes")
	a.root.PersistentFlags().StringVarP(&a.scheduled, "scheduled", "s", cfg.UI.Scheduled,
		"day to show: today, tomorrow, a weekday name or YYYY-MM-DD")
	a.root.PersistentFlags().BoolVarP(&a.showAllHours, "all", "a", cfg.UI.ShowAllHours,
		"show all hours, even empty ones before the first task")
	a.root.PersistentFlags().BoolVarP(&a.hideCompleted, "completed", "c", cfg.UI.HideCompleted,
		"hide completed tasks")
	a.root.PersistentFlags().BoolVarP(&a.hideProject, "project", "p", cfg.UI.HideProject,
		"hide the project column")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.printCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.startCmd())

	return a
}

// options maps the resolved flags onto the dashboard settings.
func (a *App) options() tui.Options {
	return tui.Options{
		Refresh:       time.Duration(a.refresh) * time.Second,
		Scheduled:     a.scheduled,
		ShowAllHours:  a.showAllHours,
		HideCompleted: a.hideCompleted,
		HideProject:   a.hideProject,
	}
}

// openProvider builds the task provider named by the config backend.
func (a *App) openProvider() (task.Provider, error) {
	if a.provider != nil {
		return a.provider, nil
	}

	switch a.config.Provider.Backend {
	case config.BackendTaskwarrior:
		a.provider = taskwarrior.New(a.config.Taskwarrior.Command,
			taskwarrior.WithArgs(a.config.Taskwarrior.Args...))
	case config.BackendSQLite:
		store, err := db.New(a.config.Storage.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening task store: %w", err)
		}
		a.provider = store
		a.closer = store
	default:
		return nil, fmt.Errorf("unknown provider backend %q", a.config.Provider.Backend)
	}

	return a.provider, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("taskschedule %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the provider's resources, if any were opened.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
