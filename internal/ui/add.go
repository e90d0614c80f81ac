package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcallahan/taskschedule/internal/config"
	"github.com/jcallahan/taskschedule/internal/db"
)

// openStore opens the sqlite backend for commands that modify tasks.
// The taskwarrior backend is managed with taskwarrior's own commands.
func (a *App) openStore() (*db.SQLite, error) {
	if a.config.Provider.Backend != config.BackendSQLite {
		return nil, fmt.Errorf("the %q backend is read-only here, use its own tooling to modify tasks",
			a.config.Provider.Backend)
	}

	provider, err := a.openProvider()
	if err != nil {
		return nil, err
	}
	return provider.(*db.SQLite), nil
}

func (a *App) addCmd() *cobra.Command {
	var (
		date    string
		start   string
		end     string
		project string
	)

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a task to the local store",
		Long: `Add a scheduled task to the local sqlite store.

Example:
  taskschedule add "Write documentation" --start=09:00 --end=11:00 --project=docs`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			startAt, endAt, err := parseSlot(date, start, end, time.Now())
			if err != nil {
				return err
			}

			id, err := store.CreateTask(context.Background(), args[0], project, startAt, endAt)
			if err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Printf("Created task #%d: %s %s %s\n",
				id, args[0], startAt.Format("2006-01-02"), startAt.Format("15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&project, "project", "", "Project name")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task in the local store as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			if err := store.CompleteTask(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Completed task #%d\n", id)
			return nil
		},
	}
}

func (a *App) startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [id]",
		Short: "Mark a task in the local store as being worked on",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			if err := store.StartTask(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Started task #%d\n", id)
			return nil
		},
	}
}

// parseSlot resolves the date and time flags into concrete instants.
func parseSlot(date, start, end string, now time.Time) (time.Time, *time.Time, error) {
	day := now
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
		}
		day = parsed
	}

	startAt, err := atTime(day, start)
	if err != nil {
		return time.Time{}, nil, err
	}

	var endAt *time.Time
	if end != "" {
		e, err := atTime(day, end)
		if err != nil {
			return time.Time{}, nil, err
		}
		if !e.After(startAt) {
			return time.Time{}, nil, fmt.Errorf("end %s is not after start %s", end, start)
		}
		endAt = &e
	}

	return startAt, endAt, nil
}

// atTime combines a day with an HH:MM clock time in local time.
func atTime(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want HH:MM", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.Local), nil
}
