// Package db provides a SQLite task provider for a local task database,
// for running the schedule without taskwarrior installed.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jcallahan/taskschedule/internal/dateutil"
	"github.com/jcallahan/taskschedule/internal/task"
)

// SQLite implements task.Provider over a local SQLite database.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the database at path and ensures the schema exists.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Query returns the tasks scheduled inside the window, ordered by their
// scheduled instant.
func (s *SQLite) Query(ctx context.Context, window dateutil.Window, includeCompleted bool) ([]task.View, error) {
	query := `
		SELECT id, description, project, scheduled_at, end_at, completed, active
		FROM tasks
		WHERE scheduled_at >= ? AND scheduled_at < ?
	`
	args := []any{
		window.Start.UTC().Format(time.RFC3339),
		window.End.UTC().Format(time.RFC3339),
	}
	if !includeCompleted {
		query += " AND completed = 0"
	}
	query += " ORDER BY scheduled_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	now := s.now()
	var views []task.View

	for rows.Next() {
		var (
			id          int
			description string
			project     string
			scheduledAt string
			endAt       sql.NullString
			completed   bool
			active      bool
		)
		if err := rows.Scan(&id, &description, &project, &scheduledAt, &endAt, &completed, &active); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		start, err := parseInstant(scheduledAt)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", id, err)
		}

		var end *time.Time
		if endAt.Valid && endAt.String != "" {
			e, err := parseInstant(endAt.String)
			if err != nil {
				return nil, fmt.Errorf("task %d: %w", id, err)
			}
			end = &e
		}

		v, err := task.New(id, description, project, start, end, completed, active, now)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", id, err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return views, nil
}

// CreateTask inserts a new scheduled task and returns its id.
func (s *SQLite) CreateTask(ctx context.Context, description, project string, start time.Time, end *time.Time) (int, error) {
	var endAt sql.NullString
	if end != nil {
		endAt = sql.NullString{String: end.UTC().Format(time.RFC3339), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (description, project, scheduled_at, end_at, completed, active)
		VALUES (?, ?, ?, ?, 0, 0)
	`, description, project, start.UTC().Format(time.RFC3339), endAt)
	if err != nil {
		return 0, fmt.Errorf("inserting task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading task id: %w", err)
	}
	return int(id), nil
}

// CompleteTask marks a task as completed and no longer active.
func (s *SQLite) CompleteTask(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET completed = 1, active = 0 WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %d not found", id)
	}
	return nil
}

// StartTask marks a task as actively being worked on.
func (s *SQLite) StartTask(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET active = 1 WHERE id = ? AND completed = 0
	`, id)
	if err != nil {
		return fmt.Errorf("starting task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %d not found or already completed", id)
	}
	return nil
}

// parseInstant reads an RFC3339 instant and converts it to local time so
// hour bucketing matches the viewer's wall clock.
func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing instant %q: %w", s, err)
	}
	return t.Local(), nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
