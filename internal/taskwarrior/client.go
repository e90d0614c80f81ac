// Package taskwarrior queries a taskwarrior installation through its
// `task export` JSON interface and adapts the result to schedule views.
package taskwarrior

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/jcallahan/taskschedule/internal/dateutil"
	"github.com/jcallahan/taskschedule/internal/task"
)

// Client shells out to the taskwarrior binary. It is read-only: hooks are
// disabled and no mutating subcommand is ever issued.
type Client struct {
	bin  string
	args []string // extra rc overrides appended to every invocation
	now  func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithArgs appends extra taskwarrior overrides (e.g. "rc.context=none")
// to every export call.
func WithArgs(args ...string) Option {
	return func(c *Client) {
		c.args = append(c.args, args...)
	}
}

// WithNow overrides the clock used for glyph derivation.
func WithNow(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Client invoking the given binary ("task" by default).
func New(bin string, opts ...Option) *Client {
	if bin == "" {
		bin = "task"
	}
	c := &Client{bin: bin, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query exports all tasks and returns the ones scheduled inside the
// window. Completed tasks are only exported when requested, which keeps
// the working set small on large task databases.
func (c *Client) Query(ctx context.Context, window dateutil.Window, includeCompleted bool) ([]task.View, error) {
	status := "status:pending"
	if includeCompleted {
		status = "(status:pending or status:completed)"
	}

	args := append([]string{status, "export", "rc.hooks=0"}, c.args...)
	cmd := exec.CommandContext(ctx, c.bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("taskwarrior export failed: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("taskwarrior export failed: %w", err)
	}

	records, parseErr := ParseRecords(stdout)
	_, _ = io.Copy(io.Discard, stdout)
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior export failed: exit code %d, stderr: %s",
				exitErr.ExitCode(), stderr.Bytes())
		}
		return nil, fmt.Errorf("taskwarrior export failed: %w", err)
	}
	if parseErr != nil {
		return nil, fmt.Errorf("reading taskwarrior output: %w", parseErr)
	}

	return c.toViews(records, window)
}

// ParseRecords decodes an export payload from the reader as it arrives:
// either the JSON array `task export` emits, or bare objects one after
// another as produced by taskwarrior hooks.
func ParseRecords(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	first, err := firstNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading task json: %w", err)
	}

	decoder := json.NewDecoder(br)

	if first == '[' {
		var records []Record
		if err := decoder.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding task json: %w", err)
		}
		return records, nil
	}

	var records []Record
	for {
		var rec Record
		if err := decoder.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decoding task json: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// firstNonSpace peeks past leading whitespace without consuming the
// first significant byte.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			if err := br.UnreadByte(); err != nil {
				return 0, err
			}
			return b, nil
		}
	}
}

// toViews filters records to the scheduled window and normalizes them.
// The scheduled instant is the row's start; a later due instant, when
// present, becomes the displayed end of the range.
func (c *Client) toViews(records []Record, window dateutil.Window) ([]task.View, error) {
	now := c.now()
	var views []task.View

	for _, rec := range records {
		start, end := scheduleOf(rec)
		if start.IsZero() || !window.Contains(start) {
			continue
		}
		if rec.Status == StatusDeleted || rec.Status == StatusWaiting {
			continue
		}

		v, err := task.New(
			rec.ID,
			rec.Description,
			rec.Project,
			start,
			end,
			rec.Status == StatusCompleted,
			rec.Start != nil && !rec.Start.IsZero(),
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", rec.UUID, err)
		}
		views = append(views, v)
	}

	return views, nil
}

// scheduleOf resolves the scheduled instant and optional end for a record.
// Tasks with only a due instant are shown at their due time.
func scheduleOf(rec Record) (time.Time, *time.Time) {
	switch {
	case rec.Scheduled != nil && !rec.Scheduled.IsZero():
		start := rec.Scheduled.Local()
		if rec.Due != nil && !rec.Due.IsZero() {
			if due := rec.Due.Local(); due.After(start) {
				return start, &due
			}
		}
		return start, nil
	case rec.Due != nil && !rec.Due.IsZero():
		return rec.Due.Local(), nil
	default:
		return time.Time{}, nil
	}
}
