package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/jcallahan/taskschedule/internal/config"
	"github.com/jcallahan/taskschedule/internal/dateutil"
	"github.com/jcallahan/taskschedule/internal/schedule"
	"github.com/jcallahan/taskschedule/internal/task"
)

var testNow = time.Date(2025, 3, 12, 14, 15, 0, 0, time.Local)

type fakeProvider struct {
	views []task.View
	err   error
}

func (p *fakeProvider) Query(_ context.Context, _ dateutil.Window, _ bool) ([]task.View, error) {
	return p.views, p.err
}

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 12, hour, min, 0, 0, time.Local)
}

func view(t *testing.T, id int, desc, project string, start time.Time) task.View {
	t.Helper()
	v, err := task.New(id, desc, project, start, nil, false, false, testNow)
	if err != nil {
		t.Fatalf("building view: %v", err)
	}
	return v
}

func loadIndex(t *testing.T, views ...task.View) *schedule.Index {
	t.Helper()
	idx, err := schedule.Load(context.Background(), &fakeProvider{views: views}, dateutil.DayWindow(testNow), true)
	if err != nil {
		t.Fatalf("loading index: %v", err)
	}
	return idx
}

func plainRender(t *testing.T, idx *schedule.Index, allHours, hideProject bool) []string {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var b strings.Builder
	renderSchedule(&b, idx, testNow, allHours, hideProject, 120)
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

func TestRenderSchedule(t *testing.T) {
	idx := loadIndex(t,
		view(t, 5, "Write report", "docs", at(9, 0)),
		view(t, 7, "Review queue", "ops", at(16, 30)),
	)
	lines := plainRender(t, idx, false, false)

	if !strings.Contains(lines[0], schedule.HeaderDescription) {
		t.Errorf("expected headers in first line, got %q", lines[0])
	}

	var taskLines []string
	for _, l := range lines[1:] {
		if strings.Contains(l, "Write report") || strings.Contains(l, "Review queue") {
			taskLines = append(taskLines, l)
		}
	}
	if len(taskLines) != 2 {
		t.Fatalf("got %d task lines, want 2:\n%s", len(taskLines), strings.Join(lines, "\n"))
	}

	first := taskLines[0]
	if !strings.HasPrefix(first, "9") {
		t.Errorf("expected the hour label at the left edge, got %q", first)
	}
	for _, want := range []string{"5", "09:00", "docs", "Write report"} {
		if !strings.Contains(first, want) {
			t.Errorf("expected %q in %q", want, first)
		}
	}
}

func TestRenderSchedule_EmptyHourGating(t *testing.T) {
	idx := loadIndex(t, view(t, 1, "standup", "", at(10, 0)))

	t.Run("hidden before the first task", func(t *testing.T) {
		lines := plainRender(t, idx, false, false)
		// header + task row + hours 11..23
		if len(lines) != 15 {
			t.Errorf("got %d lines, want 15:\n%s", len(lines), strings.Join(lines, "\n"))
		}
		if strings.TrimSpace(lines[1]) == "9" {
			t.Error("hour 9 should be hidden before the first task")
		}
	})

	t.Run("all hours flag shows the full day", func(t *testing.T) {
		lines := plainRender(t, idx, true, false)
		if len(lines) != 25 {
			t.Errorf("got %d lines, want 25:\n%s", len(lines), strings.Join(lines, "\n"))
		}
	})

	t.Run("empty schedule is just the header", func(t *testing.T) {
		lines := plainRender(t, loadIndex(t), false, false)
		if len(lines) != 1 {
			t.Errorf("got %d lines, want header only:\n%s", len(lines), strings.Join(lines, "\n"))
		}
	})
}

func TestRenderSchedule_HideProject(t *testing.T) {
	idx := loadIndex(t, view(t, 5, "Write report", "docs", at(9, 0)))
	lines := plainRender(t, idx, false, true)

	for _, l := range lines {
		if strings.Contains(l, "docs") || strings.Contains(l, schedule.HeaderProject) {
			t.Errorf("project column should be hidden, got %q", l)
		}
	}
}

func TestRenderSchedule_WidthTruncation(t *testing.T) {
	idx := loadIndex(t, view(t, 5, strings.Repeat("long description ", 10), "docs", at(9, 0)))

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var b strings.Builder
	renderSchedule(&b, idx, testNow, false, false, 30)
	for _, l := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		if got := len([]rune(l)); got > 30 {
			t.Errorf("line exceeds width: %d runes in %q", got, l)
		}
	}
}

func TestPrintOnce_ProviderFailure(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	app := NewApp(config.Default())
	app.scheduled = "today"
	app.provider = &fakeProvider{err: errors.New("store down")}

	var b strings.Builder
	if err := app.printOnce(&b, app.provider, testNow); err != nil {
		t.Fatalf("provider failures should degrade, got %v", err)
	}
	if !strings.Contains(b.String(), "provider unavailable") {
		t.Errorf("expected a status line, got %q", b.String())
	}
}

func TestPrintOnce_InvalidWindow(t *testing.T) {
	app := NewApp(config.Default())
	app.scheduled = "not-a-window"

	var b strings.Builder
	err := app.printOnce(&b, &fakeProvider{}, testNow)
	if !errors.Is(err, dateutil.ErrInvalidWindow) {
		t.Errorf("got %v, want ErrInvalidWindow", err)
	}
}
