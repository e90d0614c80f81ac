package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jcallahan/taskschedule/internal/dateutil"
)

// Instants are stored in UTC but bucketed by the viewer's wall clock, so
// a round trip through the store must land in the original local hour.
func TestLocalHourSurvivesStorage(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)
	for _, hour := range []int{0, 9, 23} {
		start := day.Add(time.Duration(hour) * time.Hour).Add(30 * time.Minute)
		createTask(t, store, "edge of day", "", start, nil)
	}

	views, err := store.Query(ctx, dateutil.DayWindow(day), true)
	if err != nil {
		t.Fatalf("failed to query tasks: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("got %d tasks, want 3", len(views))
	}

	wantHours := map[int]bool{0: true, 9: true, 23: true}
	for _, v := range views {
		if !wantHours[v.Hour()] {
			t.Errorf("task landed in hour %d, want one of 0, 9, 23", v.Hour())
		}
		delete(wantHours, v.Hour())
	}
	if len(wantHours) != 0 {
		t.Errorf("hours not seen: %v", wantHours)
	}
}
