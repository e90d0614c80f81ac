// Package schedule builds the hour-bucketed schedule index and classifies
// tasks into visual states for rendering.
package schedule

import (
	"context"
	"slices"
	"unicode/utf8"

	"github.com/jcallahan/taskschedule/internal/dateutil"
	"github.com/jcallahan/taskschedule/internal/task"
)

// HoursPerDay is the number of hour buckets in a schedule.
const HoursPerDay = 24

// Fixed columns at the left edge of every row. The hour label sits at the
// margin, the glyph marker two cells before the first content column.
const (
	HourColumn    = 0
	GlyphColumn   = 3
	ContentColumn = 5
)

// Column headers. Content columns are never narrower than their header.
const (
	HeaderID          = "ID"
	HeaderTime        = "Time"
	HeaderProject     = "Project"
	HeaderDescription = "Description"
)

// Offsets holds the absolute start position of each content column,
// computed from the widest rendered value across all loaded tasks so
// that headers and every row align regardless of which hours hold data.
type Offsets struct {
	ID          int
	Time        int
	Project     int
	Description int
}

// Index is the loaded, bucketed schedule for one refresh tick. It is
// rebuilt from scratch every tick and never mutated in place.
type Index struct {
	buckets [HoursPerDay][]task.View
	offsets Offsets
}

// Load queries the provider for tasks in the window, buckets them into
// hour slots sorted by start instant, and computes column offsets.
//
// Provider failures degrade to an empty index: the dashboard shows an
// empty grid for this tick and the next tick is the retry. The error is
// returned alongside so callers can surface it, but the index is always
// usable.
func Load(ctx context.Context, provider task.Provider, window dateutil.Window, includeCompleted bool) (*Index, error) {
	idx := &Index{}
	idx.offsets = computeOffsets(nil)

	views, err := provider.Query(ctx, window, includeCompleted)
	if err != nil {
		return idx, err
	}

	var loaded []task.View
	for _, v := range views {
		if v.Completed && !includeCompleted {
			continue
		}
		loaded = append(loaded, v)
		idx.buckets[v.Hour()] = append(idx.buckets[v.Hour()], v)
	}

	for h := range idx.buckets {
		slices.SortStableFunc(idx.buckets[h], func(a, b task.View) int {
			return a.Start.Compare(b.Start)
		})
	}

	idx.offsets = computeOffsets(loaded)
	return idx, nil
}

// Bucket returns the tasks scheduled in the given hour, ordered by start.
func (i *Index) Bucket(hour int) []task.View {
	if hour < 0 || hour >= HoursPerDay {
		return nil
	}
	return i.buckets[hour]
}

// Offsets returns the column start positions for this index.
func (i *Index) Offsets() Offsets {
	return i.offsets
}

// Empty reports whether no tasks were loaded.
func (i *Index) Empty() bool {
	for h := range i.buckets {
		if len(i.buckets[h]) > 0 {
			return false
		}
	}
	return true
}

// computeOffsets derives column positions from content widths. Each offset
// is the previous offset plus the widest value in the previous column
// (at least the header width) plus one separator cell.
func computeOffsets(views []task.View) Offsets {
	idW := utf8.RuneCountInString(HeaderID)
	timeW := utf8.RuneCountInString(HeaderTime)
	projW := utf8.RuneCountInString(HeaderProject)

	for _, v := range views {
		if v.ID != 0 {
			idW = max(idW, digits(v.ID))
		}
		timeW = max(timeW, utf8.RuneCountInString(v.TimeCell()))
		projW = max(projW, utf8.RuneCountInString(v.Project))
	}

	o := Offsets{ID: ContentColumn}
	o.Time = o.ID + idW + 1
	o.Project = o.Time + timeW + 1
	o.Description = o.Project + projW + 1
	return o
}

func digits(n int) int {
	if n < 0 {
		n = -n
	}
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// FlatTask is one task reduced to primitive fields for inter-tick
// comparison. It is used only for equality, never for rendering.
type FlatTask struct {
	Hour        int
	ID          int
	Description string
	Project     string
	Start       int64
	End         int64
	Completed   bool
	Active      bool
}

// Snapshot is the flattened form of an index, in bucket/sort order.
type Snapshot []FlatTask

// Flatten produces the snapshot used to decide whether the screen must be
// cleared between ticks.
func (i *Index) Flatten() Snapshot {
	var snap Snapshot
	for h := range i.buckets {
		for _, v := range i.buckets[h] {
			ft := FlatTask{
				Hour:        h,
				ID:          v.ID,
				Description: v.Description,
				Project:     v.Project,
				Start:       v.Start.Unix(),
				Completed:   v.Completed,
				Active:      v.Active,
			}
			if v.End != nil {
				ft.End = v.End.Unix()
			}
			snap = append(snap, ft)
		}
	}
	return snap
}

// Equal reports whether two snapshots describe the same visible tasks.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s, other)
}
