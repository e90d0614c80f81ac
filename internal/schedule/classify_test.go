package schedule

import (
	"testing"

	"github.com/jcallahan/taskschedule/internal/task"
)

func TestClassify_Precedence(t *testing.T) {
	past := at(9, 0)
	future := at(16, 0)

	tests := []struct {
		name      string
		view      task.View
		next      *task.View
		alternate bool
		want      State
	}{
		{
			name: "active wins over completed",
			view: task.View{Description: "x", Start: past, Active: true, Completed: true},
			want: StateActive,
		},
		{
			name: "active wins over overdue",
			view: task.View{Description: "x", Start: past, Active: true},
			want: StateActive,
		},
		{
			name: "current when sandwiched around now",
			view: task.View{Description: "x", Start: at(14, 0)},
			next: &task.View{Description: "y", Start: at(14, 30)},
			want: StateCurrent,
		},
		{
			name: "current wins over overdue",
			view: task.View{Description: "x", Start: at(9, 0)},
			next: &task.View{Description: "y", Start: at(15, 0)},
			want: StateCurrent,
		},
		{
			name: "overdue without neighbor",
			view: task.View{Description: "x", Start: past},
			want: StateOverdue,
		},
		{
			name:      "completed base shade",
			view:      task.View{Description: "x", Start: past, Completed: true},
			alternate: true,
			want:      StateCompleted,
		},
		{
			name: "completed alternate shade",
			view: task.View{Description: "x", Start: past, Completed: true},
			want: StateCompletedAlt,
		},
		{
			name:      "normal base shade",
			view:      task.View{Description: "x", Start: future},
			alternate: true,
			want:      StateNormal,
		},
		{
			name: "normal alternate shade",
			view: task.View{Description: "x", Start: future},
			want: StateNormalAlt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.view, tt.next, testNow, tt.alternate)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	v := task.View{Description: "x", Start: at(14, 0)}
	next := &task.View{Description: "y", Start: at(14, 30)}

	first := Classify(v, next, testNow, true)
	for range 10 {
		if got := Classify(v, next, testNow, true); got != first {
			t.Fatalf("classification not deterministic: got %v then %v", first, got)
		}
	}
}

func TestClassify_ScenarioTwoTasksInHour14(t *testing.T) {
	// Two tasks at 14:00 and 14:30, neither active; the wall clock reads
	// 14:15, so the first is the one implicitly in progress.
	first := task.View{Description: "deep work", Start: at(14, 0)}
	second := task.View{Description: "review", Start: at(14, 30)}

	if got := Classify(first, &second, testNow, true); got != StateCurrent {
		t.Errorf("got %v, want StateCurrent", got)
	}
	if got := Classify(second, nil, testNow, true); got != StateNormal {
		t.Errorf("got %v for the second task, want StateNormal", got)
	}
}

func TestStateHighlighted(t *testing.T) {
	highlighted := []State{StateActive, StateCurrent, StateOverdue}
	striped := []State{StateNormal, StateNormalAlt, StateCompleted, StateCompletedAlt}

	for _, s := range highlighted {
		if !s.Highlighted() {
			t.Errorf("expected %v to be highlighted", s)
		}
	}
	for _, s := range striped {
		if s.Highlighted() {
			t.Errorf("expected %v to be striped, not highlighted", s)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateActive.String() != "active" {
		t.Errorf("got %q, want %q", StateActive.String(), "active")
	}
	if State(99).String() != "unknown" {
		t.Errorf("got %q, want %q", State(99).String(), "unknown")
	}
}
