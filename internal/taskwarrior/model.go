package taskwarrior

import (
	"fmt"
	"strings"
	"time"
)

// Task statuses as exported by taskwarrior.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusWaiting   = "waiting"
	StatusDeleted   = "deleted"
)

const exportTimeLayout = "20060102T150405Z"

// ExportTime wraps time.Time to decode taskwarrior's compact UTC layout.
type ExportTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler for the export layout.
func (t *ExportTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(exportTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parsing taskwarrior time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler for the export layout.
func (t ExportTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Time.Format(exportTimeLayout) + `"`), nil
}

// Record is one task as emitted by `task export`. Only the fields the
// schedule needs are decoded; ID is the working-set number, which
// taskwarrior reports as 0 for completed and deleted tasks.
type Record struct {
	ID          int         `json:"id"`
	UUID        string      `json:"uuid"`
	Description string      `json:"description"`
	Project     string      `json:"project,omitempty"`
	Status      string      `json:"status"`
	Scheduled   *ExportTime `json:"scheduled,omitempty"`
	Due         *ExportTime `json:"due,omitempty"`
	Start       *ExportTime `json:"start,omitempty"`
}
