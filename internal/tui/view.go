package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/jcallahan/taskschedule/internal/schedule"
	"github.com/jcallahan/taskschedule/internal/task"
)

const defaultWidth = 80

// Smallest terminal the grid can be drawn in.
const (
	minWidth  = 20
	minHeight = 3
)

// marginWidth is the fixed left margin: hour label, glyph, separator.
// Content columns start after it, at the id offset.
const marginWidth = 5

// View renders one frame of the dashboard.
func (m Model) View() string {
	if m.width > 0 && m.width < minWidth || m.height > 0 && m.height < minHeight {
		return "Terminal too small"
	}
	if m.index == nil {
		if m.lastErr != nil {
			return m.styles.Status.Render("error: " + m.lastErr.Error())
		}
		return "Loading..."
	}
	return m.renderFrame(m.index, m.now())
}

// renderFrame lays out the header and the 24 hour buckets. Empty hours
// before the first task are hidden unless ShowAllHours is set; empty
// hours after it are always drawn, so trailing gaps in the day stay
// visible.
func (m Model) renderFrame(idx *schedule.Index, now time.Time) string {
	offsets := idx.Offsets()
	lines := []string{m.renderHeader(offsets)}

	pastFirstTask := false
	alternate := true

	for hour := range schedule.HoursPerDay {
		bucket := idx.Bucket(hour)

		if len(bucket) == 0 {
			if pastFirstTask || m.opts.ShowAllHours {
				lines = append(lines, m.renderFiller(hour, alternate, now))
				alternate = !alternate
			}
			continue
		}

		for i := range bucket {
			var next *task.View
			if i+1 < len(bucket) {
				next = &bucket[i+1]
			}
			state := schedule.Classify(bucket[i], next, now, alternate)
			lines = append(lines, m.renderRow(hour, i == 0, bucket[i], state, offsets, now))
			pastFirstTask = true
			alternate = !alternate
		}
	}

	if m.lastErr != nil {
		lines = append(lines, m.styles.Status.Render("provider unavailable, showing empty schedule"))
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], width, "")
	}
	return strings.Join(lines, "\n")
}

// renderHeader draws the underlined column titles at the index offsets.
func (m Model) renderHeader(o schedule.Offsets) string {
	cells := []headerCell{
		{pos: o.ID, text: schedule.HeaderID},
		{pos: o.Time, text: schedule.HeaderTime},
	}
	if m.opts.HideProject {
		cells = append(cells, headerCell{pos: o.Project, text: schedule.HeaderDescription})
	} else {
		cells = append(cells,
			headerCell{pos: o.Project, text: schedule.HeaderProject},
			headerCell{pos: o.Description, text: schedule.HeaderDescription},
		)
	}

	var b strings.Builder
	col := 0
	for _, c := range cells {
		if c.pos > col {
			b.WriteString(strings.Repeat(" ", c.pos-col))
			col = c.pos
		}
		b.WriteString(m.styles.Header.Render(c.text))
		col += utf8.RuneCountInString(c.text)
	}
	return b.String()
}

type headerCell struct {
	pos  int
	text string
}

// renderRow draws one task: hour label (first row of the bucket only),
// neutral glyph, then the id/time/project/description cells at their
// computed offsets in the row's classified color.
func (m Model) renderRow(hour int, first bool, v task.View, state schedule.State, o schedule.Offsets, now time.Time) string {
	label := ""
	if first {
		label = strconv.Itoa(hour)
	}

	content := newRowBuffer(m.contentWidth())
	if v.ID != 0 {
		content.put(o.ID-marginWidth, strconv.Itoa(v.ID))
	}
	content.put(o.Time-marginWidth, v.TimeCell())
	if m.opts.HideProject {
		content.put(o.Project-marginWidth, v.Description)
	} else {
		content.put(o.Project-marginWidth, v.Project)
		content.put(o.Description-marginWidth, v.Description)
	}

	return m.margin(label, hour, now, string(v.Glyph)) + m.styles.Row(state).Render(content.String())
}

// renderFiller draws an hour with no tasks: label and a striped blank
// line across the terminal.
func (m Model) renderFiller(hour int, alternate bool, now time.Time) string {
	state := schedule.StateNormalAlt
	if alternate {
		state = schedule.StateNormal
	}
	blank := strings.Repeat(" ", m.contentWidth())
	return m.margin(strconv.Itoa(hour), hour, now, " ") + m.styles.Row(state).Render(blank)
}

// margin renders the fixed left columns: the hour label, highlighted when
// it matches the current wall-clock hour, and the glyph cell.
func (m Model) margin(label string, hour int, now time.Time, glyph string) string {
	hourStyle := m.styles.Hour
	if label != "" && hour == now.Hour() {
		hourStyle = m.styles.HourCurrent
	}
	return hourStyle.Render(fmt.Sprintf("%-3s", label)) + m.styles.Glyph.Render(glyph) + " "
}

// contentWidth is the row width right of the margin.
func (m Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	if width <= marginWidth {
		return 1
	}
	return width - marginWidth
}

// rowBuffer is a fixed-minimum rune canvas cells are written into at
// absolute positions; it grows when content runs past the terminal edge
// so the final truncation is the only clipping applied.
type rowBuffer []rune

func newRowBuffer(width int) rowBuffer {
	buf := make(rowBuffer, width)
	for i := range buf {
		buf[i] = ' '
	}
	return buf
}

func (b *rowBuffer) put(pos int, s string) {
	if pos < 0 {
		return
	}
	need := pos + utf8.RuneCountInString(s)
	for len(*b) < need {
		*b = append(*b, ' ')
	}
	i := pos
	for _, r := range s {
		(*b)[i] = r
		i++
	}
}

func (b rowBuffer) String() string {
	return string(b)
}
