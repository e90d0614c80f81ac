// Package tui renders the live schedule dashboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jcallahan/taskschedule/internal/schedule"
)

// Color palette. Indexed colors keep the dashboard legible on dark
// terminals without a themed background.
var (
	colorText      = lipgloss.Color("252")
	colorMuted     = lipgloss.Color("240")
	colorHourDim   = lipgloss.Color("8")
	colorGreen     = lipgloss.Color("2")
	colorYellow    = lipgloss.Color("3")
	colorBlack     = lipgloss.Color("0")
	colorShade     = lipgloss.Color("234")
	colorDanger    = lipgloss.Color("1")
	colorHeaderTxt = lipgloss.Color("15")
)

// Styles holds all lipgloss styles for the dashboard.
type Styles struct {
	// Header is the underlined column header row.
	Header lipgloss.Style

	// Hour labels at the left margin; the current wall-clock hour is
	// highlighted.
	Hour        lipgloss.Style
	HourCurrent lipgloss.Style

	// Glyph is the neutral marker: its foreground matches the default
	// background so the mark reads as texture, not text.
	Glyph lipgloss.Style

	// Status is the footer line shown when the provider is failing.
	Status lipgloss.Style

	row map[schedule.State]lipgloss.Style
}

// DefaultStyles builds the dashboard style set.
func DefaultStyles() *Styles {
	return &Styles{
		Header:      lipgloss.NewStyle().Foreground(colorHeaderTxt).Underline(true),
		Hour:        lipgloss.NewStyle().Foreground(colorHourDim),
		HourCurrent: lipgloss.NewStyle().Foreground(colorGreen),
		Glyph:       lipgloss.NewStyle().Foreground(colorBlack),
		Status:      lipgloss.NewStyle().Foreground(colorDanger),
		row: map[schedule.State]lipgloss.Style{
			schedule.StateNormal:       lipgloss.NewStyle().Foreground(colorText),
			schedule.StateNormalAlt:    lipgloss.NewStyle().Foreground(colorText).Background(colorShade),
			schedule.StateCompleted:    lipgloss.NewStyle().Foreground(colorMuted),
			schedule.StateCompletedAlt: lipgloss.NewStyle().Foreground(colorMuted).Background(colorShade),
			schedule.StateOverdue:      lipgloss.NewStyle().Foreground(colorYellow),
			schedule.StateCurrent:      lipgloss.NewStyle().Foreground(colorGreen),
			schedule.StateActive:       lipgloss.NewStyle().Foreground(colorBlack).Background(colorGreen),
		},
	}
}

// Row returns the style for a classified row state.
func (s *Styles) Row(state schedule.State) lipgloss.Style {
	if style, ok := s.row[state]; ok {
		return style
	}
	return s.row[schedule.StateNormal]
}
