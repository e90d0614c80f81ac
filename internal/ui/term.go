package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Running task: black on green, it should dominate the line
	colorActive = color.New(color.FgBlack, color.BgGreen)

	// The task that covers the current time: green
	colorCurrent = color.New(color.FgGreen)

	// Tasks whose start has passed without completion: yellow
	colorOverdue = color.New(color.FgYellow)

	// Completed tasks: dim, they only matter as context
	colorDone = color.New(color.FgWhite, color.Faint)

	// Headers: bold and underlined
	colorHeader = color.New(color.Bold, color.Underline)

	// Muted: for hour labels and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatActive formats a running task's row.
func formatActive(s string) string {
	return colorActive.Sprint(s)
}

// formatCurrent formats the row covering the current time.
func formatCurrent(s string) string {
	return colorCurrent.Sprint(s)
}

// formatOverdue formats an overdue task's row.
func formatOverdue(s string) string {
	return colorOverdue.Sprint(s)
}

// formatDone formats a completed task's row.
func formatDone(s string) string {
	return colorDone.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
