package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and advances the refresh loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case scheduleMsg:
		m.lastErr = msg.Err
		cmds := []tea.Cmd{m.tickCmd()}
		if msg.Index != nil {
			// Clear only when the visible tasks changed since the last
			// tick; an unchanged frame repaints in place without flicker.
			snapshot := msg.Index.Flatten()
			if !snapshot.Equal(m.snapshot) {
				cmds = append(cmds, tea.ClearScreen)
			}
			m.index = msg.Index
			m.snapshot = snapshot
		}
		return m, tea.Batch(cmds...)

	case tickMsg:
		return m, m.loadCmd()
	}

	return m, nil
}
