package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard keybindings. The dashboard is read-only, so
// quitting is the only interaction.
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
