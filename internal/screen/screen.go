// Package screen defines the contract between the router and TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/levelcheck/internal/ui/layout"
)

// Screen is one page of the TUI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own footer
// hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status string on
// the right side of the header.
type StatusProvider interface {
	Status() string
}

// Quitter is implemented by screens that must clean up before the program
// exits.
type Quitter interface {
	OnQuit()
}
