// Package components holds reusable TUI widgets.
package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/levelcheck/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a single-answer selector. It never reveals the correct
// answer; the caller scores the chosen option.
type MultiChoice struct {
	Options  []string
	Selected int

	// Chosen is the submitted option index, or -1.
	Chosen int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1}
}

// Submitted reports whether an option was chosen.
func (m MultiChoice) Submitted() bool {
	return m.Chosen >= 0
}

// Value returns the chosen option text, or "" before submission.
func (m MultiChoice) Value() string {
	if !m.Submitted() {
		return ""
	}
	return m.Options[m.Chosen]
}

// Update moves the cursor with arrows or j/k, and submits with Enter, a
// digit or an option letter.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.Chosen = m.Selected
		return m, nil
	}

	if i, ok := shortcut(key, len(m.Options)); ok {
		m.Selected = i
		m.Chosen = i
	}
	return m, nil
}

// shortcut maps "1".."n" and "a".."f" to an option index.
func shortcut(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var i int
	switch {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'f':
		i = int(c - 'a')
	default:
		return 0, false
	}
	return i, i < n
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		style := theme.Unselected
		if i == m.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s)  %s", prefix, label, opt)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
