package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/levelcheck/internal/ui/theme"
)

// GradePicker chooses an integer grade within [Min, Max].
type GradePicker struct {
	Min, Max int
	Value    int
	Focused  bool
}

// NewGradePicker creates a picker starting at value, clamped to the range.
func NewGradePicker(lo, hi, value int) GradePicker {
	return GradePicker{Min: lo, Max: hi, Value: min(max(value, lo), hi)}
}

// Update changes the grade with left/right, h/l or a digit key.
func (g GradePicker) Update(msg tea.Msg) (GradePicker, tea.Cmd) {
	if !g.Focused {
		return g, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, nil
	}
	switch key := kmsg.String(); key {
	case "left", "h", "-":
		g.Value = max(g.Value-1, g.Min)
	case "right", "l", "+":
		g.Value = min(g.Value+1, g.Max)
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			if v := int(key[0] - '0'); v >= g.Min && v <= g.Max {
				g.Value = v
			}
		}
	}
	return g, nil
}

// View renders the grades in a row with the current one highlighted.
func (g GradePicker) View() string {
	parts := make([]string, 0, g.Max-g.Min+1)
	for v := g.Min; v <= g.Max; v++ {
		label := fmt.Sprintf(" %d ", v)
		switch {
		case v == g.Value && g.Focused:
			parts = append(parts, theme.Selected.Reverse(true).Render(label))
		case v == g.Value:
			parts = append(parts, theme.Selected.Render(label))
		default:
			parts = append(parts, theme.Dim.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
