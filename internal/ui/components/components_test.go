package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"2", "4", "6", "8"})
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Submitted() {
		t.Fatal("submitted before Enter")
	}
	m, _ = m.Update(specialKey(tea.KeyEnter))
	if m.Value() != "4" {
		t.Errorf("Value = %q, want 4", m.Value())
	}

	// Further keys are ignored once submitted.
	m, _ = m.Update(runeKey('4'))
	if m.Value() != "4" {
		t.Errorf("Value changed after submit: %q", m.Value())
	}
}

func TestMultiChoice_Shortcuts(t *testing.T) {
	tests := []struct {
		key  rune
		want string
	}{
		{'1', "red"},
		{'3', "blue"},
		{'b', "green"},
		{'d', "gold"},
	}
	for _, tt := range tests {
		m := NewMultiChoice([]string{"red", "green", "blue", "gold"})
		m, _ = m.Update(runeKey(tt.key))
		if m.Value() != tt.want {
			t.Errorf("key %q: Value = %q, want %q", tt.key, m.Value(), tt.want)
		}
	}

	m := NewMultiChoice([]string{"red", "green", "blue", "gold"})
	for _, r := range []rune{'5', 'e', 'z'} {
		m, _ = m.Update(runeKey(r))
	}
	if m.Submitted() {
		t.Errorf("out-of-range shortcut submitted %q", m.Value())
	}
}

func TestMultiChoice_ViewDoesNotRevealAnswer(t *testing.T) {
	m := NewMultiChoice([]string{"cat", "dog", "owl", "fox"})
	view := m.View()
	for _, want := range []string{"A)  cat", "D)  fox"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Count(view, "▸") != 1 {
		t.Errorf("expected exactly one cursor:\n%s", view)
	}
}

func TestGradePicker(t *testing.T) {
	g := NewGradePicker(2, 8, 12)
	if g.Value != 8 {
		t.Fatalf("initial value = %d, want clamp to 8", g.Value)
	}

	g, _ = g.Update(specialKey(tea.KeyLeft))
	if g.Value != 8 {
		t.Errorf("unfocused picker changed to %d", g.Value)
	}

	g.Focused = true
	g, _ = g.Update(specialKey(tea.KeyRight))
	if g.Value != 8 {
		t.Errorf("right at max = %d", g.Value)
	}
	g, _ = g.Update(specialKey(tea.KeyLeft))
	g, _ = g.Update(specialKey(tea.KeyLeft))
	if g.Value != 6 {
		t.Errorf("after two lefts = %d, want 6", g.Value)
	}
	g, _ = g.Update(runeKey('3'))
	if g.Value != 3 {
		t.Errorf("digit 3 = %d", g.Value)
	}
	g, _ = g.Update(runeKey('9'))
	if g.Value != 3 {
		t.Errorf("out-of-range digit changed value to %d", g.Value)
	}
}

func TestMenu(t *testing.T) {
	var ran string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			ran = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "New quiz", Action: action("new")},
		{Label: "Quit", Action: action("quit")},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want first enabled", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("moved onto disabled item: %d", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyEnter))
	if ran != "quit" {
		t.Errorf("ran = %q, want quit", ran)
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar("Math", 3, 10, 40)
	if got := p.Fraction(); got != 0.3 {
		t.Errorf("Fraction = %v", got)
	}
	if !strings.Contains(p.View(), "3/10") {
		t.Errorf("view missing counter: %q", p.View())
	}
	if NewProgressBar("", 12, 10, 20).Fraction() != 1 {
		t.Error("fraction not clamped")
	}
	if NewProgressBar("", 1, 0, 20).Fraction() != 0 {
		t.Error("zero total should give zero")
	}
}
