package testutil

import tea "github.com/charmbracelet/bubbletea"

// Key builds the KeyMsg for a key name as bubbletea reports it: "enter",
// "esc", "tab" and friends, otherwise the literal runes.
func Key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// Type feeds text to update one rune at a time.
func Type[M any](m M, update func(M, tea.Msg) (M, tea.Cmd), text string) M {
	for _, r := range text {
		m, _ = update(m, Key(string(r)))
	}
	return m
}

// Drain runs cmd and every command batched inside it, returning the
// resulting messages in order. Commands that block (ticks, waits) must not
// be passed in.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
