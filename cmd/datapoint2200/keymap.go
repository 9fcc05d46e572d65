// keymap.go - translates bubbletea key messages into Datapoint 2200
// keyboard key names (the strings Machine.Keydown/Keyup accept).
//
// Grounded on hejops-gone/cpu/debugger.go's Update, which switches on
// msg.String() from a tea.KeyMsg; extended here from a single debug key to
// the full printable-ASCII-plus-chassis-buttons set the keyboard
// peripheral understands (keyboard.go).

package main

import tea "github.com/charmbracelet/bubbletea"

// keyName maps a tea.KeyMsg to the key name Machine.Keydown/Keyup expect,
// and reports ok=false for keys the Datapoint keyboard has no mapping for.
func keyName(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return "Enter", true
	case tea.KeyBackspace:
		return "Backspace", true
	case tea.KeyDelete:
		return "Delete", true
	case tea.KeyEsc:
		return "Cancel", true
	case tea.KeyTab:
		return "Tab", true
	case tea.KeyRunes, tea.KeySpace:
		s := msg.String()
		if len(s) == 1 {
			return s, true
		}
		return "", false
	default:
		return "", false
	}
}
