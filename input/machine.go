// Package input turns tcell events into game intents
package input

import "github.com/gdamore/tcell/v2"

// maxCount caps the numeric prefix
const maxCount = 999

// Machine parses tcell events into Intents
// Holds the pending count prefix and the last mouse button state for press detection
type Machine struct {
	keyTable *KeyTable
	count    int
	buttons  tcell.ButtonMask
}

// NewMachine creates a parser over kt, nil for the default bindings
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// PendingCount returns the count typed so far, 0 when none
func (m *Machine) PendingCount() int { return m.count }

// Reset clears all pending state
func (m *Machine) Reset() {
	m.count = 0
	m.buttons = tcell.ButtonNone
}

// Process parses a terminal event and returns an Intent
// Returns nil when the event is incomplete (count digits) or unbound
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventError:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() != tcell.KeyRune {
		entry, ok := m.keyTable.SpecialKeys[ev.Key()]
		if !ok {
			m.count = 0
			return nil
		}
		return m.build(entry)
	}

	r := ev.Rune()
	// 1-9 start a count, 0 continues one; a bare 0 is a motion
	if (r >= '1' && r <= '9') || (r == '0' && m.count > 0) {
		m.count = min(m.count*10+int(r-'0'), maxCount)
		return nil
	}

	entry, ok := m.keyTable.Runes[r]
	if !ok {
		m.count = 0
		return nil
	}
	return m.build(entry)
}

func (m *Machine) build(entry KeyEntry) *Intent {
	count := max(m.count, 1)
	m.count = 0
	if entry.Intent == IntentMotion {
		return &Intent{Type: IntentMotion, Motion: entry.Motion, Count: count}
	}
	return &Intent{Type: entry.Intent, Count: 1}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons &^ m.buttons
	m.buttons = buttons

	switch {
	case pressed&tcell.Button1 != 0:
		return &Intent{Type: IntentLineHorizontal, Count: 1, Pointer: true, X: x, Y: y}
	case pressed&tcell.Button2 != 0:
		return &Intent{Type: IntentLineVertical, Count: 1, Pointer: true, X: x, Y: y}
	case buttons == tcell.ButtonNone:
		return &Intent{Type: IntentCursorTo, Count: 1, Pointer: true, X: x, Y: y}
	}
	return nil
}
