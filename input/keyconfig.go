package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that are awkward as bare TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"minus":     '-',
	"pipe":      '|',
}

// Named special keys accepted in bindings
var specialKeyNames = map[string]tcell.Key{
	"esc":    tcell.KeyEscape,
	"enter":  tcell.KeyEnter,
	"tab":    tcell.KeyTab,
	"up":     tcell.KeyUp,
	"down":   tcell.KeyDown,
	"left":   tcell.KeyLeft,
	"right":  tcell.KeyRight,
	"home":   tcell.KeyHome,
	"end":    tcell.KeyEnd,
	"ctrl+c": tcell.KeyCtrlC,
	"ctrl+q": tcell.KeyCtrlQ,
}

// Apply rebinds keys from a key name to action name map, as loaded from the [keys] config table
// Unknown keys or actions fail the whole set and leave the table unchanged
func (kt *KeyTable) Apply(bindings map[string]string) error {
	runes := make(map[rune]KeyEntry, len(bindings))
	specials := make(map[tcell.Key]KeyEntry)

	for name, action := range bindings {
		entry, ok := actionRegistry[strings.ToLower(action)]
		if !ok {
			return fmt.Errorf("key %q: unknown action %q", name, action)
		}

		lower := strings.ToLower(name)
		if k, ok := specialKeyNames[lower]; ok {
			specials[k] = entry
			continue
		}
		if r, ok := runeAliases[lower]; ok {
			runes[r] = entry
			continue
		}
		if r, size := utf8.DecodeRuneInString(name); size == len(name) && r != utf8.RuneError {
			runes[r] = entry
			continue
		}
		return fmt.Errorf("key %q: not a single character or known key name", name)
	}

	for r, e := range runes {
		if e.Intent == IntentNone {
			delete(kt.Runes, r)
			continue
		}
		kt.Runes[r] = e
	}
	for k, e := range specials {
		if e.Intent == IntentNone {
			delete(kt.SpecialKeys, k)
			continue
		}
		kt.SpecialKeys[k] = e
	}
	return nil
}
