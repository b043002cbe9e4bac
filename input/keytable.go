package input

import "github.com/gdamore/tcell/v2"

// KeyEntry describes what a key does
type KeyEntry struct {
	Intent IntentType
	Motion MotionOp
}

// KeyTable maps keys to behaviors
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {IntentQuit, MotionNone},
			tcell.KeyEscape: {IntentQuit, MotionNone},
			tcell.KeyUp:     {IntentMotion, MotionUp},
			tcell.KeyDown:   {IntentMotion, MotionDown},
			tcell.KeyLeft:   {IntentMotion, MotionLeft},
			tcell.KeyRight:  {IntentMotion, MotionRight},
			tcell.KeyHome:   {IntentMotion, MotionRowStart},
			tcell.KeyEnd:    {IntentMotion, MotionRowEnd},
			tcell.KeyEnter:  {IntentLineHorizontal, MotionNone},
		},

		Runes: map[rune]KeyEntry{
			'h': {IntentMotion, MotionLeft},
			'j': {IntentMotion, MotionDown},
			'k': {IntentMotion, MotionUp},
			'l': {IntentMotion, MotionRight},
			'0': {IntentMotion, MotionRowStart},
			'$': {IntentMotion, MotionRowEnd},
			'g': {IntentMotion, MotionTop},
			'G': {IntentMotion, MotionBottom},
			'c': {IntentMotion, MotionCenter},

			'-': {IntentLineHorizontal, MotionNone},
			' ': {IntentLineHorizontal, MotionNone},
			'|': {IntentLineVertical, MotionNone},
			'v': {IntentLineVertical, MotionNone},

			'p': {IntentPause, MotionNone},
			'r': {IntentRestart, MotionNone},
			's': {IntentToggleSound, MotionNone},
			'm': {IntentToggleMetrics, MotionNone},
			'q': {IntentQuit, MotionNone},
		},
	}
}
