package constants

import "time"

// UI Layout
const (
	// StatusBarHeight is the number of rows reserved below the play area
	StatusBarHeight = 1

	// MinPlayWidth is the smallest usable play area width in cells
	MinPlayWidth = 20

	// MinPlayHeight is the smallest usable play area height in cells
	MinPlayHeight = 8

	// FillMeterWidth is the width of the status bar fill meter
	FillMeterWidth = 20

	// LeaderboardSize is how many entries the leaderboard overlay shows
	LeaderboardSize = 10
)

// UI Timing
const (
	// HitFlashDuration is how long the play field flashes after a line is struck
	HitFlashDuration = 400 * time.Millisecond

	// FillMeterTween is how long the fill meter takes to ease to a new value
	FillMeterTween = 500 * time.Millisecond

	// CursorBlinkInterval toggles cursor emphasis
	CursorBlinkInterval = 500 * time.Millisecond
)

// Glyphs
const (
	GlyphBall       = '●'
	GlyphCursor     = '+'
	GlyphLineH      = '━'
	GlyphLineV      = '┃'
	GlyphFilled     = '░'
	GlyphMeterFull  = '█'
	GlyphMeterEmpty = '·'
)
