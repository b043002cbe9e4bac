package constants

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the render and simulation frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize is the buffered capacity between the terminal poller and the loop
	EventChannelSize = 256
)

// Logging
const (
	// LogDir is where the debug log is written when enabled
	LogDir = "logs"

	// LogFileName is the debug log file inside LogDir
	LogFileName = "divide-conquer.log"

	// MaxLogSize rotates the debug log on startup once exceeded
	MaxLogSize = 10 * 1024 * 1024
)
