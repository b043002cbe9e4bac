package game

import (
	"time"

	"github.com/lixenwraith/divide-conquer/engine"
)

// EventType identifies a session event
type EventType uint8

const (
	EventLevelStart EventType = iota
	EventRunning
	EventLineStart
	EventLineHit
	EventSplit
	EventLevelComplete
	EventGameOver
	EventPause
	EventResume
)

func (t EventType) String() string {
	switch t {
	case EventLevelStart:
		return "LevelStart"
	case EventRunning:
		return "Running"
	case EventLineStart:
		return "LineStart"
	case EventLineHit:
		return "LineHit"
	case EventSplit:
		return "Split"
	case EventLevelComplete:
		return "LevelComplete"
	case EventGameOver:
		return "GameOver"
	case EventPause:
		return "Pause"
	case EventResume:
		return "Resume"
	default:
		return "Unknown"
	}
}

// Event is emitted to every sink synchronously from the loop goroutine
type Event struct {
	Type   EventType
	When   time.Time
	Level  int
	Lives  int
	Score  int
	Filled float64

	// Set for EventLineHit
	Hit *engine.LineHit
	// Set for EventLineStart
	Direction engine.Direction
	// Set for EventLevelComplete: points earned by the level
	LevelScore int
}

// EventSink consumes session events; implementations must not block
type EventSink interface {
	HandleEvent(ev Event)
}

// SinkFunc adapts a function to EventSink
type SinkFunc func(ev Event)

func (f SinkFunc) HandleEvent(ev Event) { f(ev) }
