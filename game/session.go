// Package game holds the level, lives and score rules around the ball engine
package game

import (
	"time"

	"github.com/lixenwraith/divide-conquer/config"
	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/engine"
	"github.com/lixenwraith/divide-conquer/vmath"
)

// Rules are the level progression parameters
type Rules struct {
	StartBalls        int
	LevelUpThreshold  float64
	ReadyCountdown    time.Duration
	LevelCompleteHold time.Duration
	ParTimePerBall    time.Duration
}

// RulesFromConfig extracts the rules from loaded settings
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		StartBalls:        cfg.Game.StartBalls,
		LevelUpThreshold:  cfg.Game.LevelUpThreshold,
		ReadyCountdown:    cfg.Game.ReadyCountdown.Duration,
		LevelCompleteHold: cfg.Game.LevelCompleteHold.Duration,
		ParTimePerBall:    cfg.Game.ParTimePerBall.Duration,
	}
}

// Session drives a BallEngine through levels
// All times are game time (pause-excluded); not safe for concurrent use
type Session struct {
	rules  Rules
	engine *engine.BallEngine
	sinks  []EventSink

	phase       Phase
	pausedFrom  Phase
	phaseStart  time.Time
	readyEnd    time.Time
	levelStart  time.Time
	level       int
	lives       int
	score       int
	levelScore  int
	lastElapsed time.Duration
}

// Snapshot is a read-only view for rendering
type Snapshot struct {
	Phase        Phase
	Level        int
	Lives        int
	Balls        int
	Score        int
	LevelScore   int // Points from the last completed level
	Filled       float64
	Threshold    float64
	Countdown    time.Duration // Remaining ready time
	LevelElapsed time.Duration
}

// NewSession wraps an engine; call Start to begin level 1
func NewSession(eng *engine.BallEngine, rules Rules) *Session {
	return &Session{
		rules:  rules,
		engine: eng,
		phase:  PhaseIdle,
	}
}

// AddSink registers an event consumer
func (s *Session) AddSink(sink EventSink) {
	s.sinks = append(s.sinks, sink)
}

func (s *Session) Engine() *engine.BallEngine { return s.engine }
func (s *Session) Phase() Phase               { return s.phase }
func (s *Session) Level() int                 { return s.level }
func (s *Session) Lives() int                 { return s.lives }
func (s *Session) Score() int                 { return s.score }

// LevelElapsed is the running time of the current level, frozen once it ended
func (s *Session) LevelElapsed(now time.Time) time.Duration {
	switch s.phase {
	case PhaseRunning:
		return now.Sub(s.levelStart)
	case PhaseLevelComplete, PhaseGameOver:
		return s.lastElapsed
	}
	return 0
}

func (s *Session) emit(ev Event) {
	ev.Level, ev.Lives, ev.Score = s.level, s.lives, s.score
	ev.Filled = s.engine.PercentageFilled()
	for _, sink := range s.sinks {
		sink.HandleEvent(ev)
	}
}

func (s *Session) transition(to Phase, now time.Time) bool {
	if !CanTransition(s.phase, to) {
		return false
	}
	s.phase = to
	s.phaseStart = now
	return true
}

// ballsForLevel returns the ball count (and life count) of a level
func (s *Session) ballsForLevel(level int) int {
	return s.rules.StartBalls + level - 1
}

// Start begins a new game at level 1, discarding any game in progress
func (s *Session) Start(now time.Time) {
	s.phase = PhaseIdle
	s.level = 1
	s.score = 0
	s.levelScore = 0
	s.beginLevel(now)
}

func (s *Session) beginLevel(now time.Time) {
	balls := s.ballsForLevel(s.level)
	s.lives = balls
	s.readyEnd = now.Add(s.rules.ReadyCountdown)
	s.engine.Reset(now, balls, s.readyEnd)
	s.transition(PhaseReady, now)
	s.emit(Event{Type: EventLevelStart, When: now})
}

// Tick advances the session to now and returns the engine result of this tick
func (s *Session) Tick(now time.Time) engine.UpdateResult {
	switch s.phase {
	case PhaseReady:
		if now.Before(s.readyEnd) {
			return engine.UpdateResult{Filled: s.engine.PercentageFilled()}
		}
		s.transition(PhaseRunning, s.readyEnd)
		s.levelStart = s.readyEnd
		s.emit(Event{Type: EventRunning, When: s.readyEnd})
		return s.run(now)

	case PhaseRunning:
		return s.run(now)

	case PhaseLevelComplete:
		if !now.Before(s.phaseStart.Add(s.rules.LevelCompleteHold)) {
			s.level++
			s.beginLevel(now)
		}
	}
	return engine.UpdateResult{Filled: s.engine.PercentageFilled()}
}

func (s *Session) run(now time.Time) engine.UpdateResult {
	res := s.engine.Update(now)

	if res.Hit != nil {
		s.lives--
		s.emit(Event{Type: EventLineHit, When: res.Hit.When, Hit: res.Hit})
		if s.lives <= 0 {
			s.lives = 0
			s.lastElapsed = now.Sub(s.levelStart)
			s.transition(PhaseGameOver, now)
			s.emit(Event{Type: EventGameOver, When: now})
		}
		return res
	}

	if res.Split {
		s.emit(Event{Type: EventSplit, When: now})
		if res.Filled >= s.rules.LevelUpThreshold {
			s.completeLevel(now, res.Filled)
		}
	}
	return res
}

// completeLevel awards fill points plus a time bonus for finishing under par
func (s *Session) completeLevel(now time.Time, filled float64) {
	elapsed := now.Sub(s.levelStart)
	par := s.rules.ParTimePerBall * time.Duration(s.ballsForLevel(s.level))

	points := int(float64(s.level*constants.FillPoints) * filled)
	if under := par - elapsed; under > 0 {
		points += int(under.Seconds()) * constants.TimeBonusPerSecond * s.level
	}

	s.levelScore = points
	s.score += points
	s.lastElapsed = elapsed
	s.transition(PhaseLevelComplete, now)
	s.emit(Event{Type: EventLevelComplete, When: now, LevelScore: points})
}

// CanStartLineAt reports whether a line may start at (x, y) now
func (s *Session) CanStartLineAt(x, y float64) bool {
	return s.phase == PhaseRunning && s.engine.CanStartLineAt(x, y)
}

// StartLine begins a line while running; false otherwise or when the engine refuses
func (s *Session) StartLine(now time.Time, dir engine.Direction, x, y float64) bool {
	if s.phase != PhaseRunning {
		return false
	}

	var ok bool
	if dir == engine.Horizontal {
		ok = s.engine.StartHorizontalLine(now, x, y)
	} else {
		ok = s.engine.StartVerticalLine(now, x, y)
	}
	if ok {
		s.emit(Event{Type: EventLineStart, When: now, Direction: dir})
	}
	return ok
}

// TogglePause pauses from Ready or Running and resumes to the same phase
// Returns the resulting phase; other phases are left untouched
func (s *Session) TogglePause(now time.Time) Phase {
	switch s.phase {
	case PhaseReady, PhaseRunning:
		s.pausedFrom = s.phase
		s.transition(PhasePaused, now)
		s.emit(Event{Type: EventPause, When: now})
	case PhasePaused:
		s.transition(s.pausedFrom, now)
		s.emit(Event{Type: EventResume, When: now})
	}
	return s.phase
}

// Resize rebuilds the engine for a new play area and restarts the current level
// A paused level stays paused at the start of its countdown; a completed level moves on to the next
func (s *Session) Resize(now time.Time, bounds vmath.Rect) {
	s.engine.Resize(now, bounds)

	from := s.phase
	switch from {
	case PhaseIdle, PhaseGameOver:
		return
	case PhaseLevelComplete:
		s.level++
	}

	s.phase = PhaseIdle
	s.beginLevel(now)
	if from == PhasePaused {
		s.pausedFrom = PhaseReady
		s.transition(PhasePaused, now)
	}
}

// Snapshot returns the render view at now
func (s *Session) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Phase:        s.phase,
		Level:        s.level,
		Lives:        s.lives,
		Balls:        s.engine.BallCount(),
		Score:        s.score,
		LevelScore:   s.levelScore,
		Filled:       s.engine.PercentageFilled(),
		Threshold:    s.rules.LevelUpThreshold,
		LevelElapsed: s.LevelElapsed(now),
	}
	if s.phase == PhaseReady || (s.phase == PhasePaused && s.pausedFrom == PhaseReady) {
		if left := s.readyEnd.Sub(now); left > 0 {
			snap.Countdown = left
		}
	}
	return snap
}
