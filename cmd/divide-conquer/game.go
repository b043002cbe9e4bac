package main

import (
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/divide-conquer/audio"
	"github.com/lixenwraith/divide-conquer/config"
	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/engine"
	"github.com/lixenwraith/divide-conquer/game"
	"github.com/lixenwraith/divide-conquer/input"
	"github.com/lixenwraith/divide-conquer/render"
	"github.com/lixenwraith/divide-conquer/scores"
	"github.com/lixenwraith/divide-conquer/status"
)

// gameApp wires the session to the terminal, clock, sound, metrics and score store
// All fields are owned by the loop goroutine
type gameApp struct {
	cfg      *config.Config
	screen   tcell.Screen
	clock    *engine.PausableClock
	session  *game.Session
	renderer *render.TerminalRenderer
	machine  *input.Machine
	sound    *audio.SoundManager
	metrics  *status.Registry
	store    scores.Store

	cursorX, cursorY int
	showMetrics      bool

	// Game-over bookkeeping, reset on restart
	gameStart   time.Time
	recorded    bool
	rank        int
	leaderboard []scores.Entry

	lastFrame time.Time
}

// engineLog traces engine callbacks at debug level
type engineLog struct{}

func (engineLog) OnBallHitsLine(hit engine.LineHit) {
	log.Debugf("ball hit %s line at (%.2f, %.2f)", hit.Direction, hit.X, hit.Y)
}

func (engineLog) OnAreaChange(filled float64) {
	log.Debugf("area filled %.1f%%", filled*100)
}

// newGameApp builds the app on an initialized screen; source drives the clock (monotonic if nil)
func newGameApp(cfg *config.Config, screen tcell.Screen, store scores.Store, sound *audio.SoundManager, source engine.TimeProvider) (*gameApp, error) {
	keys := input.DefaultKeyTable()
	if err := keys.Apply(cfg.Keys); err != nil {
		return nil, err
	}

	renderer := render.NewTerminalRenderer(screen)
	layout := renderer.Layout()

	eng := engine.NewBallEngine(layout.PlayBounds(), cfg.EngineOptions(time.Now()))
	eng.SetListener(engineLog{})

	a := &gameApp{
		cfg:         cfg,
		screen:      screen,
		clock:       engine.NewPausableClock(source),
		session:     game.NewSession(eng, game.RulesFromConfig(cfg)),
		renderer:    renderer,
		machine:     input.NewMachine(keys),
		sound:       sound,
		metrics:     status.NewRegistry(),
		store:       store,
		showMetrics: cfg.UI.ShowMetrics,
	}
	a.cursorX, a.cursorY = layout.CenterCell()

	a.session.AddSink(renderer)
	a.session.AddSink(a.metrics)
	a.session.AddSink(sound)
	a.session.AddSink(game.SinkFunc(func(ev game.Event) {
		log.Infof("%s level=%d lives=%d score=%d filled=%.2f", ev.Type, ev.Level, ev.Lives, ev.Score, ev.Filled)
	}))

	a.restart()
	return a, nil
}

func (a *gameApp) restart() {
	now := a.clock.Now()
	a.gameStart = now
	a.recorded = false
	a.rank = 0
	a.leaderboard = nil
	a.session.Start(now)
	a.syncClock()
}

// syncClock keeps game time frozen while the session is paused or the play area is too small to show
func (a *gameApp) syncClock() {
	if a.session.Phase() == game.PhasePaused || a.renderer.Layout().TooSmall() {
		a.clock.Pause()
	} else {
		a.clock.Resume()
	}
}

// handleIntent applies one input intent; false means quit
func (a *gameApp) handleIntent(in *input.Intent) bool {
	layout := a.renderer.Layout()

	switch in.Type {
	case input.IntentQuit:
		return false

	case input.IntentRestart:
		a.restart()

	case input.IntentPause:
		a.session.TogglePause(a.clock.Now())
		a.syncClock()

	case input.IntentToggleSound:
		muted := a.sound.ToggleMute()
		log.Infof("sound muted=%v", muted)

	case input.IntentToggleMetrics:
		a.showMetrics = !a.showMetrics

	case input.IntentResize:
		layout = a.renderer.Resize()
		if !layout.TooSmall() {
			a.session.Resize(a.clock.Now(), layout.PlayBounds())
		}
		a.cursorX, a.cursorY = layout.ClampCell(a.cursorX, a.cursorY)
		a.syncClock()

	case input.IntentMotion:
		a.moveCursor(in.Motion, in.Count, layout)

	case input.IntentCursorTo:
		if a.cfg.UI.Mouse && layout.InPlay(in.X, in.Y) {
			a.cursorX, a.cursorY = in.X, in.Y
		}

	case input.IntentLineHorizontal, input.IntentLineVertical:
		if in.Pointer {
			if !a.cfg.UI.Mouse || !layout.InPlay(in.X, in.Y) {
				return true
			}
			a.cursorX, a.cursorY = in.X, in.Y
		}
		dir := engine.Horizontal
		if in.Type == input.IntentLineVertical {
			dir = engine.Vertical
		}
		px, py := layout.CellCenter(a.cursorX, a.cursorY)
		a.session.StartLine(a.clock.Now(), dir, px, py)
	}
	return true
}

func (a *gameApp) moveCursor(m input.MotionOp, count int, layout render.Layout) {
	x, y := a.cursorX, a.cursorY
	switch m {
	case input.MotionLeft:
		x -= count
	case input.MotionRight:
		x += count
	case input.MotionUp:
		y -= count
	case input.MotionDown:
		y += count
	case input.MotionRowStart:
		x = 0
	case input.MotionRowEnd:
		x = layout.PlayWidth - 1
	case input.MotionTop:
		y = 0
	case input.MotionBottom:
		y = layout.PlayHeight - 1
	case input.MotionCenter:
		x, y = layout.CenterCell()
	}
	a.cursorX, a.cursorY = layout.ClampCell(x, y)
}

// recordGameOver stores the finished game once and loads the leaderboard
func (a *gameApp) recordGameOver(now time.Time) {
	if a.recorded || a.session.Phase() != game.PhaseGameOver {
		return
	}
	a.recorded = true

	score := a.session.Score()
	rank, err := a.store.Rank(score)
	if err != nil {
		log.Errorf("rank score: %v", err)
	}
	entry := scores.NewEntry(a.cfg.Scores.Player, score, a.session.Level(), now.Sub(a.gameStart), time.Now())
	if err := a.store.Put(entry); err != nil {
		log.Errorf("save score: %v", err)
	} else {
		a.rank = rank
	}
	if a.leaderboard, err = a.store.Top(constants.LeaderboardSize); err != nil {
		log.Errorf("load leaderboard: %v", err)
	}
}

// frame advances the simulation and redraws
func (a *gameApp) frame(wall time.Time) {
	now := a.clock.Now()
	start := time.Now()

	if !a.renderer.Layout().TooSmall() {
		a.session.Tick(now)
		a.recordGameOver(now)
	}

	a.metrics.RecordFrame(wall, time.Since(start))
	a.metrics.ObserveEngine(a.session.Engine())

	dt := time.Duration(0)
	if !a.lastFrame.IsZero() {
		dt = wall.Sub(a.lastFrame)
	}
	a.lastFrame = wall

	var metrics []string
	if a.showMetrics {
		metrics = a.metrics.Lines()
	}
	px, py := a.renderer.Layout().CellCenter(a.cursorX, a.cursorY)
	a.renderer.RenderFrame(render.Frame{
		Now:         now,
		Dt:          dt,
		Snapshot:    a.session.Snapshot(now),
		Engine:      a.session.Engine(),
		CursorX:     a.cursorX,
		CursorY:     a.cursorY,
		CursorOK:    a.session.CanStartLineAt(px, py),
		Muted:       a.sound.Muted(),
		Metrics:     metrics,
		Leaderboard: a.leaderboard,
		Rank:        a.rank,
	})
}

// run polls terminal events on a goroutine and drives frames from a ticker until quit
func (a *gameApp) run() {
	interval := a.cfg.UI.FrameInterval.Duration
	if interval <= 0 {
		interval = constants.FrameUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, constants.EventChannelSize)
	go func() {
		// Panic recovery for the polling goroutine so the terminal is restored
		defer func() {
			if r := recover(); r != nil {
				a.screen.Fini()
				log.Criticalf("input goroutine crashed: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if in := a.machine.Process(ev); in != nil && !a.handleIntent(in) {
				return
			}
		case wall := <-ticker.C:
			a.frame(wall)
		}
	}
}
