// Package render draws the play field, status bar and overlays on a tcell screen
package render

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/divide-conquer/constants"
	"github.com/lixenwraith/divide-conquer/engine"
	"github.com/lixenwraith/divide-conquer/game"
	"github.com/lixenwraith/divide-conquer/scores"
)

// Frame is everything one redraw needs
type Frame struct {
	Now      time.Time     // Game time
	Dt       time.Duration // Wall time since the previous frame, drives tweens
	Snapshot game.Snapshot
	Engine   *engine.BallEngine

	CursorX, CursorY int
	CursorOK         bool // A line may start under the cursor

	Muted       bool
	Metrics     []string
	Leaderboard []scores.Entry
	Rank        int // Leaderboard position of the finished game, 0 when unknown
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen     tcell.Screen
	layout     Layout
	meter      *FillMeter
	flashUntil time.Time
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen: screen,
		layout: NewLayout(w, h),
		meter:  NewFillMeter(constants.FillMeterTween),
	}
}

func (r *TerminalRenderer) Layout() Layout { return r.layout }

// Resize recomputes the layout from the screen size
func (r *TerminalRenderer) Resize() Layout {
	r.screen.Sync()
	w, h := r.screen.Size()
	r.layout = NewLayout(w, h)
	return r.layout
}

// HandleEvent starts the hit flash and resets the meter per level; registered as a game.EventSink
func (r *TerminalRenderer) HandleEvent(ev game.Event) {
	switch ev.Type {
	case game.EventLineHit:
		r.flashUntil = ev.When.Add(constants.HitFlashDuration)
	case game.EventLevelStart:
		r.meter.Snap(0)
		r.flashUntil = time.Time{}
	}
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(f Frame) {
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(defaultStyle)
	r.screen.Clear()

	if r.layout.TooSmall() {
		r.drawTooSmall(defaultStyle)
		r.screen.Show()
		return
	}

	r.meter.Set(f.Snapshot.Filled)
	shown := r.meter.Update(f.Dt)

	r.drawRegions(f)
	r.drawLines(f.Engine, defaultStyle)
	r.drawBalls(f.Engine)
	r.drawCursor(f)
	r.drawStatusBar(f, shown)
	r.drawOverlay(f)
	if len(f.Metrics) > 0 {
		r.drawMetrics(f.Metrics)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawTooSmall(style tcell.Style) {
	msg := fmt.Sprintf("Terminal too small: need %dx%d", constants.MinPlayWidth, constants.MinPlayHeight+constants.StatusBarHeight)
	r.drawText(0, 0, msg, style.Foreground(RgbCursorBlocked))
}

// regionIndexAt returns the live region whose interior holds the point, -1 for filled area
func regionIndexAt(regions []*engine.BallRegion, px, py float64) int {
	for i, reg := range regions {
		b := reg.Bounds()
		if px > b.Left && px < b.Right && py > b.Top && py < b.Bottom {
			return i
		}
	}
	return -1
}

// drawRegions shades live regions and paints everything else as filled
func (r *TerminalRenderer) drawRegions(f Frame) {
	regions := f.Engine.Regions()
	flashing := f.Now.Before(r.flashUntil)

	filledStyle := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbFilled)
	for y := 0; y < r.layout.PlayHeight; y++ {
		for x := 0; x < r.layout.PlayWidth; x++ {
			px, py := r.layout.CellCenter(x, y)
			i := regionIndexAt(regions, px, py)
			if i < 0 {
				r.screen.SetContent(x, y, constants.GlyphFilled, nil, filledStyle)
				continue
			}

			bg := RgbRegionA
			if i%2 == 1 {
				bg = RgbRegionB
			}
			if flashing {
				bg = RgbHitFlash
			}
			r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

// drawLines draws every growing line over the cells it covers
func (r *TerminalRenderer) drawLines(e *engine.BallEngine, defaultStyle tcell.Style) {
	for _, reg := range e.Regions() {
		line := reg.Line()
		if line == nil {
			continue
		}

		fixed := int(math.Floor(line.Fixed))
		from := int(math.Floor(line.Start))
		to := int(math.Ceil(line.End)) - 1

		glyph, color := constants.GlyphLineH, RgbLineH
		if line.Direction == engine.Vertical {
			glyph, color = constants.GlyphLineV, RgbLineV
		}
		for i := from; i <= max(from, to); i++ {
			x, y := i, fixed
			if line.Direction == engine.Vertical {
				x, y = fixed, i
			}
			if !r.layout.InPlay(x, y) {
				continue
			}
			_, _, style, _ := r.screen.GetContent(x, y)
			_, bg, _ := style.Decompose()
			r.screen.SetContent(x, y, glyph, nil, defaultStyle.Background(bg).Foreground(color))
		}
	}
}

func (r *TerminalRenderer) drawBalls(e *engine.BallEngine) {
	for _, reg := range e.Regions() {
		for _, b := range reg.Balls() {
			x, y := r.layout.CellAt(b.X, b.Y)
			if !r.layout.InPlay(x, y) {
				continue
			}
			_, _, style, _ := r.screen.GetContent(x, y)
			_, bg, _ := style.Decompose()
			r.screen.SetContent(x, y, constants.GlyphBall, nil, tcell.StyleDefault.Background(bg).Foreground(RgbBall).Bold(true))
		}
	}
}

// drawCursor marks the line start point; the blink phase only dims it so the position stays visible
func (r *TerminalRenderer) drawCursor(f Frame) {
	if !r.layout.InPlay(f.CursorX, f.CursorY) {
		return
	}
	color := RgbCursorBlocked
	if f.CursorOK {
		color = RgbCursorOK
	}
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(color).Bold(true)
	if blink := constants.CursorBlinkInterval.Milliseconds(); blink > 0 && (f.Now.UnixMilli()/blink)%2 == 1 {
		style = style.Bold(false).Dim(true)
	}
	r.screen.SetContent(f.CursorX, f.CursorY, constants.GlyphCursor, nil, style)
}

// drawStatusBar renders level, lives, score and the eased fill meter
func (r *TerminalRenderer) drawStatusBar(f Frame, shown float64) {
	snap := f.Snapshot
	y := r.layout.StatusY
	style := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusText)

	for x := 0; x < r.layout.Width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	left := fmt.Sprintf(" Level %d | Lives %d | Score %s | ", snap.Level, snap.Lives, humanize.Comma(int64(snap.Score)))
	x := r.drawText(0, y, left, style)

	progress := 0.0
	if snap.Threshold > 0 {
		progress = shown / snap.Threshold
	}
	filledChars := int(math.Round(math.Min(progress, 1) * constants.FillMeterWidth))
	meterColor := GetFillMeterColor(progress)
	for i := 0; i < constants.FillMeterWidth && x < r.layout.Width; i++ {
		if i < filledChars {
			r.screen.SetContent(x, y, constants.GlyphMeterFull, nil, style.Foreground(meterColor))
		} else {
			r.screen.SetContent(x, y, constants.GlyphMeterEmpty, nil, style.Foreground(RgbMeterEmpty))
		}
		x++
	}

	x = r.drawText(x, y, fmt.Sprintf(" %d%%/%d%%", int(shown*100), int(math.Round(snap.Threshold*100))), style)

	right := fmt.Sprintf("balls %d ", snap.Balls)
	if f.Muted {
		right = "muted | " + right
	}
	if rx := r.layout.Width - len(right); rx > x {
		r.drawText(rx, y, right, style)
	}
}

// overlayLines returns the centered message for the current phase, nil for none
func overlayLines(f Frame) []string {
	snap := f.Snapshot
	switch snap.Phase {
	case game.PhaseReady:
		return []string{
			fmt.Sprintf("Level %d", snap.Level),
			fmt.Sprintf("%d balls, %d lives", snap.Balls, snap.Lives),
			fmt.Sprintf("Fill %d%% to advance", int(math.Round(snap.Threshold*100))),
			fmt.Sprintf("Starting in %.1fs", snap.Countdown.Seconds()),
		}

	case game.PhasePaused:
		return []string{"PAUSED", "p to resume, q to quit"}

	case game.PhaseLevelComplete:
		return []string{
			fmt.Sprintf("Level %d complete", snap.Level),
			fmt.Sprintf("Filled %d%% in %s", int(snap.Filled*100), snap.LevelElapsed.Round(time.Second)),
			fmt.Sprintf("+%s points", humanize.Comma(int64(snap.LevelScore))),
		}

	case game.PhaseGameOver:
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("Score %s on level %d", humanize.Comma(int64(snap.Score)), snap.Level),
		}
		if f.Rank > 0 {
			lines = append(lines, fmt.Sprintf("You placed %s", humanize.Ordinal(f.Rank)))
		}
		if len(f.Leaderboard) > 0 {
			lines = append(lines, "")
			for i, e := range f.Leaderboard {
				lines = append(lines, fmt.Sprintf("%-4s %-12.12s %8s  L%-2d %s",
					humanize.Ordinal(i+1), e.Player, humanize.Comma(int64(e.Score)), e.Level, e.Duration.Round(time.Second)))
			}
		}
		return append(lines, "", "r to play again, q to quit")
	}
	return nil
}

// drawOverlay boxes the phase message in the middle of the play area
func (r *TerminalRenderer) drawOverlay(f Frame) {
	lines := overlayLines(f)
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := min(width+4, r.layout.PlayWidth)
	boxH := min(len(lines)+2, r.layout.PlayHeight)
	x0 := (r.layout.PlayWidth - boxW) / 2
	y0 := (r.layout.PlayHeight - boxH) / 2

	bg := tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbOverlayText)
	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			r.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	for i, l := range lines {
		y := y0 + 1 + i
		if y >= y0+boxH-1 {
			break
		}
		style := bg
		if i == 0 {
			style = bg.Foreground(RgbOverlayHead).Bold(true)
		}
		x := x0 + (boxW-len([]rune(l)))/2
		r.drawText(max(x, x0), y, l, style)
	}
}

// drawMetrics lists loop metrics in the top-right corner
func (r *TerminalRenderer) drawMetrics(lines []string) {
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbMetrics)
	for i, l := range lines {
		if i >= r.layout.PlayHeight {
			break
		}
		r.drawText(max(0, r.layout.PlayWidth-len([]rune(l))-1), i, l, style)
	}
}

// drawText writes s from (x, y) clipped to the screen width and returns the next column
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.layout.Width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
