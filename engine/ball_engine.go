package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/divide-conquer/vmath"
)

const (
	// placementAttempts bounds the search for a non-overlapping spawn point per ball
	placementAttempts = 32

	// Launch angles stay away from the axes so no ball bounces along a single row or column
	minLaunchAngle = math.Pi / 12
	maxLaunchAngle = math.Pi/2 - math.Pi/12
)

// Options configures a BallEngine
type Options struct {
	BallSpeed    float64 // Units per second, identical for every ball at reset
	BallRadius   float64
	LineSpeed    float64 // Growth of each line end, units per second
	BallContacts bool    // Reflect balls off each other
	Seed         uint64
}

// BallEngine owns the regions of the play field and advances the simulation
// Not safe for concurrent use: the game loop calls it from a single goroutine
type BallEngine struct {
	bounds  vmath.Rect
	regions []*BallRegion
	opts    Options
	rng     *vmath.FastRand

	ballCount int
	start     time.Time
	listener  Listener
}

// NewBallEngine creates an engine for a play area; call Reset before the first Update
func NewBallEngine(bounds vmath.Rect, opts Options) *BallEngine {
	return &BallEngine{
		bounds: bounds,
		opts:   opts,
		rng:    vmath.NewFastRand(opts.Seed),
	}
}

// SetListener installs the callback receiver, nil to remove
func (e *BallEngine) SetListener(l Listener) { e.listener = l }

func (e *BallEngine) Bounds() vmath.Rect     { return e.bounds }
func (e *BallEngine) Regions() []*BallRegion { return e.regions }

// BallCount returns the number of balls across all regions
func (e *BallEngine) BallCount() int {
	n := 0
	for _, r := range e.regions {
		n += len(r.balls)
	}
	return n
}

// Reset discards all regions and creates one region spanning the play area with ballCount balls
// Balls stay put until start; ticks before start advance nothing
func (e *BallEngine) Reset(now time.Time, ballCount int, start time.Time) {
	if start.Before(now) {
		start = now
	}
	e.start = start
	e.ballCount = ballCount

	balls := make([]*Ball, 0, ballCount)
	for i := 0; i < ballCount; i++ {
		balls = append(balls, e.spawnBall(balls))
	}

	region := NewBallRegion(start, e.bounds, balls)
	region.ballContacts = e.opts.BallContacts
	e.regions = []*BallRegion{region}
}

// Place replaces all regions, keeping the start time; used by scripted scenarios and tests
func (e *BallEngine) Place(regions ...*BallRegion) {
	e.regions = regions
	e.ballCount = e.BallCount()
}

// Resize rebuilds the engine for a new play area, keeping the ball count
func (e *BallEngine) Resize(now time.Time, bounds vmath.Rect) {
	e.bounds = bounds
	e.Reset(now, e.ballCount, now)
}

// spawnBall picks a random point not overlapping already placed balls and a random diagonal heading
func (e *BallEngine) spawnBall(placed []*Ball) *Ball {
	r := e.opts.BallRadius
	inner := e.bounds.Inset(r)

	var p vmath.Vec2
	for attempt := 0; attempt < placementAttempts; attempt++ {
		p = inner.RandomPoint(e.rng)
		clear := true
		for _, o := range placed {
			if vmath.CirclesOverlap(p, r, o.Pos(), o.Radius) {
				clear = false
				break
			}
		}
		if clear {
			break
		}
	}

	angle := e.rng.Range(minLaunchAngle, maxLaunchAngle) + float64(e.rng.Intn(4))*math.Pi/2
	return NewBall(p.X, p.Y, angle, e.opts.BallSpeed, r)
}

// regionAt returns the region whose interior holds (x, y)
func (e *BallEngine) regionAt(x, y float64) *BallRegion {
	for _, r := range e.regions {
		if r.interior(x, y) {
			return r
		}
	}
	return nil
}

// CanStartLineAt reports whether (x, y) lies in a region with no line in flight
func (e *BallEngine) CanStartLineAt(x, y float64) bool {
	r := e.regionAt(x, y)
	return r != nil && r.CanStartLineAt(x, y)
}

// StartHorizontalLine begins a horizontal line at (x, y)
func (e *BallEngine) StartHorizontalLine(now time.Time, x, y float64) bool {
	return e.startLine(now, Horizontal, x, y)
}

// StartVerticalLine begins a vertical line at (x, y)
func (e *BallEngine) StartVerticalLine(now time.Time, x, y float64) bool {
	return e.startLine(now, Vertical, x, y)
}

func (e *BallEngine) startLine(now time.Time, dir Direction, x, y float64) bool {
	r := e.regionAt(x, y)
	if r == nil {
		return false
	}
	// Lines started during the pre-start window grow from the start instant
	if now.Before(e.start) {
		now = e.start
	}
	return r.StartLine(now, dir, x, y, e.opts.LineSpeed)
}

// Update advances every region to now
// The first region reporting a line hit aborts the tick; the hit is returned and no split is applied.
// Regions whose lines completed are split; children without balls count as filled and are dropped.
func (e *BallEngine) Update(now time.Time) UpdateResult {
	if now.Before(e.start) {
		return UpdateResult{Filled: e.PercentageFilled()}
	}

	var done []int
	for i, r := range e.regions {
		u := r.Update(now)
		if u.Hit != nil {
			if e.listener != nil {
				e.listener.OnBallHitsLine(*u.Hit)
			}
			return UpdateResult{Hit: u.Hit, Filled: e.PercentageFilled()}
		}
		if u.Done {
			done = append(done, i)
		}
	}

	if len(done) == 0 {
		return UpdateResult{Filled: e.PercentageFilled()}
	}

	next := make([]*BallRegion, 0, len(e.regions)+len(done))
	d := 0
	for i, r := range e.regions {
		if d < len(done) && done[d] == i {
			d++
			a, b := r.Split()
			for _, child := range []*BallRegion{a, b} {
				if len(child.balls) > 0 {
					next = append(next, child)
				}
			}
			continue
		}
		next = append(next, r)
	}
	e.regions = next

	filled := e.PercentageFilled()
	if e.listener != nil {
		e.listener.OnAreaChange(filled)
	}
	return UpdateResult{Split: true, Filled: filled}
}

// PercentageFilled returns the fraction of the play area no longer covered by live regions
func (e *BallEngine) PercentageFilled() float64 {
	total := e.bounds.Area()
	if total <= 0 {
		return 0
	}
	live := 0.0
	for _, r := range e.regions {
		live += r.bounds.Area()
	}
	return vmath.Clamp(1-live/total, 0, 1)
}
