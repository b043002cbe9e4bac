package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/divide-conquer/vmath"
)

const (
	// maxSubsteps caps integration work for a single long tick (e.g. after a stall)
	maxSubsteps = 512

	// minSubstepTravel is the floor for per-substep travel when radius is tiny
	minSubstepTravel = 0.25
)

// BallRegion is a rectangular partition of the play field with its balls and at most one growing line
type BallRegion struct {
	bounds     vmath.Rect
	balls      []*Ball
	line       *AnimatingLine
	lastUpdate time.Time

	// Ball-vs-ball reflection inside the region
	ballContacts bool
}

// NewBallRegion creates a region whose simulation clock starts at now
func NewBallRegion(now time.Time, bounds vmath.Rect, balls []*Ball) *BallRegion {
	return &BallRegion{
		bounds:       bounds,
		balls:        balls,
		lastUpdate:   now,
		ballContacts: true,
	}
}

func (r *BallRegion) Bounds() vmath.Rect    { return r.bounds }
func (r *BallRegion) Balls() []*Ball        { return r.balls }
func (r *BallRegion) Line() *AnimatingLine  { return r.line }
func (r *BallRegion) LastUpdate() time.Time { return r.lastUpdate }

// interior reports whether (x, y) is strictly inside; a line on an edge would yield an empty child
func (r *BallRegion) interior(x, y float64) bool {
	return r.bounds.ContainsStrict(x, y, 0)
}

// CanStartLineAt reports whether (x, y) is inside this region and no line is in flight
func (r *BallRegion) CanStartLineAt(x, y float64) bool {
	return r.line == nil && r.interior(x, y)
}

// StartLine begins a line at (x, y); false when one is already active or the point is outside
func (r *BallRegion) StartLine(now time.Time, dir Direction, x, y, speed float64) bool {
	if !r.CanStartLineAt(x, y) {
		return false
	}
	r.line = NewAnimatingLine(now, dir, x, y, speed)
	r.line.Update(now, r.bounds)
	return true
}

// Update advances balls and the line to now
// Each substep moves balls, grows the line, then tests for contact before completion,
// so a ball touching the line in the step it completes still counts as a hit
func (r *BallRegion) Update(now time.Time) RegionUpdate {
	var res RegionUpdate

	// A line that completed during an aborted tick splits before anything moves
	if r.line != nil && r.line.Done(r.bounds) {
		res.Done = true
		return res
	}

	if !now.After(r.lastUpdate) {
		return res
	}

	from := r.lastUpdate
	span := now.Sub(from)
	dt := span.Seconds()
	steps := r.substeps(dt)
	h := dt / float64(steps)

	for i := 1; i <= steps; i++ {
		t := from.Add(time.Duration(int64(span) * int64(i) / int64(steps)))

		for _, b := range r.balls {
			if b.Advance(h, r.bounds) {
				res.Bounces++
			}
		}
		if r.ballContacts {
			res.Contacts += r.resolveContacts()
		}

		// Catch-up steps after an aborted tick may predate the current line
		if r.line == nil || t.Before(r.line.Created) {
			continue
		}

		r.line.Update(t, r.bounds)
		if hit := r.lineHit(t); hit != nil {
			res.Hit = hit
			r.line = nil
			r.lastUpdate = t
			return res
		}
		if r.line.Done(r.bounds) {
			res.Done = true
			r.lastUpdate = t
			return res
		}
	}

	r.lastUpdate = now
	return res
}

// substeps picks a step count so no ball or line end travels more than about half a radius per step
func (r *BallRegion) substeps(dt float64) int {
	fastest := 0.0
	travel := math.MaxFloat64
	for _, b := range r.balls {
		fastest = math.Max(fastest, b.Speed())
		travel = math.Min(travel, b.Radius/2)
	}
	if r.line != nil {
		fastest = math.Max(fastest, r.line.Speed)
	}
	travel = math.Max(travel, minSubstepTravel)
	if travel == math.MaxFloat64 || fastest == 0 {
		return 1
	}

	n := int(math.Ceil(fastest * dt / travel))
	return max(1, min(n, maxSubsteps))
}

// resolveContacts reflects overlapping, approaching ball pairs
func (r *BallRegion) resolveContacts() int {
	n := 0
	for i := 0; i < len(r.balls); i++ {
		a := r.balls[i]
		for j := i + 1; j < len(r.balls); j++ {
			b := r.balls[j]
			if !vmath.CirclesOverlap(a.Pos(), a.Radius, b.Pos(), b.Radius) {
				continue
			}
			if a.bounceOff(b) {
				n++
			}
		}
	}
	return n
}

// lineHit returns the first ball touching the active line
func (r *BallRegion) lineHit(t time.Time) *LineHit {
	for _, b := range r.balls {
		if r.line.Touches(b) {
			return &LineHit{
				When:      t,
				X:         b.X,
				Y:         b.Y,
				Direction: r.line.Direction,
				Fixed:     r.line.Fixed,
				Start:     r.line.Start,
				End:       r.line.End,
			}
		}
	}
	return nil
}

// Split partitions the region along its line into two children
// Balls go to the side their center lies on (exactly on the line goes to the second child)
// Returns nil, nil when no line is active
func (r *BallRegion) Split() (*BallRegion, *BallRegion) {
	if r.line == nil {
		return nil, nil
	}

	var ra, rb vmath.Rect
	var first func(*Ball) bool
	cut := r.line.Fixed
	if r.line.Direction == Horizontal {
		ra, rb = r.bounds.SplitHorizontal(cut)
		first = func(b *Ball) bool { return b.Y < cut }
	} else {
		ra, rb = r.bounds.SplitVertical(cut)
		first = func(b *Ball) bool { return b.X < cut }
	}

	var ba, bb []*Ball
	for _, b := range r.balls {
		if first(b) {
			ba = append(ba, b)
		} else {
			bb = append(bb, b)
		}
	}

	a := NewBallRegion(r.lastUpdate, ra, settle(ba, ra))
	b := NewBallRegion(r.lastUpdate, rb, settle(bb, rb))
	a.ballContacts, b.ballContacts = r.ballContacts, r.ballContacts

	r.line = nil
	return a, b
}

// settle pulls ball centers inside bounds shrunk by their radius
func settle(balls []*Ball, bounds vmath.Rect) []*Ball {
	for _, b := range balls {
		b.X, b.Y = bounds.Inset(b.Radius).ClampPoint(b.X, b.Y)
	}
	return balls
}
