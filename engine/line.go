package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/divide-conquer/vmath"
)

// Direction is the orientation of an AnimatingLine
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// AnimatingLine is a segment growing from the point it was started at toward both region edges
type AnimatingLine struct {
	Direction Direction
	Fixed     float64 // Perpendicular offset: y for Horizontal, x for Vertical
	Origin    float64 // Axis coordinate the line was started at
	Start     float64 // Current low end along the axis
	End       float64 // Current high end along the axis
	Created   time.Time
	Speed     float64 // Growth of each end, units per second
}

// NewAnimatingLine starts a zero-length line at (x, y)
func NewAnimatingLine(now time.Time, dir Direction, x, y, speed float64) *AnimatingLine {
	l := &AnimatingLine{
		Direction: dir,
		Created:   now,
		Speed:     speed,
	}
	if dir == Horizontal {
		l.Fixed, l.Origin = y, x
	} else {
		l.Fixed, l.Origin = x, y
	}
	l.Start, l.End = l.Origin, l.Origin
	return l
}

// axisSpan returns the bounds extent along the line's axis
func (l *AnimatingLine) axisSpan(bounds vmath.Rect) (float64, float64) {
	if l.Direction == Horizontal {
		return bounds.Left, bounds.Right
	}
	return bounds.Top, bounds.Bottom
}

// Update recomputes the extent from the time elapsed since creation
func (l *AnimatingLine) Update(now time.Time, bounds vmath.Rect) {
	elapsed := now.Sub(l.Created).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	grown := l.Speed * elapsed
	lo, hi := l.axisSpan(bounds)
	l.Start = math.Max(lo, l.Origin-grown)
	l.End = math.Min(hi, l.Origin+grown)
}

// Done reports whether both ends reached the bounds
func (l *AnimatingLine) Done(bounds vmath.Rect) bool {
	lo, hi := l.axisSpan(bounds)
	return l.Start <= lo+vmath.Epsilon && l.End >= hi-vmath.Epsilon
}

// Length returns the current extent
func (l *AnimatingLine) Length() float64 {
	return l.End - l.Start
}

// Progress returns growth in [0, 1] relative to the bounds span
func (l *AnimatingLine) Progress(bounds vmath.Rect) float64 {
	lo, hi := l.axisSpan(bounds)
	if hi-lo <= 0 {
		return 1
	}
	return vmath.Clamp(l.Length()/(hi-lo), 0, 1)
}

// Segment returns the current end points in play-area coordinates
func (l *AnimatingLine) Segment() (vmath.Vec2, vmath.Vec2) {
	if l.Direction == Horizontal {
		return vmath.Vec2{X: l.Start, Y: l.Fixed}, vmath.Vec2{X: l.End, Y: l.Fixed}
	}
	return vmath.Vec2{X: l.Fixed, Y: l.Start}, vmath.Vec2{X: l.Fixed, Y: l.End}
}

// Touches reports whether the ball overlaps the current segment
func (l *AnimatingLine) Touches(b *Ball) bool {
	a, e := l.Segment()
	return vmath.SegmentCircleHit(a, e, b.Pos(), b.Radius)
}
