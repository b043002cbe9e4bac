package engine

import (
	"math"

	"github.com/lixenwraith/divide-conquer/vmath"
)

// Ball is a point mass with a collision radius, owned by exactly one BallRegion
// Velocity is in play-area units per second
type Ball struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// NewBall creates a ball at (x, y) moving at angle (radians) with the given speed
func NewBall(x, y, angle, speed, radius float64) *Ball {
	v := vmath.FromAngle(angle, speed)
	return &Ball{X: x, Y: y, VX: v.X, VY: v.Y, Radius: radius}
}

// Pos returns the ball center
func (b *Ball) Pos() vmath.Vec2 { return vmath.Vec2{X: b.X, Y: b.Y} }

// Vel returns the velocity vector
func (b *Ball) Vel() vmath.Vec2 { return vmath.Vec2{X: b.VX, Y: b.VY} }

// Speed returns current speed
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Advance moves the ball dt seconds, reflecting off the bounds shrunk by the radius
// The center never leaves bounds; returns true when an edge was hit
func (b *Ball) Advance(dt float64, bounds vmath.Rect) bool {
	inner := bounds.Inset(b.Radius)

	var bx, by bool
	b.X, b.VX, bx = vmath.Reflect1D(b.X+b.VX*dt, b.VX, inner.Left, inner.Right)
	b.Y, b.VY, by = vmath.Reflect1D(b.Y+b.VY*dt, b.VY, inner.Top, inner.Bottom)
	return bx || by
}

// bounceOff reflects both balls away from each other along the contact normal
// Each ball keeps its speed; only the component heading into the other is flipped
func (b *Ball) bounceOff(o *Ball) bool {
	n := o.Pos().Sub(b.Pos()).Normalize()
	if n == (vmath.Vec2{}) {
		return false
	}

	// Separating already
	if b.Vel().Sub(o.Vel()).Dot(n) <= 0 {
		return false
	}

	if bv := b.Vel(); bv.Dot(n) > 0 {
		r := vmath.ReflectAcross(bv, n)
		b.VX, b.VY = r.X, r.Y
	}
	if ov := o.Vel(); ov.Dot(n) < 0 {
		r := vmath.ReflectAcross(ov, n)
		o.VX, o.VY = r.X, r.Y
	}
	return true
}
