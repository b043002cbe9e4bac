package vmath

// Rect is an axis-aligned rectangle in play-area units
// Edges are inclusive: a point on an edge is contained
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a rect from origin and size
func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Area returns width*height, zero for degenerate rects
func (r Rect) Area() float64 {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center returns the midpoint
func (r Rect) Center() Vec2 {
	return Vec2{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Contains checks if point is within the rect, edges included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// ContainsStrict checks if point lies more than inset inside every edge
func (r Rect) ContainsStrict(x, y, inset float64) bool {
	return x > r.Left+inset && x < r.Right-inset && y > r.Top+inset && y < r.Bottom-inset
}

// Inset shrinks every edge by d; the result collapses to the center line when d exceeds half a side
func (r Rect) Inset(d float64) Rect {
	out := Rect{r.Left + d, r.Top + d, r.Right - d, r.Bottom - d}
	if out.Left > out.Right {
		mid := (r.Left + r.Right) / 2
		out.Left, out.Right = mid, mid
	}
	if out.Top > out.Bottom {
		mid := (r.Top + r.Bottom) / 2
		out.Top, out.Bottom = mid, mid
	}
	return out
}

// ClampPoint moves (x, y) to the closest point inside the rect
func (r Rect) ClampPoint(x, y float64) (float64, float64) {
	return Clamp(x, r.Left, r.Right), Clamp(y, r.Top, r.Bottom)
}

// SplitHorizontal cuts along y; the two halves share the cut edge
func (r Rect) SplitHorizontal(y float64) (top, bottom Rect) {
	y = Clamp(y, r.Top, r.Bottom)
	top = Rect{r.Left, r.Top, r.Right, y}
	bottom = Rect{r.Left, y, r.Right, r.Bottom}
	return top, bottom
}

// SplitVertical cuts along x; the two halves share the cut edge
func (r Rect) SplitVertical(x float64) (left, right Rect) {
	x = Clamp(x, r.Left, r.Right)
	left = Rect{r.Left, r.Top, x, r.Bottom}
	right = Rect{x, r.Top, r.Right, r.Bottom}
	return left, right
}

// RandomPoint returns a point inside the rect using provided RNG
func (r Rect) RandomPoint(rng *FastRand) Vec2 {
	return Vec2{rng.Range(r.Left, r.Right), rng.Range(r.Top, r.Bottom)}
}
