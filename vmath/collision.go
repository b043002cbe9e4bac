package vmath

// ClosestOnSegment returns the point of segment AB nearest to P
func ClosestOnSegment(a, b, p Vec2) Vec2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < Epsilon {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Scale(t))
}

// SegmentCircleHit reports whether a circle of radius r at c touches segment AB
func SegmentCircleHit(a, b, c Vec2, r float64) bool {
	d := c.Sub(ClosestOnSegment(a, b, c))
	return d.Dot(d) <= r*r
}

// CirclesOverlap reports whether two circles intersect
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	d := c2.Sub(c1)
	rr := r1 + r2
	return d.Dot(d) < rr*rr
}

// ReflectAcross mirrors velocity v about the plane with unit normal n
// Speed is preserved
func ReflectAcross(v, n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}
