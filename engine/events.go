package engine

import "time"

// LineHit describes a ball striking an animating line; the line is discarded
type LineHit struct {
	When      time.Time
	X, Y      float64   // Ball center at the moment of contact
	Direction Direction // Orientation of the struck line
	Fixed     float64   // Perpendicular offset of the struck line
	Start     float64   // Line extent at contact
	End       float64
}

// UpdateResult is what a BallEngine tick produced
// At most one of Split and Hit is set; a hit wins over a split in the same tick
type UpdateResult struct {
	Split  bool
	Hit    *LineHit
	Filled float64 // PercentageFilled after the tick
}

// Listener receives engine notifications from inside Update
type Listener interface {
	OnBallHitsLine(hit LineHit)
	OnAreaChange(filled float64)
}

// RegionUpdate is what a single region tick produced
type RegionUpdate struct {
	Hit      *LineHit
	Done     bool // Line reached both edges; region is ready to split
	Bounces  int  // Ball-vs-edge reflections
	Contacts int  // Ball-vs-ball reflections
}
