package render

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FillMeter eases the displayed fill toward the engine value so splits read as a sweep
type FillMeter struct {
	tween    *gween.Tween
	shown    float64
	target   float64
	duration float32
}

// NewFillMeter creates a meter whose transitions last d
func NewFillMeter(d time.Duration) *FillMeter {
	return &FillMeter{duration: float32(d.Seconds())}
}

// Set retargets the meter; a new level snaps down instead of sweeping
func (m *FillMeter) Set(target float64) {
	if target == m.target {
		return
	}
	m.target = target
	if target < m.shown {
		m.Snap(target)
		return
	}
	m.tween = gween.New(float32(m.shown), float32(target), m.duration, ease.OutCubic)
}

// Snap jumps to v without easing
func (m *FillMeter) Snap(v float64) {
	m.tween = nil
	m.shown, m.target = v, v
}

// Update advances the tween by dt and returns the displayed value
func (m *FillMeter) Update(dt time.Duration) float64 {
	if m.tween == nil {
		return m.shown
	}
	v, done := m.tween.Update(float32(dt.Seconds()))
	m.shown = float64(v)
	if done {
		m.shown = m.target
		m.tween = nil
	}
	return m.shown
}

func (m *FillMeter) Value() float64 { return m.shown }
