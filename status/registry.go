// Package status collects loop metrics written by the game loop and read by the metrics overlay
package status

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/divide-conquer/engine"
	"github.com/lixenwraith/divide-conquer/game"
)

// Well-known metric keys
const (
	KeyFrames    = "frames"
	KeySplits    = "splits"
	KeyHits      = "hits"
	KeyLevels    = "levels"
	KeyRegions   = "regions"
	KeyBalls     = "balls"
	KeyFPS       = "fps"
	KeyTickMs    = "tick_ms"
	KeyFilledPct = "filled_pct"
)

// Registry is the central metrics facade
// Callers cache pointers from Counters/Gauges; per-frame writes go straight to atomics
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]

	frames *atomic.Int64
	tickMs *Gauge
	fps    *Gauge

	fpsWindowStart time.Time
	fpsWindowCount int
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	r := &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
	r.frames = r.Counters.Get(KeyFrames)
	r.tickMs = r.Gauges.Get(KeyTickMs)
	r.fps = r.Gauges.Get(KeyFPS)
	return r
}

// RecordFrame stores how long one simulation step took and refreshes the fps gauge once per second
// Only the loop goroutine calls it
func (r *Registry) RecordFrame(now time.Time, tick time.Duration) {
	r.frames.Add(1)
	r.tickMs.Set(float64(tick) / float64(time.Millisecond))

	if r.fpsWindowStart.IsZero() {
		r.fpsWindowStart = now
	}
	r.fpsWindowCount++
	if elapsed := now.Sub(r.fpsWindowStart); elapsed >= time.Second {
		r.fps.Set(float64(r.fpsWindowCount) / elapsed.Seconds())
		r.fpsWindowStart = now
		r.fpsWindowCount = 0
	}
}

// ObserveEngine samples region, ball and fill gauges
func (r *Registry) ObserveEngine(e *engine.BallEngine) {
	r.Gauges.Get(KeyRegions).Set(float64(len(e.Regions())))
	r.Gauges.Get(KeyBalls).Set(float64(e.BallCount()))
	r.Gauges.Get(KeyFilledPct).Set(e.PercentageFilled() * 100)
}

// Inc bumps a counter
func (r *Registry) Inc(key string) {
	r.Counters.Get(key).Add(1)
}

// HandleEvent counts session events; registered as a game.EventSink
func (r *Registry) HandleEvent(ev game.Event) {
	switch ev.Type {
	case game.EventSplit:
		r.Inc(KeySplits)
	case game.EventLineHit:
		r.Inc(KeyHits)
	case game.EventLevelComplete:
		r.Inc(KeyLevels)
	}
}

// Lines renders every metric as "key value", counters first, in sorted order
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.Counters.Count()+r.Gauges.Count())
	r.Counters.Range(func(key string, v *atomic.Int64) {
		out = append(out, fmt.Sprintf("%-10s %d", key, v.Load()))
	})
	r.Gauges.Range(func(key string, g *Gauge) {
		out = append(out, fmt.Sprintf("%-10s %.1f", key, g.Get()))
	})
	return out
}
