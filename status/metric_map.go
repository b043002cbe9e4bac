package status

import (
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap hands out one stable pointer per metric name
// The loop caches the pointers and writes through atomics; only lookups lock
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an initialized MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the metric registered under key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	metric, found := m.items[key]
	m.mu.RUnlock()
	if found {
		return metric
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if metric, found = m.items[key]; !found {
		metric = new(T)
		m.items[key] = metric
	}
	return metric
}

// Range visits metrics by ascending name
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, key := range slices.Sorted(maps.Keys(m.items)) {
		fn(key, m.items[key])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Gauge is an atomic float64; zero value reads 0.0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(val float64) { g.bits.Store(math.Float64bits(val)) }
func (g *Gauge) Get() float64    { return math.Float64frombits(g.bits.Load()) }
