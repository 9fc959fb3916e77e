package vmsim

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram tracks a distribution of samples. Percentiles cover the most
// recent maxSize samples; count, mean, min and max cover every sample.
type Histogram struct {
	window  []float64 // Ring of recent samples
	head    int       // Next slot to overwrite once the ring is full
	maxSize int       // Maximum samples to retain

	count uint64
	sum   float64
	min   float64
	max   float64

	mu sync.Mutex
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000 // Default: keep last 10k samples
	}
	return &Histogram{
		window:  make([]float64, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a sample
func (h *Histogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.window) < h.maxSize {
		h.window = append(h.window, v)
	} else {
		// Overwrite the oldest sample
		h.window[h.head] = v
		h.head = (h.head + 1) % h.maxSize
	}

	if h.count == 0 || v < h.min {
		h.min = v
	}
	if h.count == 0 || v > h.max {
		h.max = v
	}
	h.count++
	h.sum += v
}

// Percentile calculates the given percentile (0-100) over the retained samples
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.Lock()
	sorted := h.sortedWindowLocked()
	h.mu.Unlock()
	return percentile(sorted, p)
}

// sortedWindowLocked returns a sorted copy so the ring keeps arrival order
func (h *Histogram) sortedWindowLocked() []float64 {
	sorted := make([]float64, len(h.window))
	copy(sorted, h.window)
	sort.Float64s(sorted)
	return sorted
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return sorted[lower]
	}

	// Linear interpolation between lower and upper
	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Snapshot returns current percentile statistics
type HistogramSnapshot struct {
	Count uint64 // All samples recorded
	Min   float64
	Max   float64
	Mean  float64
	P50   float64 // Median of the retained samples
	P95   float64
	P99   float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return HistogramSnapshot{}
	}

	sorted := h.sortedWindowLocked()
	return HistogramSnapshot{
		Count: h.count,
		Min:   h.min,
		Max:   h.max,
		Mean:  h.sum / float64(h.count),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		P99:   percentile(sorted, 99),
	}
}

// Count returns the number of samples recorded
func (h *Histogram) Count() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Retained returns the number of samples kept for percentiles
func (h *Histogram) Retained() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.window)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.window = h.window[:0]
	h.head = 0
	h.count = 0
	h.sum = 0
	h.min = 0
	h.max = 0
}

// Metrics accumulates run statistics from the decision stream
type Metrics struct {
	references atomic.Uint64
	hits       atomic.Uint64
	faults     atomic.Uint64
	evictions  atomic.Uint64
	writes     atomic.Uint64 // Dirty pages written back on eviction

	// Frames inspected per eviction
	scanLength *Histogram

	startTime time.Time
	mu        sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		startTime:  time.Now(),
		scanLength: NewHistogram(10000),
	}
}

// Observe folds one decision into the counters
func (m *Metrics) Observe(d Decision) {
	m.references.Add(1)

	switch d.Kind {
	case Hit:
		m.hits.Add(1)
	case FaultNoEviction:
		m.faults.Add(1)
	case FaultEviction:
		m.faults.Add(1)
		m.evictions.Add(1)
		if d.VictimDirty {
			m.writes.Add(1)
		}
		m.scanLength.Record(float64(d.Scanned))
	}
}

// Getters

func (m *Metrics) GetReferences() uint64 {
	return m.references.Load()
}

func (m *Metrics) GetHits() uint64 {
	return m.hits.Load()
}

func (m *Metrics) GetFaults() uint64 {
	return m.faults.Load()
}

func (m *Metrics) GetEvictions() uint64 {
	return m.evictions.Load()
}

func (m *Metrics) GetWrites() uint64 {
	return m.writes.Load()
}

func (m *Metrics) GetHitRate() float64 {
	total := m.references.Load()
	if total == 0 {
		return 0.0
	}
	return float64(m.hits.Load()) / float64(total)
}

// GetScanLength returns the distribution of frames inspected per eviction
func (m *Metrics) GetScanLength() HistogramSnapshot {
	return m.scanLength.Snapshot()
}

func (m *Metrics) GetUptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// LogMetrics logs all metrics using structured logging. The logger is
// expected to carry the run's identifying attributes.
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	scan := m.GetScanLength()

	logger.Info("simulation metrics",
		slog.Group("frame_table",
			slog.Uint64("references", m.GetReferences()),
			slog.Uint64("hits", m.GetHits()),
			slog.Uint64("faults", m.GetFaults()),
			slog.Float64("hit_rate", m.GetHitRate()),
			slog.Uint64("evictions", m.GetEvictions()),
			slog.Uint64("dirty_writes", m.GetWrites()),
		),
		slog.Group("scan_length",
			slog.Uint64("count", scan.Count),
			slog.Float64("mean", scan.Mean),
			slog.Float64("p50", scan.P50),
			slog.Float64("p95", scan.P95),
			slog.Float64("max", scan.Max),
		),
		slog.Duration("elapsed", m.GetUptime()),
	)
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.references.Store(0)
	m.hits.Store(0)
	m.faults.Store(0)
	m.evictions.Store(0)
	m.writes.Store(0)
	m.scanLength.Reset()

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}
