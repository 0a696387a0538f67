// Package metrics records operation latencies in HDR histograms.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure LatencyRecorder implements the interface.
var _ driven.LatencyRecorder = (*LatencyRecorder)(nil)

// Histogram range in microseconds: 1µs to 10,000s, three significant figures.
const (
	minMicros = 1
	maxMicros = 10_000_000_000
	sigFigs   = 3
)

// LatencyRecorder keeps one histogram per operation name.
type LatencyRecorder struct {
	mu    sync.Mutex
	hists map[string]*hdrhistogram.Histogram
}

// NewLatencyRecorder creates an empty recorder.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{hists: make(map[string]*hdrhistogram.Histogram)}
}

// Record adds one observation. Values outside the histogram range are clamped.
func (r *LatencyRecorder) Record(op string, d time.Duration) {
	v := d.Microseconds()
	if v < minMicros {
		v = minMicros
	}
	if v > maxMicros {
		v = maxMicros
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hists[op]
	if !ok {
		h = hdrhistogram.New(minMicros, maxMicros, sigFigs)
		r.hists[op] = h
	}
	_ = h.RecordValue(v) //nolint:errcheck // v is clamped to the range
}

// Snapshot returns a summary per operation, sorted by name.
func (r *LatencyRecorder) Snapshot() []domain.LatencySummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.LatencySummary, 0, len(r.hists))
	for op, h := range r.hists {
		out = append(out, domain.LatencySummary{
			Operation: op,
			Count:     h.TotalCount(),
			Min:       micros(h.Min()),
			Mean:      micros(int64(h.Mean())),
			P50:       micros(h.ValueAtQuantile(50)),
			P95:       micros(h.ValueAtQuantile(95)),
			P99:       micros(h.ValueAtQuantile(99)),
			Max:       micros(h.Max()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}

// Reset drops every histogram.
func (r *LatencyRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hists = make(map[string]*hdrhistogram.Histogram)
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
