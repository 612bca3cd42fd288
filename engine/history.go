package engine

import (
	"sync"

	"memsweep/model"
)

// HistoryCapacity bounds the used-percent series (5 minutes at 5s ticks).
const HistoryCapacity = 60

// trendThresholdMB is the absolute per-family delta that counts as a trend.
const trendThresholdMB = 50.0

// History keeps a bounded ring of used-percent samples plus the previous
// cycle's per-family memory, read by the next cycle for trend comparison.
type History struct {
	mu       sync.RWMutex
	buf      []int
	head     int
	size     int
	cap      int
	familyMB map[string]float64
}

// NewHistory creates a history ring with the given capacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &History{
		buf:      make([]int, capacity),
		cap:      capacity,
		familyMB: make(map[string]float64),
	}
}

// Record appends a used-percent sample, evicting the oldest at capacity.
func (h *History) Record(pct int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = pct
	h.head = (h.head + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Percents returns a copy of the series, oldest first.
func (h *History) Percents() []int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]int, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.head-h.size+i+h.cap)%h.cap]
	}
	return out
}

// SnapshotFamilies records each group's summed memory as the "previous
// cycle" reference. Called at the start of a refresh, before new data is
// collected, so trends always compare against the snapshot immediately
// before now.
func (h *History) SnapshotFamilies(groups []model.ProcessGroup) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.familyMB = make(map[string]float64, len(groups))
	for _, g := range groups {
		h.familyMB[g.Key] = g.MemoryMB
	}
}

// Trend compares a family's current memory against the previous cycle.
// present is false when the family is absent from the latest aggregation;
// either absence yields TrendStable.
func (h *History) Trend(key string, currentMB float64, present bool) model.Trend {
	h.mu.RLock()
	prev, hasPrev := h.familyMB[key]
	h.mu.RUnlock()
	if !present || !hasPrev {
		return model.TrendStable
	}
	switch delta := currentMB - prev; {
	case delta > trendThresholdMB:
		return model.TrendIncreasing
	case delta < -trendThresholdMB:
		return model.TrendDecreasing
	}
	return model.TrendStable
}

// PreviousMB returns the previous cycle's memory for a family, if recorded.
func (h *History) PreviousMB(key string) (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	mb, ok := h.familyMB[key]
	return mb, ok
}
