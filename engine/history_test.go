package engine

import (
	"testing"

	"memsweep/model"
)

func TestHistoryFIFOEviction(t *testing.T) {
	h := NewHistory(HistoryCapacity)
	for i := 0; i <= HistoryCapacity; i++ { // 61 insertions
		h.Record(i)
	}
	if h.Len() != HistoryCapacity {
		t.Fatalf("len = %d, want %d", h.Len(), HistoryCapacity)
	}
	series := h.Percents()
	if len(series) != HistoryCapacity {
		t.Fatalf("series len = %d, want %d", len(series), HistoryCapacity)
	}
	if series[0] != 1 {
		t.Fatalf("oldest = %d, want 1 (original first entry evicted)", series[0])
	}
	if series[len(series)-1] != HistoryCapacity {
		t.Fatalf("newest = %d, want %d", series[len(series)-1], HistoryCapacity)
	}
}

func TestHistoryOrder(t *testing.T) {
	h := NewHistory(4)
	for _, v := range []int{10, 20, 30} {
		h.Record(v)
	}
	series := h.Percents()
	if len(series) != 3 || series[0] != 10 || series[2] != 30 {
		t.Fatalf("series = %v, want [10 20 30]", series)
	}
}

func TestTrend(t *testing.T) {
	h := NewHistory(HistoryCapacity)
	h.SnapshotFamilies([]model.ProcessGroup{
		{Key: "chrome", MemoryMB: 1000},
		{Key: "slack", MemoryMB: 400},
		{Key: "spotify", MemoryMB: 300},
	})

	cases := []struct {
		name    string
		key     string
		current float64
		present bool
		want    model.Trend
	}{
		{"grew_past_threshold", "chrome", 1051, true, model.TrendIncreasing},
		{"grew_at_threshold", "chrome", 1050, true, model.TrendStable},
		{"shrank_past_threshold", "slack", 349, true, model.TrendDecreasing},
		{"shrank_at_threshold", "slack", 350, true, model.TrendStable},
		{"unchanged", "spotify", 300, true, model.TrendStable},
		{"no_previous", "figma", 900, true, model.TrendStable},
		{"no_current", "chrome", 0, false, model.TrendStable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := h.Trend(c.key, c.current, c.present); got != c.want {
				t.Fatalf("Trend = %s, want %s", got, c.want)
			}
		})
	}
}

func TestSnapshotFamiliesReplacesPrevious(t *testing.T) {
	h := NewHistory(HistoryCapacity)
	h.SnapshotFamilies([]model.ProcessGroup{{Key: "chrome", MemoryMB: 1000}})
	h.SnapshotFamilies([]model.ProcessGroup{{Key: "slack", MemoryMB: 200}})

	if _, ok := h.PreviousMB("chrome"); ok {
		t.Fatalf("chrome should be gone after the next cycle's snapshot")
	}
	if mb, ok := h.PreviousMB("slack"); !ok || mb != 200 {
		t.Fatalf("slack previous = %v/%v, want 200/true", mb, ok)
	}
}
