package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"memsweep/collector"
	"memsweep/model"
)

// ProcessSource yields the current process table.
type ProcessSource interface {
	Processes(ctx context.Context) ([]model.ProcessRecord, error)
}

// MemorySource yields the current virtual-memory page counters.
type MemorySource interface {
	VMStat(ctx context.Context) (*collector.VMStat, error)
}

// SwapSource yields used swap in MB, zero on any failure.
type SwapSource interface {
	SwapUsedMB(ctx context.Context) float64
}

// Engine owns the published monitoring state. All mutation funnels through
// Refresh and the cleanup actions, serialized by refreshMu; readers take
// copies of the last-published snapshot and never block the writer.
type Engine struct {
	procs    ProcessSource
	memory   MemorySource
	swap     SwapSource
	notifier Dispatcher

	terminate func(pid int32) error
	sleep     func(d time.Duration)

	History *History
	alerts  AlertState

	totalMB float64

	refreshMu  sync.Mutex // serializes refresh/cleanup cycles
	refreshing atomic.Bool

	mu           sync.RWMutex // guards published state below
	groups       []model.ProcessGroup
	records      []model.ProcessRecord
	stats        *model.MemoryStats
	lastRefresh  time.Time
	cleanupState model.CleanupState
	purgeDeltaMB map[string]float64
}

// New creates an engine wired to the live OS collectors. totalMB is the
// startup physical-memory total, immutable for the process lifetime.
func New(totalMB float64, notifier Dispatcher) *Engine {
	e := newEngine(totalMB, notifier)
	e.procs = &collector.ProcessCollector{}
	e.memory = &collector.MemoryCollector{}
	e.swap = &collector.SwapCollector{}
	return e
}

func newEngine(totalMB float64, notifier Dispatcher) *Engine {
	return &Engine{
		notifier:     notifier,
		terminate:    terminateProcess,
		sleep:        time.Sleep,
		History:      NewHistory(HistoryCapacity),
		totalMB:      totalMB,
		purgeDeltaMB: make(map[string]float64),
	}
}

// Refresh runs one sampling cycle: snapshot family memory for trends, query
// the process table and memory counters, aggregate, publish groups and
// stats together, append to history, and check alert thresholds. Query
// failures degrade to the previous cycle's values for that metric; Refresh
// itself never fails.
func (e *Engine) Refresh(ctx context.Context) {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()
	e.refreshing.Store(true)
	defer e.refreshing.Store(false)

	e.History.SnapshotFamilies(e.Groups())

	records, procErr := e.procs.Processes(ctx)
	vm, memErr := e.memory.VMStat(ctx)
	swapMB := e.swap.SwapUsedMB(ctx)

	var groups []model.ProcessGroup
	var sorted []model.ProcessRecord
	if procErr == nil {
		groups = Aggregate(records)
		sorted = SortRecords(records)
	}
	var stats *model.MemoryStats
	if memErr == nil {
		s := ComputeStats(vm, swapMB, e.totalMB)
		stats = &s
	}

	e.mu.Lock()
	if procErr == nil {
		e.groups = groups
		e.records = sorted
	}
	if memErr == nil {
		e.stats = stats
	}
	published := e.stats
	e.lastRefresh = time.Now()
	e.mu.Unlock()

	if published == nil {
		return
	}
	pct := published.UsedPercent()
	e.History.Record(pct)
	e.checkThresholds(pct)
}

func (e *Engine) checkThresholds(pct int) {
	level := e.alerts.Update(pct)
	if level == AlertNone || e.notifier == nil {
		return
	}
	switch level {
	case AlertCritical:
		e.notifier.Dispatch(level, "Memory critically low",
			fmt.Sprintf("Memory usage reached %d%%. Run a cleanup or close large applications.", pct))
	case AlertHigh:
		e.notifier.Dispatch(level, "Memory usage high",
			fmt.Sprintf("Memory usage reached %d%%. Consider closing unused applications.", pct))
	}
}

// Groups returns the published family groups, memory descending.
func (e *Engine) Groups() []model.ProcessGroup {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.ProcessGroup, len(e.groups))
	copy(out, e.groups)
	return out
}

// Records returns the published flat process list, memory descending.
func (e *Engine) Records() []model.ProcessRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.ProcessRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Stats returns a copy of the latest memory stats, or nil before the first
// successful sample.
func (e *Engine) Stats() *model.MemoryStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stats == nil {
		return nil
	}
	s := *e.stats
	return &s
}

// Refreshing reports whether a refresh cycle is in flight.
func (e *Engine) Refreshing() bool { return e.refreshing.Load() }

// LastRefresh returns the time the state was last published.
func (e *Engine) LastRefresh() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastRefresh
}

// CleanupState returns the most recent cleanup invocation's state.
func (e *Engine) CleanupState() model.CleanupState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cleanupState
}

// PurgeDeltaMB returns the before-minus-after memory delta recorded by the
// last purge of the given family.
func (e *Engine) PurgeDeltaMB(key string) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	d, ok := e.purgeDeltaMB[key]
	return d, ok
}

// TrendFor classifies the family's memory movement since the previous cycle.
func (e *Engine) TrendFor(key string) model.Trend {
	e.mu.RLock()
	var currentMB float64
	present := false
	for _, g := range e.groups {
		if g.Key == key {
			currentMB = g.MemoryMB
			present = true
			break
		}
	}
	e.mu.RUnlock()
	return e.History.Trend(key, currentMB, present)
}

// Snapshot assembles the full published view for the presentation layer.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.RLock()
	snap := model.Snapshot{
		Timestamp:   time.Now(),
		Groups:      make([]model.ProcessGroup, len(e.groups)),
		Records:     make([]model.ProcessRecord, len(e.records)),
		LastRefresh: e.lastRefresh,
	}
	copy(snap.Groups, e.groups)
	copy(snap.Records, e.records)
	if e.stats != nil {
		s := *e.stats
		snap.Stats = &s
	}
	e.mu.RUnlock()

	snap.Refreshing = e.refreshing.Load()
	snap.History = e.History.Percents()
	for _, g := range snap.Groups {
		switch g.Key {
		case "chrome":
			snap.ChromeCount = g.Count()
			snap.ChromeMB = g.MemoryMB
		case "safari":
			snap.SafariCount = g.Count()
			snap.SafariMB = g.MemoryMB
		}
	}
	return snap
}
