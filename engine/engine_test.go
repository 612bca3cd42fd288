package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"memsweep/collector"
	"memsweep/model"
)

// Fakes shared by the engine and cleanup tests.

type fakeProcs struct {
	mu      sync.Mutex
	records []model.ProcessRecord
	err     error
}

func (f *fakeProcs) Processes(ctx context.Context) ([]model.ProcessRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records, f.err
}

func (f *fakeProcs) set(records []model.ProcessRecord, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = records
	f.err = err
}

type fakeMem struct {
	mu  sync.Mutex
	vm  *collector.VMStat
	err error
}

func (f *fakeMem) VMStat(ctx context.Context) (*collector.VMStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vm, f.err
}

func (f *fakeMem) set(vm *collector.VMStat, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vm = vm
	f.err = err
}

type fakeSwap struct{ usedMB float64 }

func (f *fakeSwap) SwapUsedMB(ctx context.Context) float64 { return f.usedMB }

type fakeDispatcher struct {
	mu     sync.Mutex
	levels []AlertLevel
}

func (f *fakeDispatcher) Dispatch(level AlertLevel, title, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels = append(f.levels, level)
}

func (f *fakeDispatcher) fired() []AlertLevel {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]AlertLevel, len(f.levels))
	copy(out, f.levels)
	return out
}

type killLog struct {
	mu   sync.Mutex
	pids []int32
}

func (k *killLog) kill(pid int32) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pids = append(k.pids, pid)
	return nil
}

func (k *killLog) killed() []int32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]int32, len(k.pids))
	copy(out, k.pids)
	return out
}

// vmFreeMB builds page counts for the given free MB using 1 MB pages.
func vmFreeMB(freeMB uint64) *collector.VMStat {
	return &collector.VMStat{PageSize: 1024 * 1024, Free: freeMB}
}

func newTestEngine(totalMB float64, d Dispatcher) (*Engine, *fakeProcs, *fakeMem, *killLog) {
	procs := &fakeProcs{}
	mem := &fakeMem{}
	kills := &killLog{}
	e := newEngine(totalMB, d)
	e.procs = procs
	e.memory = mem
	e.swap = &fakeSwap{}
	e.terminate = kills.kill
	e.sleep = func(time.Duration) {}
	return e, procs, mem, kills
}

func TestNoDataYet(t *testing.T) {
	e, _, _, _ := newTestEngine(1024, nil)
	if e.Stats() != nil {
		t.Fatalf("stats should be nil before the first sample")
	}
	if len(e.Groups()) != 0 || len(e.Records()) != 0 {
		t.Fatalf("groups/records should be empty before the first sample")
	}
	snap := e.Snapshot()
	if snap.Stats != nil || len(snap.History) != 0 {
		t.Fatalf("snapshot before first cycle should be empty, got %+v", snap)
	}
}

func TestRefreshPublishesState(t *testing.T) {
	e, procs, mem, _ := newTestEngine(1024, nil)
	procs.set([]model.ProcessRecord{
		{PID: 1, Name: "Slack", MemoryMB: 400, User: "alice"},
		{PID: 2, Name: "Google Chrome", MemoryMB: 900, User: "alice"},
	}, nil)
	mem.set(vmFreeMB(512), nil)

	e.Refresh(context.Background())

	groups := e.Groups()
	if len(groups) != 2 || groups[0].Key != "chrome" {
		t.Fatalf("groups = %+v", groups)
	}
	records := e.Records()
	if len(records) != 2 || records[0].PID != 2 {
		t.Fatalf("records not memory-descending: %+v", records)
	}
	stats := e.Stats()
	if stats == nil || stats.UsedMB != 512 || stats.UsedPercent() != 50 {
		t.Fatalf("stats = %+v", stats)
	}
	if series := e.History.Percents(); len(series) != 1 || series[0] != 50 {
		t.Fatalf("history = %v, want [50]", series)
	}
	if e.LastRefresh().IsZero() {
		t.Fatalf("last refresh not set")
	}
}

func TestRefreshKeepsStaleDataOnQueryFailure(t *testing.T) {
	e, procs, mem, _ := newTestEngine(1024, nil)
	procs.set([]model.ProcessRecord{{PID: 1, Name: "Slack", MemoryMB: 400, User: "alice"}}, nil)
	mem.set(vmFreeMB(512), nil)
	e.Refresh(context.Background())

	// Both queries fail on the next cycle; the previous values stay
	// published and the cycle still completes.
	procs.set(nil, errors.New("ps timed out"))
	mem.set(nil, errors.New("vm_stat timed out"))
	e.Refresh(context.Background())

	if got := e.Groups(); len(got) != 1 || got[0].Key != "slack" {
		t.Fatalf("stale groups lost: %+v", got)
	}
	stats := e.Stats()
	if stats == nil || stats.UsedMB != 512 {
		t.Fatalf("stale stats lost: %+v", stats)
	}
	// The stale stats are re-recorded, so history grows.
	if series := e.History.Percents(); len(series) != 2 {
		t.Fatalf("history = %v, want two samples", series)
	}
}

func TestRefreshDispatchesAlerts(t *testing.T) {
	d := &fakeDispatcher{}
	e, procs, mem, _ := newTestEngine(1024, d)
	procs.set(nil, nil)

	mem.set(vmFreeMB(143), nil) // used 881/1024 = 86%
	e.Refresh(context.Background())
	mem.set(vmFreeMB(92), nil) // 91%
	e.Refresh(context.Background())

	fired := d.fired()
	if len(fired) != 2 || fired[0] != AlertHigh || fired[1] != AlertCritical {
		t.Fatalf("fired = %v, want [high critical]", fired)
	}
}

func TestSnapshotTrackedFamilies(t *testing.T) {
	e, procs, mem, _ := newTestEngine(1024, nil)
	procs.set([]model.ProcessRecord{
		{PID: 1, Name: "Google Chrome", MemoryMB: 500, User: "alice"},
		{PID: 2, Name: "Google Chrome Helper", MemoryMB: 250, User: "alice"},
		{PID: 3, Name: "Safari", MemoryMB: 300, User: "alice"},
	}, nil)
	mem.set(vmFreeMB(512), nil)
	e.Refresh(context.Background())

	snap := e.Snapshot()
	if snap.ChromeCount != 2 || snap.ChromeMB != 750 {
		t.Fatalf("chrome counters = %d/%v", snap.ChromeCount, snap.ChromeMB)
	}
	if snap.SafariCount != 1 || snap.SafariMB != 300 {
		t.Fatalf("safari counters = %d/%v", snap.SafariCount, snap.SafariMB)
	}
	if snap.Stats == nil || len(snap.Groups) != 3 {
		t.Fatalf("snapshot incomplete: %+v", snap)
	}
}

func TestTrendFor(t *testing.T) {
	e, procs, mem, _ := newTestEngine(1024, nil)
	mem.set(vmFreeMB(512), nil)

	procs.set([]model.ProcessRecord{{PID: 1, Name: "Google Chrome", MemoryMB: 500, User: "alice"}}, nil)
	e.Refresh(context.Background())
	procs.set([]model.ProcessRecord{{PID: 1, Name: "Google Chrome", MemoryMB: 600, User: "alice"}}, nil)
	e.Refresh(context.Background())

	if got := e.TrendFor("chrome"); got != model.TrendIncreasing {
		t.Fatalf("trend = %s, want increasing", got)
	}
	if got := e.TrendFor("slack"); got != model.TrendStable {
		t.Fatalf("missing family trend = %s, want stable", got)
	}
}
