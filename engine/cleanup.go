package engine

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"memsweep/identity"
	"memsweep/model"
)

const (
	// activityCPUPct is the safety threshold: smart cleanup never
	// terminates a process consuming more CPU than this.
	activityCPUPct = 0.1
	// minCleanupMB is the floor below which terminating is not worth it.
	minCleanupMB = 50.0
	// browserRetain keeps the first N members of browser-like families so
	// active tabs survive a smart cleanup.
	browserRetain = 5
	// settleDelay lets terminated processes exit and release pages before
	// the post-cleanup re-measure.
	settleDelay = 1500 * time.Millisecond
)

// protectedNames shields core system families from smart cleanup, matched
// by substring against the lower-cased group name. memsweep protects itself.
var protectedNames = []string{
	"kernel_task",
	"launchd",
	"windowserver",
	"loginwindow",
	"finder",
	"dock",
	"systemuiserver",
	"controlcenter",
	"notificationcenter",
	"coreaudiod",
	"mds",
	"memsweep",
}

// terminateProcess requests graceful termination (SIGTERM). The process may
// ignore it; the caller only re-measures memory afterward.
func terminateProcess(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return err
	}
	return p.Terminate()
}

// isProtected reports whether smart cleanup must leave the group alone:
// known system families by name, plus any group whose main process belongs
// to a system account.
func isProtected(g model.ProcessGroup) bool {
	lower := strings.ToLower(g.Name)
	for _, name := range protectedNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return len(g.Members) > 0 && g.Members[0].IsSystemProcess()
}

func (e *Engine) setCleanupState(s model.CleanupState) {
	e.mu.Lock()
	e.cleanupState = s
	e.mu.Unlock()
}

// PurgeFamily terminates all but the top retain members of the family,
// memory descending, with no activity check. It returns the number of
// processes signaled; the family's before-minus-after memory delta is
// measured after the settle delay and exposed via PurgeDeltaMB.
func (e *Engine) PurgeFamily(ctx context.Context, key string, retain int) int {
	var target *model.ProcessGroup
	for _, g := range e.Groups() {
		if g.Key == key {
			target = &g
			break
		}
	}
	if target == nil {
		return 0
	}
	if retain < 0 {
		retain = 0
	}

	beforeMB := target.MemoryMB
	terminated := 0
	for i := retain; i < len(target.Members); i++ {
		_ = e.terminate(target.Members[i].PID)
		terminated++
	}
	if terminated == 0 {
		return 0
	}

	go func() {
		e.sleep(settleDelay)
		e.Refresh(ctx)
		var afterMB float64
		for _, g := range e.Groups() {
			if g.Key == key {
				afterMB = g.MemoryMB
				break
			}
		}
		e.mu.Lock()
		e.purgeDeltaMB[key] = beforeMB - afterMB
		e.mu.Unlock()
	}()
	return terminated
}

// TrimHelpers is PurgeFamily addressed by family display name instead of
// key, for families with many low-value helper processes.
func (e *Engine) TrimHelpers(ctx context.Context, name string, retain int) int {
	lower := strings.ToLower(name)
	for _, g := range e.Groups() {
		if strings.ToLower(g.Name) == lower || strings.ToLower(g.Key) == lower {
			return e.PurgeFamily(ctx, g.Key, retain)
		}
	}
	return 0
}

// SmartCleanup walks every non-protected group and terminates idle,
// non-primary, non-trivial members: index 0 is always retained, browser
// families keep their first five members, anything above the activity CPU
// threshold is skipped and counted, anything under the memory floor is
// skipped. After signaling it waits the settle delay, re-samples, and
// reports freed memory as the drop in used MB, floored at zero.
func (e *Engine) SmartCleanup(ctx context.Context) model.CleanupResult {
	e.setCleanupState(model.CleanupRunning)

	preStats := e.Stats()
	groups := e.Groups()
	if preStats == nil || len(groups) == 0 {
		e.setCleanupState(model.CleanupFailed)
		return model.CleanupResult{}
	}

	var result model.CleanupResult
	for _, g := range groups {
		if isProtected(g) {
			continue
		}
		keep := 1
		if identity.IsBrowserFamily(g.Key) {
			keep = browserRetain
		}
		for i, m := range g.Members {
			if i < keep {
				continue
			}
			if m.CPU > activityCPUPct {
				result.SkippedActive++
				continue
			}
			if m.MemoryMB < minCleanupMB {
				continue
			}
			_ = e.terminate(m.PID)
			result.Terminated++
		}
	}

	e.sleep(settleDelay)
	e.Refresh(ctx)

	if post := e.Stats(); post != nil {
		if freed := preStats.UsedMB - post.UsedMB; freed > 0 {
			result.FreedMB = freed
		}
	}
	e.setCleanupState(model.CleanupCompleted)
	return result
}

// TerminateProcess signals a single process by identifier. Errors are
// absorbed per the termination contract.
func (e *Engine) TerminateProcess(pid int32) {
	_ = e.terminate(pid)
}
