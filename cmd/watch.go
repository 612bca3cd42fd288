package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"memsweep/engine"
)

// runWatch prints a plain-text snapshot every interval, for terminals
// without a usable TTY.
func runWatch(ctx context.Context, eng *engine.Engine, interval time.Duration, count int) error {
	iterations := 0
	for {
		eng.Refresh(ctx)
		printSnapshot(eng)

		iterations++
		if count > 0 && iterations >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func printSnapshot(eng *engine.Engine) {
	snap := eng.Snapshot()
	fmt.Printf("=== memsweep %s ===\n", snap.LastRefresh.Format("15:04:05"))
	if snap.Stats == nil {
		fmt.Println("no memory data yet")
	} else {
		s := snap.Stats
		fmt.Printf("memory: %s / %s used (%d%%, %s)\n",
			humanize.IBytes(uint64(s.UsedMB*1024*1024)),
			humanize.IBytes(uint64(s.TotalMB*1024*1024)),
			s.UsedPercent(), s.Pressure())
		fmt.Printf("wired %s  compressed %s  swap %s\n",
			humanize.IBytes(uint64(s.WiredMB*1024*1024)),
			humanize.IBytes(uint64(s.CompressedMB*1024*1024)),
			humanize.IBytes(uint64(s.SwapUsedMB*1024*1024)))
	}
	limit := 10
	if len(snap.Groups) < limit {
		limit = len(snap.Groups)
	}
	for _, g := range snap.Groups[:limit] {
		fmt.Printf("%8.0f MB  %3d proc  %-10s  %s\n",
			g.MemoryMB, g.Count(), eng.TrendFor(g.Key), g.Name)
	}
	fmt.Println()
}
