package engine

import (
	"context"
	"time"
)

// DefaultInterval is the automatic refresh period.
const DefaultInterval = 5 * time.Second

// Run refreshes immediately and then on every tick until the context is
// canceled. On-demand refreshes triggered elsewhere interleave safely; the
// engine serializes cycles internally.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	e.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Refresh(ctx)
		}
	}
}
