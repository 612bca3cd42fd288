package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"memsweep/collector"
	"memsweep/config"
	"memsweep/engine"
	"memsweep/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `memsweep v%s — memory monitor and cleaner for macOS

Usage:
  memsweep [OPTIONS] [INTERVAL]

Modes:
  (default)         Interactive TUI (bubbletea, fullscreen)
  -watch            Plain-text output mode with auto-refresh
  -json             Single JSON snapshot to stdout, then exit
  -clean            Run one smart cleanup, print the result, then exit
  -version          Print version and exit

Options:
  -interval N       Refresh interval in seconds (default: 5)
  -count N          Number of iterations for -watch mode (0 = infinite)

Positional:
  INTERVAL          First positional arg sets interval: memsweep 10

Examples:
  memsweep                     Interactive TUI, 5s refresh
  memsweep 10                  Interactive TUI, 10s refresh
  memsweep -watch -count 3     Three plain-text snapshots, then exit
  memsweep -json | jq '.Stats.UsedMB'
  memsweep -clean
`, Version)
}

// Run parses flags and starts the application.
func Run() error {
	cfg := config.Load()

	var (
		intervalSec int
		jsonMode    bool
		watchMode   bool
		cleanMode   bool
		watchCount  int
		showVersion bool
	)
	flag.IntVar(&intervalSec, "interval", cfg.IntervalSec, "Refresh interval in seconds")
	flag.BoolVar(&jsonMode, "json", false, "Output a single JSON snapshot and exit")
	flag.BoolVar(&watchMode, "watch", false, "Plain-text output mode (no TUI)")
	flag.BoolVar(&cleanMode, "clean", false, "Run one smart cleanup and exit")
	flag.IntVar(&watchCount, "count", 0, "Number of iterations for -watch (0=infinite)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("memsweep v%s\n", Version)
		return nil
	}

	// Support positional arg for interval: `memsweep 10`.
	if args := flag.Args(); len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			intervalSec = n
		}
	}
	if intervalSec <= 0 {
		intervalSec = 5
	}
	interval := time.Duration(intervalSec) * time.Second

	totalMB, err := collector.TotalMemoryMB()
	if err != nil {
		return err
	}

	notifier := engine.NewNotifier(engine.AlertConfig{
		Webhook: cfg.Alerts.Webhook,
		Command: cfg.Alerts.Command,
	})
	eng := engine.New(totalMB, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case jsonMode:
		eng.Refresh(ctx)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(eng.Snapshot())
	case cleanMode:
		eng.Refresh(ctx)
		res := eng.SmartCleanup(ctx)
		fmt.Printf("terminated %d processes, freed %.0f MB (%d skipped as active)\n",
			res.Terminated, res.FreedMB, res.SkippedActive)
		return nil
	case watchMode:
		return runWatch(ctx, eng, interval, watchCount)
	}

	go eng.Run(ctx, interval)
	host := collector.HostIdentity(totalMB)
	prog := tea.NewProgram(ui.New(eng, cfg, host, interval), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = prog.Run()
	return err
}
