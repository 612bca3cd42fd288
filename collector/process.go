package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"memsweep/model"
)

// minProcessMB filters sampling noise: records at or below this resident
// size are not worth tracking or terminating.
const minProcessMB = 1.0

// ProcessCollector samples the live process table via ps.
type ProcessCollector struct {
	Timeout time.Duration
}

func (p *ProcessCollector) Name() string { return "process" }

// Processes returns one record per live process, unsorted. A query failure
// or timeout returns an error and the engine keeps the previous cycle's
// records.
func (p *ProcessCollector) Processes(ctx context.Context) ([]model.ProcessRecord, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	out, err := Output(ctx, timeout, "ps", "axo", "pid=,rss=,pcpu=,user=,comm=")
	if err != nil {
		return nil, fmt.Errorf("ps query: %w", err)
	}
	return ParseProcessTable(out), nil
}

// ParseProcessTable parses ps output rows of (pid, rss_kb, cpu, user,
// command). The command may contain spaces and is rejoined. A line missing
// any of the five fields, or whose numeric fields fail to parse, is dropped
// without emitting a partial record.
func ParseProcessTable(out string) []model.ProcessRecord {
	var records []model.ProcessRecord
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		pid, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil || pid <= 0 {
			continue
		}
		rssKB, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		cpu, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		memMB := rssKB / 1024
		if memMB <= minProcessMB {
			continue
		}
		records = append(records, model.ProcessRecord{
			PID:      int32(pid),
			Name:     strings.Join(fields[4:], " "),
			MemoryMB: memMB,
			CPU:      cpu,
			User:     fields[3],
		})
	}
	return records
}
