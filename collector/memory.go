package collector

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"memsweep/util"
)

// DefaultPageSize is the Apple Silicon page size, used when vm_stat output
// does not announce one.
const DefaultPageSize = 16384

// VMStat holds raw page counts from one vm_stat query.
type VMStat struct {
	PageSize   uint64
	Free       uint64
	Active     uint64
	Inactive   uint64
	Wired      uint64
	Compressed uint64
}

// PageMB converts a page count to megabytes using the discovered page size.
func (v *VMStat) PageMB(pages uint64) float64 {
	return float64(pages*v.PageSize) / (1024 * 1024)
}

// MemoryCollector samples virtual-memory counters via vm_stat.
type MemoryCollector struct {
	Timeout time.Duration
}

func (m *MemoryCollector) Name() string { return "memory" }

// VMStat returns the current page counters. On failure the engine keeps
// the previous cycle's stats.
func (m *MemoryCollector) VMStat(ctx context.Context) (*VMStat, error) {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	out, err := Output(ctx, timeout, "vm_stat")
	if err != nil {
		return nil, fmt.Errorf("vm_stat query: %w", err)
	}
	return ParseVMStat(out), nil
}

var pageSizeRe = regexp.MustCompile(`page size of (\d+) bytes`)

// ParseVMStat extracts the page size and the free/active/inactive/wired/
// compressed page counts from vm_stat output. Counters it cannot find stay
// zero; a missing page-size header falls back to DefaultPageSize so the MB
// arithmetic stays well-defined.
func ParseVMStat(out string) *VMStat {
	vm := &VMStat{PageSize: DefaultPageSize}
	if m := pageSizeRe.FindStringSubmatch(out); m != nil {
		if sz := util.ParseUint64(m[1]); sz > 0 {
			vm.PageSize = sz
		}
	}
	kv := util.ParseKeyValueLines(out)
	vm.Free = util.ParseUint64(kv["Pages free"])
	vm.Active = util.ParseUint64(kv["Pages active"])
	vm.Inactive = util.ParseUint64(kv["Pages inactive"])
	vm.Wired = util.ParseUint64(kv["Pages wired down"])
	vm.Compressed = util.ParseUint64(kv["Pages occupied by compressor"])
	return vm
}
