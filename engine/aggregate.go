package engine

import (
	"sort"

	"memsweep/collector"
	"memsweep/identity"
	"memsweep/model"
)

// Aggregate partitions records into application families. Each group's
// members are sorted by memory descending; the groups themselves are sorted
// by summed memory descending with family-key order breaking ties.
func Aggregate(records []model.ProcessRecord) []model.ProcessGroup {
	byKey := make(map[string]*model.ProcessGroup)
	for _, r := range records {
		key, name, icon := identity.Classify(r)
		g, ok := byKey[key]
		if !ok {
			g = &model.ProcessGroup{Key: key, Name: name, Icon: icon}
			byKey[key] = g
		}
		g.Members = append(g.Members, r)
		g.MemoryMB += r.MemoryMB
		g.CPU += r.CPU
	}

	groups := make([]model.ProcessGroup, 0, len(byKey))
	for _, g := range byKey {
		sort.Slice(g.Members, func(i, j int) bool {
			return g.Members[i].MemoryMB > g.Members[j].MemoryMB
		})
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].MemoryMB != groups[j].MemoryMB {
			return groups[i].MemoryMB > groups[j].MemoryMB
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// SortRecords returns the records ordered by memory descending, PID
// breaking ties. The input is not modified.
func SortRecords(records []model.ProcessRecord) []model.ProcessRecord {
	out := make([]model.ProcessRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		if out[i].MemoryMB != out[j].MemoryMB {
			return out[i].MemoryMB > out[j].MemoryMB
		}
		return out[i].PID < out[j].PID
	})
	return out
}

// ComputeStats builds a MemoryStats from raw page counts, best-effort swap,
// and the immutable physical total. Used is total minus free by
// construction; the component fields come from distinct counters and may
// overlap in OS accounting.
func ComputeStats(vm *collector.VMStat, swapUsedMB, totalMB float64) model.MemoryStats {
	free := vm.PageMB(vm.Free)
	return model.MemoryStats{
		TotalMB:      totalMB,
		FreeMB:       free,
		UsedMB:       totalMB - free,
		WiredMB:      vm.PageMB(vm.Wired),
		CompressedMB: vm.PageMB(vm.Compressed),
		ActiveMB:     vm.PageMB(vm.Active),
		InactiveMB:   vm.PageMB(vm.Inactive),
		SwapUsedMB:   swapUsedMB,
	}
}
