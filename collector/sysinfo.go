package collector

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"memsweep/model"
)

// TotalMemoryMB returns installed physical memory in MB. It is queried once
// at startup and treated as immutable for the process lifetime; failure here
// is the one startup fault the caller must handle.
func TotalMemoryMB() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("total memory query: %w", err)
	}
	return float64(vm.Total) / (1024 * 1024), nil
}

// HostIdentity returns the read-only hardware identity for display.
// Fields it cannot discover are left zero; this is never fatal.
func HostIdentity(totalMB float64) model.HostInfo {
	info := model.HostInfo{TotalMB: totalMB}
	hi, err := host.Info()
	if err != nil {
		return info
	}
	info.Hostname = hi.Hostname
	info.Platform = hi.Platform + " " + hi.PlatformVersion
	info.Uptime = time.Duration(hi.Uptime) * time.Second
	return info
}
