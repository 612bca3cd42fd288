package model

import "time"

// Snapshot is the engine's published state: everything the presentation
// layer reads in one consistent view. Groups and Stats are always from the
// same refresh cycle. Stats is nil until the first successful memory sample.
type Snapshot struct {
	Timestamp   time.Time
	Groups      []ProcessGroup
	Records     []ProcessRecord // flat list, memory descending
	Stats       *MemoryStats
	History     []int // used-percent series, oldest first
	Refreshing  bool
	LastRefresh time.Time

	// Convenience counters for the two families the UI makes
	// recommendations about.
	ChromeCount int
	ChromeMB    float64
	SafariCount int
	SafariMB    float64
}

// HostInfo is the read-only hardware identity shown in the UI header.
type HostInfo struct {
	Hostname string
	Platform string
	Uptime   time.Duration
	TotalMB  float64
}
