package model

import (
	"path/filepath"
	"strings"
)

// ProcessRecord is one live process as seen in a single sampling cycle.
// Records are never mutated; the whole set is replaced on every refresh.
type ProcessRecord struct {
	PID      int32
	Name     string // raw command field from the process table
	MemoryMB float64
	CPU      float64
	User     string
}

// DisplayName returns the executable basename when the command is a path.
func (p ProcessRecord) DisplayName() string {
	name := strings.TrimSpace(p.Name)
	if strings.Contains(name, "/") {
		return filepath.Base(name)
	}
	return name
}

// systemUsers are non-prefix reserved accounts; macOS service accounts
// additionally use a leading underscore.
var systemUsers = map[string]bool{
	"root":   true,
	"daemon": true,
	"nobody": true,
}

// IsSystemProcess reports whether the record is owned by a system account.
func (p ProcessRecord) IsSystemProcess() bool {
	return systemUsers[p.User] || strings.HasPrefix(p.User, "_")
}

// ProcessGroup aggregates the records of one application family.
// Members are ordered by memory descending; index 0 is treated as the
// family's main process.
type ProcessGroup struct {
	Key      string
	Name     string
	Icon     string
	Members  []ProcessRecord
	MemoryMB float64
	CPU      float64
}

// Count returns the number of member processes.
func (g ProcessGroup) Count() int { return len(g.Members) }

// Trend classifies how a family's memory moved between two cycles.
type Trend int

const (
	TrendStable Trend = iota
	TrendIncreasing
	TrendDecreasing
)

func (t Trend) String() string {
	switch t {
	case TrendIncreasing:
		return "increasing"
	case TrendDecreasing:
		return "decreasing"
	}
	return "stable"
}
