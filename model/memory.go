package model

// MemoryStats is one point-in-time view of system memory, all values in MB.
// Used is derived as total minus free; the component counters (wired,
// compressed, active, inactive) come from distinct OS counters and are not
// reconciled against it.
type MemoryStats struct {
	TotalMB      float64
	UsedMB       float64
	FreeMB       float64
	WiredMB      float64
	CompressedMB float64
	ActiveMB     float64
	InactiveMB   float64
	SwapUsedMB   float64
}

// UsedPercent returns used/total as a truncated integer percentage.
func (m MemoryStats) UsedPercent() int {
	if m.TotalMB <= 0 {
		return 0
	}
	return int(m.UsedMB * 100 / m.TotalMB)
}

// PressureLevel is a qualitative label for used-memory percentage.
type PressureLevel int

const (
	PressureNormal PressureLevel = iota
	PressureModerate
	PressureHigh
	PressureCritical
)

// Pressure maps the used percentage onto a pressure level. Boundaries are
// inclusive: 50 is Moderate, 70 is High, 85 is Critical.
func (m MemoryStats) Pressure() PressureLevel {
	pct := m.UsedPercent()
	switch {
	case pct >= 85:
		return PressureCritical
	case pct >= 70:
		return PressureHigh
	case pct >= 50:
		return PressureModerate
	}
	return PressureNormal
}

func (p PressureLevel) String() string {
	switch p {
	case PressureModerate:
		return "Moderate"
	case PressureHigh:
		return "High"
	case PressureCritical:
		return "Critical"
	}
	return "Normal"
}

// Description returns a human-readable summary for display.
func (p PressureLevel) Description() string {
	switch p {
	case PressureModerate:
		return "Memory usage is moderate"
	case PressureHigh:
		return "Memory pressure is high — consider closing unused apps"
	case PressureCritical:
		return "Memory pressure is critical — cleanup recommended"
	}
	return "Memory pressure is normal"
}
