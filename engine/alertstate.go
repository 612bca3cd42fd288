package engine

// Alert thresholds. An alert fires when usage crosses a threshold upward;
// the fired state only resets once usage falls below resetBelowPct, so a
// value oscillating around a single cutoff cannot flap.
const (
	highAlertPct     = 85
	criticalAlertPct = 90
	resetBelowPct    = 80
)

// AlertLevel is the severity of a threshold-crossing event.
type AlertLevel int

const (
	AlertNone AlertLevel = iota
	AlertHigh
	AlertCritical
)

func (a AlertLevel) String() string {
	switch a {
	case AlertHigh:
		return "high"
	case AlertCritical:
		return "critical"
	}
	return "none"
}

// AlertState tracks which thresholds have already fired. Owned by the
// refresh path; not safe for concurrent use on its own.
type AlertState struct {
	highFired     bool
	criticalFired bool
}

// Update processes one used-percent sample and returns the alert to emit,
// or AlertNone. A critical crossing also marks the high threshold as fired
// so the same ascent does not produce both alerts.
func (as *AlertState) Update(pct int) AlertLevel {
	if pct < resetBelowPct {
		as.highFired = false
		as.criticalFired = false
		return AlertNone
	}
	if pct >= criticalAlertPct && !as.criticalFired {
		as.criticalFired = true
		as.highFired = true
		return AlertCritical
	}
	if pct >= highAlertPct && !as.highFired {
		as.highFired = true
		return AlertHigh
	}
	return AlertNone
}
