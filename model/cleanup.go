package model

// CleanupResult is the outcome of one cleanup invocation. It is held for
// display and then discarded; nothing about a cleanup persists.
type CleanupResult struct {
	Terminated    int     // processes signaled for termination
	FreedMB       float64 // pre-cleanup minus post-cleanup used memory, floored at 0
	SkippedActive int     // candidates skipped for recent CPU activity
}

// CleanupState tracks one cleanup invocation's lifecycle.
type CleanupState int

const (
	CleanupIdle CleanupState = iota
	CleanupRunning
	CleanupCompleted
	CleanupFailed
)

func (s CleanupState) String() string {
	switch s {
	case CleanupRunning:
		return "running"
	case CleanupCompleted:
		return "completed"
	case CleanupFailed:
		return "failed"
	}
	return "idle"
}
