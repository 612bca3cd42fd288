package collector

import (
	"context"
	"os/exec"
	"time"
)

// Output runs a command with a wall-clock deadline and returns its stdout.
// When the deadline passes the child is killed and an error is returned;
// callers treat that as "no data for this cycle".
func Output(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
