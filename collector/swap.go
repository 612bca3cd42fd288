package collector

import (
	"context"
	"regexp"
	"time"

	"memsweep/util"
)

// SwapCollector samples swap usage via sysctl. Swap is best-effort: the
// query runs with a short deadline and any failure reports zero rather than
// holding up the cycle.
type SwapCollector struct {
	Timeout time.Duration
}

func (s *SwapCollector) Name() string { return "swap" }

var swapUsedRe = regexp.MustCompile(`used = ([0-9.]+)M`)

// SwapUsedMB returns used swap in MB, or 0 when the query fails or the
// output has no "used = <n>M" field.
func (s *SwapCollector) SwapUsedMB(ctx context.Context) float64 {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	out, err := Output(ctx, timeout, "sysctl", "vm.swapusage")
	if err != nil {
		return 0
	}
	return ParseSwapUsage(out)
}

// ParseSwapUsage extracts used swap MB from sysctl vm.swapusage output.
func ParseSwapUsage(out string) float64 {
	m := swapUsedRe.FindStringSubmatch(out)
	if m == nil {
		return 0
	}
	return util.ParseFloat64(m[1])
}
