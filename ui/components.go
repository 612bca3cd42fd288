package ui

import (
	"strings"

	"memsweep/model"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the used-percent history as a fixed-width strip,
// newest sample on the right.
func sparkline(series []int, width int) string {
	if width <= 0 || len(series) == 0 {
		return ""
	}
	if len(series) > width {
		series = series[len(series)-width:]
	}
	var sb strings.Builder
	for _, pct := range series {
		idx := pct * len(sparkRunes) / 101
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

// usageBar renders a horizontal gauge of used memory.
func usageBar(pct, width int) string {
	if width < 2 {
		return ""
	}
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return pressureStyle(pct).Render(bar)
}

func trendGlyph(t model.Trend) string {
	switch t {
	case model.TrendIncreasing:
		return critStyle.Render("↑")
	case model.TrendDecreasing:
		return okStyle.Render("↓")
	}
	return labelStyle.Render("·")
}
