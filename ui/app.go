package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"memsweep/config"
	"memsweep/engine"
	"memsweep/model"
)

type tickMsg time.Time

type cleanupMsg struct {
	result model.CleanupResult
}

type actionMsg struct {
	text string
}

// Model is the bubbletea model. It holds no monitoring logic: every render
// reads the engine's published snapshot, and key actions call the engine's
// entry points.
type Model struct {
	eng      *engine.Engine
	cfg      config.Config
	host     model.HostInfo
	interval time.Duration

	width  int
	height int

	snap     model.Snapshot
	selected int
	status   string
}

// New creates the UI model.
func New(eng *engine.Engine, cfg config.Config, host model.HostInfo, interval time.Duration) Model {
	return Model{eng: eng, cfg: cfg, host: host, interval: interval}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func refreshCmd(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		eng.Refresh(context.Background())
		return actionMsg{text: "refreshed"}
	}
}

func smartCleanupCmd(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		return cleanupMsg{result: eng.SmartCleanup(context.Background())}
	}
}

func purgeCmd(eng *engine.Engine, key string, retain int) tea.Cmd {
	return func() tea.Msg {
		n := eng.PurgeFamily(context.Background(), key, retain)
		return actionMsg{text: fmt.Sprintf("purged %d processes from %s", n, key)}
	}
}

func trimCmd(eng *engine.Engine, name string, retain int) tea.Cmd {
	return func() tea.Msg {
		n := eng.TrimHelpers(context.Background(), name, retain)
		return actionMsg{text: fmt.Sprintf("trimmed %d helpers from %s", n, name)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.snap.Groups)-1 {
				m.selected++
			}
		case "r":
			m.status = "refreshing..."
			return m, refreshCmd(m.eng)
		case "c":
			m.status = "smart cleanup running..."
			return m, smartCleanupCmd(m.eng)
		case "p":
			if g, ok := m.selectedGroup(); ok {
				m.status = "purging " + g.Name + "..."
				return m, purgeCmd(m.eng, g.Key, m.cfg.PurgeRetain)
			}
		case "t":
			if g, ok := m.selectedGroup(); ok {
				m.status = "trimming " + g.Name + "..."
				return m, trimCmd(m.eng, g.Name, m.cfg.TrimRetain)
			}
		case "x":
			if g, ok := m.selectedGroup(); ok && g.Count() > 1 {
				last := g.Members[g.Count()-1]
				m.eng.TerminateProcess(last.PID)
				m.status = fmt.Sprintf("terminated pid %d (%s)", last.PID, last.DisplayName())
			}
		}
	case tickMsg:
		m.snap = m.eng.Snapshot()
		if m.selected >= len(m.snap.Groups) && len(m.snap.Groups) > 0 {
			m.selected = len(m.snap.Groups) - 1
		}
		return m, tick()
	case cleanupMsg:
		m.status = fmt.Sprintf("cleanup done: %d terminated, %.0f MB freed, %d active skipped",
			msg.result.Terminated, msg.result.FreedMB, msg.result.SkippedActive)
	case actionMsg:
		m.status = msg.text
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) selectedGroup() (model.ProcessGroup, bool) {
	if m.selected < 0 || m.selected >= len(m.snap.Groups) {
		return model.ProcessGroup{}, false
	}
	return m.snap.Groups[m.selected], true
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString(m.renderStats())
	sb.WriteString(m.renderGroups())
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("memsweep")
	id := labelStyle.Render(fmt.Sprintf("%s · %s · up %s · %s RAM",
		m.host.Hostname, m.host.Platform,
		m.host.Uptime.Round(time.Minute),
		humanize.IBytes(uint64(m.host.TotalMB*1024*1024))))
	refreshing := ""
	if m.snap.Refreshing {
		refreshing = warnStyle.Render(" ⟳")
	}
	return title + "  " + id + refreshing + "\n\n"
}

func (m Model) renderStats() string {
	if m.snap.Stats == nil {
		return labelStyle.Render("waiting for first sample...") + "\n\n"
	}
	s := m.snap.Stats
	pct := s.UsedPercent()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s %s\n",
		usageBar(pct, 40),
		pressureStyle(pct).Render(fmt.Sprintf("%d%%", pct)),
		pressureStyle(pct).Render(s.Pressure().String())))
	sb.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s\n",
		labelStyle.Render("used"), valueStyle.Render(mb(s.UsedMB)),
		labelStyle.Render("wired"), valueStyle.Render(mb(s.WiredMB)),
		labelStyle.Render("compressed"), valueStyle.Render(mb(s.CompressedMB)),
		labelStyle.Render("swap"), valueStyle.Render(mb(s.SwapUsedMB))))
	if len(m.snap.History) > 1 {
		sb.WriteString(labelStyle.Render("history ") + sparkline(m.snap.History, 60) + "\n")
	}
	if m.snap.ChromeCount > 8 {
		sb.WriteString(orangeStyle.Render(fmt.Sprintf(
			"Chrome is running %d processes (%s) — press t to trim helpers\n",
			m.snap.ChromeCount, mb(m.snap.ChromeMB))))
	}
	if m.snap.SafariCount > 8 {
		sb.WriteString(orangeStyle.Render(fmt.Sprintf(
			"Safari is running %d processes (%s)\n",
			m.snap.SafariCount, mb(m.snap.SafariMB))))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderGroups() string {
	if len(m.snap.Groups) == 0 {
		return labelStyle.Render("no processes sampled yet") + "\n"
	}
	rows := m.height - 14
	if rows < 5 {
		rows = 5
	}
	if rows > len(m.snap.Groups) {
		rows = len(m.snap.Groups)
	}

	var sb strings.Builder
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-28s %10s %8s %6s  %s", "FAMILY", "MEMORY", "CPU", "PROCS", "TREND")) + "\n")
	for i := 0; i < rows; i++ {
		g := m.snap.Groups[i]
		line := fmt.Sprintf("  %-28s %10s %7.1f%% %6d  %s",
			truncate(g.Name, 28), mb(g.MemoryMB), g.CPU, g.Count(), trendGlyph(m.eng.TrendFor(g.Key)))
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (m Model) renderFooter() string {
	help := helpStyle.Render("↑/↓ select · r refresh · c smart cleanup · p purge · t trim · x kill smallest · q quit")
	status := ""
	if m.status != "" {
		status = valueStyle.Render(m.status) + "\n"
	}
	last := ""
	if !m.snap.LastRefresh.IsZero() {
		last = labelStyle.Render("last refresh " + m.snap.LastRefresh.Format("15:04:05"))
	}
	return "\n" + status + lipgloss.JoinHorizontal(lipgloss.Top, help, "  ", last) + "\n"
}

func mb(v float64) string {
	return humanize.IBytes(uint64(v * 1024 * 1024))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
