package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/config"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/timeline"
)

const (
	appVersion   = "DeepSeaGuard v1.0"
	isaReference = "ISA Compliance: ISBA/21/LTC/15"
)

func (m Model) renderHeader() string {
	p := m.palette()

	left := " DeepSeaGuard " + p.dim.Inherit(p.header).Render("Compliance Dashboard")
	mid := "  Time Frame: " + m.frame.Label()
	right := m.renderBell() + m.warningIndicator() + " "

	return joinSpread(p.header, m.width, left+mid, right)
}

// renderBell renders the alert count. Aggregation errors replace the count
// with "!" so the header never shows fewer alerts than exist.
func (m Model) renderBell() string {
	if m.alertErr != nil {
		return bellCriticalStyle.Render("🔔 !")
	}
	bell := "🔔 " + humanize.Comma(int64(m.alertView.Total))
	if m.alertView.HasCritical {
		return bellCriticalStyle.Render(bell)
	}
	return bell
}

func (m Model) warningIndicator() string {
	if m.warnings == nil {
		return ""
	}
	n := m.warnings.WarningCount()
	if n == 0 {
		return ""
	}
	label := "warning"
	if n != 1 {
		label = "warnings"
	}
	return "  " + warningStyle.Render(fmt.Sprintf("⚠ %s log %s", humanize.Comma(int64(n)), label))
}

func (m Model) renderTimeBar() string {
	p := m.palette()
	loc := m.zone.Location()

	clock := " " + timeline.FormatClock(m.displayTime(), loc)

	var frameLabel string
	if m.frame.IsLive() {
		frameLabel = liveStyle.Render("Live Data")
	} else {
		frameLabel = "Historical Data (" + string(m.frame) + ")"
	}

	glyph := "▶"
	if m.playback.Playing {
		glyph = "❚❚"
	}

	var speeds []string
	for _, s := range timeline.Speeds {
		label := strconv.FormatFloat(s, 'f', -1, 64) + "x"
		if s == m.playback.Speed {
			label = "[" + label + "]"
		}
		speeds = append(speeds, label)
	}

	controls := glyph + " " + strings.Join(speeds, " ")
	if m.frame.IsLive() {
		controls = p.dim.Render(controls)
	}

	left := clock + "  " + frameLabel + "  " + controls
	right := "Time Zone: " + m.zone.Label + " "
	if m.statusMessage != "" {
		right = warningStyle.Render(m.statusMessage) + "  " + right
	}

	return joinSpread(lipgloss.NewStyle(), m.width, left, right)
}

func (m Model) renderFooter() string {
	p := m.palette()

	toggle := "T:☀ Light Mode"
	if m.theme == config.ThemeLight {
		toggle = "T:☾ Dark Mode"
	}

	left := " " + appVersion + "  " + isaReference
	right := m.footerHelp() + "  " + toggle + " "

	return joinSpread(p.footer, m.width, left, right)
}

func (m Model) footerHelp() string {
	if m.detailOverlay {
		return "Esc:Close"
	}
	if m.panelFocus == FocusAlerts {
		return "↑↓ Enter:Detail d:Dismiss Esc:Close q:Quit"
	}
	return "Tab:Data a:Alerts f:Frame Space:Play z:Zone q:Quit"
}

// joinSpread renders left and right at opposite ends of a width-wide line.
func joinSpread(style lipgloss.Style, width int, left, right string) string {
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	line := left + strings.Repeat(" ", padding) + right
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(line)
}
