package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/telemetry"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/timeline"
)

const gaugeWidth = 20

func (m Model) renderDataPanel(w, h int) string {
	p := m.palette()
	innerW := w - 4
	contentH := h - 2

	target := "Overview Mode"
	if m.selectedAUV != "" {
		target = "Selected AUV: " + m.selectedAUV
	}

	var lines []string
	lines = append(lines, joinSpread(lipgloss.NewStyle(), innerW, p.panelTitle.Render("DeepSeaGuard Dashboard"), target))
	lines = append(lines, m.renderTabs())
	lines = append(lines, p.dim.Render(strings.Repeat("─", max(innerW, 1))))

	switch {
	case m.loading:
		lines = append(lines, p.dim.Render("Loading data..."))
	case m.fetchErr != nil:
		lines = append(lines, alertHighStyle.Render(truncate("Telemetry unavailable: "+m.fetchErr.Error(), innerW)))
	case m.snapshot == nil:
		lines = append(lines, p.dim.Render("Select an AUV from the fleet list to view detailed data"))
	default:
		var body []string
		switch m.activeTab {
		case TabOperational:
			body = m.operationalLines(m.snapshot.Operational)
		case TabCompliance:
			body = m.complianceLines(m.snapshot.Compliance)
		default:
			body = m.environmentalLines(m.snapshot.Environmental)
		}
		for _, l := range body {
			lines = append(lines, truncate(l, innerW))
		}
	}

	// footer sits on the last content line
	if len(lines) > contentH-1 {
		lines = lines[:max(contentH-1, 0)]
	}
	for len(lines) < contentH-1 {
		lines = append(lines, "")
	}
	lines = append(lines, m.dataFooter())

	return m.renderBorderedPanel(strings.Join(lines, "\n"), w, h, false)
}

func (m Model) renderTabs() string {
	var parts []string
	for _, t := range dataTabs {
		label := t.String()
		if t == m.activeTab {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = " " + label + " "
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func (m Model) dataFooter() string {
	if m.frame.IsLive() {
		return liveStyle.Render("● LIVE")
	}
	return "Historical Data: " + string(m.frame)
}

func formatReading(r telemetry.Reading) string {
	v := strconv.FormatFloat(r.Value, 'f', -1, 64)
	if r.Unit != "" && r.Unit != "pH" {
		v += " " + r.Unit
	}
	return v
}

func (m Model) environmentalLines(env telemetry.Environmental) []string {
	var out []string
	sed := env.Sediment
	pct := sed.PercentOfThreshold()

	out = append(out, m.palette().panelTitle.Render("Sediment Disturbance"))
	out = append(out, fmt.Sprintf("  %s of %s %s (%.0f%% of limit)",
		strconv.FormatFloat(sed.Current, 'f', -1, 64),
		strconv.FormatFloat(sed.Threshold, 'f', -1, 64),
		sed.Unit, pct))
	out = append(out, "  "+gauge(pct))
	if len(sed.History) > 0 {
		hist := make([]string, len(sed.History))
		for i, v := range sed.History {
			hist[i] = strconv.FormatFloat(v, 'f', 1, 64)
		}
		out = append(out, "  History: "+strings.Join(hist, " "))
	}

	wq := env.WaterQuality
	out = append(out, "")
	out = append(out, m.palette().panelTitle.Render("Water Quality"))
	for _, row := range []struct {
		name string
		r    telemetry.Reading
	}{
		{"Turbidity", wq.Turbidity},
		{"pH", wq.PH},
		{"Temperature", wq.Temperature},
		{"Dissolved Oxygen", wq.DissolvedOxygen},
	} {
		out = append(out, fmt.Sprintf("  %-17s %-10s %s", row.name, formatReading(row.r), statusStyle(row.r.Status)(row.r.Status)))
	}

	out = append(out, "")
	out = append(out, m.palette().panelTitle.Render("Species Proximity"))
	if len(env.SpeciesProximity) == 0 {
		out = append(out, "  No species detected nearby")
	}
	loc := m.zone.Location()
	for _, s := range env.SpeciesProximity {
		out = append(out, fmt.Sprintf("  %s  %sm  %s  %s",
			s.Species, humanize.Comma(int64(s.Distance)),
			timeline.FormatClock(s.Timestamp, loc),
			statusStyle(s.Status)(s.Status)))
	}
	return out
}

func (m Model) operationalLines(op telemetry.Operational) []string {
	var out []string
	loc := m.zone.Location()
	title := m.palette().panelTitle.Render

	pos := op.Position
	out = append(out, title("Position"))
	out = append(out, fmt.Sprintf("  %.3f, %.3f  depth %sm", pos.Lat, pos.Lng, humanize.Comma(int64(pos.Depth))))
	out = append(out, fmt.Sprintf("  heading %d°  speed %s kn", pos.Heading, strconv.FormatFloat(pos.Speed, 'f', -1, 64)))

	mis := op.Mission
	out = append(out, "")
	out = append(out, title("Mission "+mis.ID))
	out = append(out, fmt.Sprintf("  %s  %d%% complete", mis.Status, mis.CompletionRate))
	out = append(out, "  "+gauge(float64(mis.CompletionRate)))
	out = append(out, fmt.Sprintf("  started %s  running %s", timeline.FormatClock(mis.StartTime, loc), formatDuration(mis.Duration)))

	eff := op.Efficiency
	out = append(out, "")
	out = append(out, title("Collection Efficiency"))
	out = append(out, fmt.Sprintf("  %s nodules collected  %s %s",
		humanize.Comma(int64(eff.NodulesCollected)),
		strconv.FormatFloat(eff.Rate, 'f', -1, 64), eff.Unit))

	bat := op.Battery
	out = append(out, "")
	out = append(out, title("Battery"))
	out = append(out, fmt.Sprintf("  %s  %s remaining  %s",
		statusStyle(bat.Status)(fmt.Sprintf("%d%%", bat.Level)),
		formatDuration(bat.EstimatedRemaining),
		statusStyle(bat.Status)(bat.Status)))
	return out
}

func (m Model) complianceLines(c telemetry.Compliance) []string {
	var out []string
	loc := m.zone.Location()
	title := m.palette().panelTitle.Render

	out = append(out, title("ISA Standards"))
	for _, s := range c.Standards {
		out = append(out, fmt.Sprintf("  %-9s %s", s.ID, statusStyle(s.Status)(s.Status)))
		out = append(out, fmt.Sprintf("    %s: %s / %s", s.Description, s.Value, s.Threshold))
	}

	out = append(out, "")
	out = append(out, title("Time in Zones"))
	out = append(out, fmt.Sprintf("  Sensitive   %s of %s  %s",
		formatDuration(c.Sensitive.Value), formatDuration(c.Sensitive.Limit), statusStyle(c.Sensitive.Status)(c.Sensitive.Status)))
	restricted := formatDuration(c.Restricted.Value)
	if c.Restricted.Limit > 0 {
		restricted += " of " + formatDuration(c.Restricted.Limit)
	}
	out = append(out, fmt.Sprintf("  Restricted  %s  %s", restricted, statusStyle(c.Restricted.Status)(c.Restricted.Status)))

	rep := c.Reporting
	out = append(out, "")
	out = append(out, title("Reporting"))
	out = append(out, "  Last report     "+timeline.FormatClock(rep.LastReport, loc))
	out = append(out, "  Next scheduled  "+timeline.FormatClock(rep.NextScheduled, loc))
	if rep.UpToDate {
		out = append(out, "  "+normalStyle.Render("Up to date"))
	} else {
		out = append(out, "  "+warningStyle.Render("Report overdue"))
	}
	return out
}

// gauge draws pct (0-100, clamped) as a fixed-width bar.
func gauge(pct float64) string {
	filled := int(pct / 100 * gaugeWidth)
	filled = min(max(filled, 0), gaugeWidth)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled) + "]"
}

// formatDuration renders d as "2h 40m", "15m" or "0m".
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}
	h := int(d / time.Hour)
	mins := int(d % time.Hour / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, mins)
	}
}
