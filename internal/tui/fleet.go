package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/telemetry"
)

// alertFlagWindow is how recent an alert must be to flag the AUV it names.
const alertFlagWindow = time.Hour

func statusStyle(status string) func(...string) string {
	switch status {
	case telemetry.StatusWarning:
		return warningStyle.Render
	case telemetry.StatusNormal, telemetry.StatusActive, telemetry.StatusCompliant:
		return normalStyle.Render
	default:
		return func(s ...string) string { return strings.Join(s, " ") }
	}
}

func (m Model) renderFleetPanel(w, h int) string {
	p := m.palette()
	innerW := w - 4

	var lines []string
	lines = append(lines, p.panelTitle.Render("AUV Fleet"))
	lines = append(lines, "")

	overview := "Overview Mode"
	if m.selectedAUV == "" {
		overview = "◉ " + overview
	} else {
		overview = "○ " + overview
	}
	lines = append(lines, m.fleetRow(overview, innerW, m.fleetCursor == 0))

	active := m.sortedAlerts()
	now := m.now()

	for i, auv := range m.fleet() {
		mark := "○"
		if auv.ID == m.selectedAUV {
			mark = "◉"
		}
		row := truncate(fmt.Sprintf("%s %s %s", mark, auv.ID, auv.Name), innerW-2)
		if alertMentions(active, auv.ID, now, alertFlagWindow) {
			row += " " + alertHighStyle.Render("⚑")
		}
		lines = append(lines, m.fleetRow(row, innerW, m.fleetCursor == i+1))

		render := statusStyle(auv.Status)
		lines = append(lines, fmt.Sprintf("    %.3f, %.3f", auv.Lat, auv.Lng))
		lines = append(lines, fmt.Sprintf("    %sm  %s  %s",
			humanize.Comma(int64(auv.Depth)),
			render(auv.Status),
			render(fmt.Sprintf("%d%%", auv.BatteryLevel)),
		))
	}

	if m.telemetry != nil {
		if plumes := m.telemetry.Plumes(); len(plumes) > 0 {
			lines = append(lines, "")
			lines = append(lines, p.panelTitle.Render("Sediment Plumes"))
			for _, pl := range plumes {
				lines = append(lines, truncate(fmt.Sprintf("  %s r=%sm %.0f%%",
					pl.ID, humanize.Comma(int64(pl.Radius)), pl.Intensity*100), innerW))
			}
		}
	}

	if m.telemetry == nil {
		lines = append(lines, p.dim.Render("No fleet data"))
	}

	return m.renderBorderedPanel(strings.Join(lines, "\n"), w, h, m.panelFocus == FocusFleet)
}

func (m Model) fleetRow(text string, width int, cursor bool) string {
	text = truncate(text, width)
	if cursor && m.panelFocus == FocusFleet {
		return m.palette().cursor.Render(text)
	}
	return text
}
