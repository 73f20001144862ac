package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/alerts"
)

// linesPerAlert is title, message, relative time and a spacer.
const linesPerAlert = 4

func severityStyle(s alerts.Severity) lipgloss.Style {
	switch s {
	case alerts.SeverityHigh:
		return alertHighStyle
	case alerts.SeverityMedium:
		return alertMediumStyle
	case alerts.SeverityLow:
		return alertLowStyle
	default:
		return warningStyle
	}
}

func (m Model) renderAlertsPanel(w, h int) string {
	p := m.palette()
	innerW := w - 4
	if innerW < 10 {
		innerW = 10
	}

	active := m.sortedAlerts()

	var lines []string
	title := "System Alerts"
	if len(active) > 0 {
		title += fmt.Sprintf(" (%d)", len(active))
	}
	lines = append(lines, p.panelTitle.Render(title))
	if m.alertErr != nil {
		lines = append(lines, alertHighStyle.Render(truncate("! "+m.alertErr.Error(), innerW)))
	}
	lines = append(lines, "")

	if len(active) == 0 {
		lines = append(lines, p.dim.Render("No active alerts"))
		return m.renderBorderedPanel(strings.Join(lines, "\n"), w, h, m.panelFocus == FocusAlerts)
	}

	// one line is kept free for the overflow note
	capacity := (h - 3 - len(lines)) / linesPerAlert
	if capacity < 1 {
		capacity = 1
	}
	start := 0
	if m.alertCursor >= capacity {
		start = m.alertCursor - capacity + 1
	}
	end := start + capacity
	if end > len(active) {
		end = len(active)
	}

	now := m.now()
	loc := m.zone.Location()
	for i := start; i < end; i++ {
		selected := m.panelFocus == FocusAlerts && i == m.alertCursor
		label := alerts.RelativeLabelIn(active[i].Timestamp, now, loc)
		lines = append(lines, m.renderAlertEntry(active[i], innerW, label, selected))
	}

	if end < len(active) {
		lines = append(lines, p.dim.Render(fmt.Sprintf("… %d more", len(active)-end)))
	}

	return m.renderBorderedPanel(strings.Join(lines, "\n"), w, h, m.panelFocus == FocusAlerts)
}

// renderAlertEntry renders one alert as title, message and age lines.
func (m Model) renderAlertEntry(a alerts.Alert, width int, label string, selected bool) string {
	p := m.palette()
	sev := severityStyle(a.Severity)

	marker := sev.Render("▌")
	title := truncate(strings.ToUpper(a.Severity.String())+"  "+a.Title, width-2)
	if selected {
		title = p.cursor.Render(title)
	} else {
		title = sev.Render(title)
	}

	msg := truncate(a.Message, width-2)
	return marker + " " + title + "\n" +
		marker + " " + msg + "\n" +
		marker + " " + p.dim.Render(label) + "\n"
}

// alertMentions reports whether an alert raised within the window names
// auvID. The fleet panel flags such vehicles.
func alertMentions(active []alerts.Alert, auvID string, now time.Time, within time.Duration) bool {
	for _, a := range active {
		if now.Sub(a.Timestamp) > within {
			continue
		}
		if strings.Contains(a.Message, auvID) || strings.Contains(a.Title, auvID) {
			return true
		}
	}
	return false
}
