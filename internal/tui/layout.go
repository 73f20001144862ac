package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/config"
)

type panelDimensions struct {
	fleetW, dataW, alertsW int
	bodyH                  int
}

const (
	minWidth  = 60
	minHeight = 12

	// header, time bar and footer are one line each
	chromeHeight = 3

	fleetMinWidth  = 26
	alertsMinWidth = 32
	dataMinWidth   = 30
)

func computeDimensions(totalW, totalH int, alertsOpen bool) panelDimensions {
	if totalW < minWidth {
		totalW = minWidth
	}
	if totalH < minHeight {
		totalH = minHeight
	}

	var d panelDimensions
	d.bodyH = totalH - chromeHeight

	d.fleetW = totalW * 28 / 100
	if d.fleetW < fleetMinWidth {
		d.fleetW = fleetMinWidth
	}

	if alertsOpen {
		d.alertsW = totalW * 34 / 100
		if d.alertsW < alertsMinWidth {
			d.alertsW = alertsMinWidth
		}
	}

	d.dataW = totalW - d.fleetW - d.alertsW
	if d.dataW < dataMinWidth {
		d.dataW = dataMinWidth
	}

	return d
}

// palette is the theme-dependent part of the styling. Severity and status
// colours are the same in both themes.
type palette struct {
	header      lipgloss.Style
	panelBorder lipgloss.Style
	panelTitle  lipgloss.Style
	dim         lipgloss.Style
	cursor      lipgloss.Style
	footer      lipgloss.Style
	focusBorder lipgloss.Color
}

var (
	darkPalette = palette{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")),
		panelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		panelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45")),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")),
		footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		focusBorder: lipgloss.Color("45"),
	}

	lightPalette = palette{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("153")),
		panelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")),
		panelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("25")),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")),
		cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("153")),
		footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		focusBorder: lipgloss.Color("25"),
	}
)

func (m Model) palette() palette {
	if m.theme == config.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

var (
	alertHighStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	alertMediumStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	alertLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	bellCriticalStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("160"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	liveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	detailOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("45")).
				Padding(1, 2)
)

func (m Model) renderBorderedPanel(content string, w, h int, focused bool) string {
	style := m.palette().panelBorder
	if focused {
		style = style.BorderForeground(m.palette().focusBorder)
	}

	contentH := h - 2
	if contentH < 1 {
		contentH = 1
	}

	lines := strings.Split(content, "\n")
	if len(lines) > contentH {
		lines = lines[:contentH]
		content = strings.Join(lines, "\n")
	}

	return style.
		Width(w - 2).
		Height(contentH).
		Render(content)
}

func stripAnsi(s string) string {
	return ansi.Strip(s)
}

func (m Model) renderDashboard() string {
	dims := computeDimensions(m.width, m.height, m.alertsOpen)

	header := m.renderHeader()
	timeBar := m.renderTimeBar()

	cols := []string{
		m.renderFleetPanel(dims.fleetW, dims.bodyH),
		m.renderDataPanel(dims.dataW, dims.bodyH),
	}
	if m.alertsOpen {
		cols = append(cols, m.renderAlertsPanel(dims.alertsW, dims.bodyH))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	footer := m.renderFooter()

	layout := lipgloss.JoinVertical(lipgloss.Left, header, timeBar, body, footer)

	if m.detailOverlay {
		layout = m.overlayDetail(layout)
	}

	return layout
}

// truncate shortens s to n display cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return ansi.Truncate(s, n, "…")
}

func (m Model) overlayDetail(base string) string {
	overlayW := m.width * 60 / 100
	if overlayW < 40 {
		overlayW = 40
	}
	if m.width > 0 && overlayW > m.width-4 {
		overlayW = m.width - 4
	}

	contentW := overlayW - 6
	if contentW < 10 {
		contentW = 10
	}

	var wrapped []string
	for _, line := range strings.Split(m.detailContent, "\n") {
		wrapped = append(wrapped, wrapLine(line, contentW)...)
	}

	title := m.palette().panelTitle.Render(m.detailTitle)
	footer := m.palette().dim.Render("Esc/Enter: Close")
	content := title + "\n\n" + strings.Join(wrapped, "\n") + "\n\n" + footer

	dialog := detailOverlayStyle.
		Width(overlayW - 2).
		Render(content)

	return placeOverlay(dialog, base)
}

// wrapLine breaks line at spaces so no piece is wider than w.
func wrapLine(line string, w int) []string {
	if len(line) <= w {
		return []string{line}
	}
	var out []string
	for len(line) > w {
		cutAt := w
		for i := w; i > 0; i-- {
			if line[i] == ' ' {
				cutAt = i
				break
			}
		}
		out = append(out, line[:cutAt])
		line = strings.TrimPrefix(line[cutAt:], " ")
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

// placeOverlay centres fg over the area covered by bg.
func placeOverlay(fg, bg string) string {
	return lipgloss.Place(
		lipgloss.Width(bg),
		lipgloss.Height(bg),
		lipgloss.Center,
		lipgloss.Center,
		fg,
		lipgloss.WithWhitespaceChars(" "),
	)
}
