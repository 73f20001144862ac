package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/alerts"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/config"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/logger"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/telemetry"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/timeline"
)

type DataTab int

const (
	TabEnvironmental DataTab = iota
	TabOperational
	TabCompliance
)

var dataTabs = []DataTab{TabEnvironmental, TabOperational, TabCompliance}

func (t DataTab) String() string {
	switch t {
	case TabOperational:
		return "Operational"
	case TabCompliance:
		return "Compliance"
	default:
		return "Environmental"
	}
}

type PanelFocus int

const (
	FocusFleet PanelFocus = iota
	FocusAlerts
)

type tickMsg time.Time

type telemetryMsg struct {
	seq      int
	snapshot telemetry.Snapshot
	err      error
}

type AlertProvider interface {
	Active() []alerts.Alert
	Dismiss(id string) bool
}

// WarningSource reports logged warnings for the header indicator.
type WarningSource interface {
	WarningCount() int
	Latest() (logger.Entry, bool)
}

type Model struct {
	width    int
	height   int
	keys     KeyMap
	quitting bool

	cfg config.Config
	log zerolog.Logger
	now func() time.Time
	ctx context.Context

	alerts    AlertProvider
	telemetry telemetry.Provider
	warnings  WarningSource

	alertView     alerts.View
	alertErr      error
	alertsOpen    bool
	alertCursor   int
	panelFocus    PanelFocus
	fleetCursor   int // 0 is overview, i is fleet[i-1]
	selectedAUV   string
	activeTab     DataTab
	theme         string
	statusMessage string

	frame    timeline.Frame
	zone     timeline.Zone
	playback timeline.Playback
	lastTick time.Time

	snapshot    *telemetry.Snapshot
	fetchErr    error
	loading     bool
	fetchSeq    int
	cancelFetch context.CancelFunc

	detailOverlay bool
	detailTitle   string
	detailContent string

	refreshRate time.Duration

	onShutdown func()
}

func NewModel(cfg config.Config, opts ...ModelOption) Model {
	frame, err := timeline.ParseFrame(cfg.Time.DefaultFrame)
	if err != nil {
		frame = timeline.FrameLive
	}
	zone, err := timeline.FindZone(cfg.Time.Timezone)
	if err != nil {
		zone = timeline.Zones[0]
	}
	refresh := time.Duration(cfg.Display.RefreshRateMS) * time.Millisecond
	if refresh <= 0 {
		refresh = 500 * time.Millisecond
	}

	m := Model{
		keys:        DefaultKeyMap(),
		cfg:         cfg,
		log:         zerolog.Nop(),
		now:         time.Now,
		ctx:         context.Background(),
		frame:       frame,
		zone:        zone,
		theme:       cfg.Display.Theme,
		refreshRate: refresh,
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.playback = timeline.NewPlayback(m.historyStart(), cfg.Time.PlaybackSpeed)
	m.refreshAlerts()
	if m.telemetry != nil {
		m.loading = true
		m.fetchSeq = 1
	}
	return m
}

type ModelOption func(*Model)

func WithAlertProvider(a AlertProvider) ModelOption {
	return func(m *Model) { m.alerts = a }
}

func WithTelemetryProvider(p telemetry.Provider) ModelOption {
	return func(m *Model) { m.telemetry = p }
}

// WithLogger routes model logs to l and shows its captured warnings in the
// header.
func WithLogger(l *logger.Logger) ModelOption {
	return func(m *Model) {
		m.log = l.Component("tui")
		m.warnings = l
	}
}

func WithWarningSource(w WarningSource) ModelOption {
	return func(m *Model) { m.warnings = w }
}

// WithClock replaces time.Now, for deterministic rendering.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithContext sets the parent context for telemetry fetches.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) { m.ctx = ctx }
}

func WithOnShutdown(fn func()) ModelOption {
	return func(m *Model) { m.onShutdown = fn }
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.telemetry != nil {
		cmds = append(cmds, m.fetchCmd(m.ctx, m.fetchSeq))
	}
	return tea.Batch(cmds...)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchCmd(ctx context.Context, seq int) tea.Cmd {
	provider, auvID, frame := m.telemetry, m.selectedAUV, m.frame
	return func() tea.Msg {
		snap, err := provider.Fetch(ctx, auvID, frame)
		return telemetryMsg{seq: seq, snapshot: snap, err: err}
	}
}

// refetch cancels any in-flight fetch and starts a new one for the current
// AUV and frame.
func (m *Model) refetch() tea.Cmd {
	if m.telemetry == nil {
		return nil
	}
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelFetch = cancel
	m.fetchSeq++
	m.loading = true
	m.fetchErr = nil
	return m.fetchCmd(ctx, m.fetchSeq)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		t := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.playback.Advance(m.frame, t.Sub(m.lastTick))
		}
		m.lastTick = t
		m.refreshAlerts()
		return m, m.tickCmd()

	case telemetryMsg:
		return m.handleTelemetry(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleTelemetry(msg telemetryMsg) Model {
	if msg.seq != m.fetchSeq {
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.fetchErr = msg.err
		m.log.Warn().Err(msg.err).Str("auv", m.selectedAUV).Msg("telemetry fetch failed")
		return m
	}
	snap := msg.snapshot
	m.snapshot = &snap
	m.fetchErr = nil
	m.log.Debug().Str("auv", snap.AUVID).Str("frame", string(snap.Frame)).Msg("telemetry loaded")
	return m
}

// refreshAlerts recomputes the aggregate. A contract violation is logged
// once per distinct error and leaves alertErr set so the header shows a badge.
func (m *Model) refreshAlerts() {
	if m.alerts == nil {
		m.alertView, m.alertErr = alerts.Aggregate(nil)
		return
	}
	view, err := alerts.Aggregate(m.alerts.Active())
	if err != nil && (m.alertErr == nil || m.alertErr.Error() != err.Error()) {
		m.log.Error().Err(err).Msg("alert aggregation failed")
	}
	m.alertView, m.alertErr = view, err
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detailOverlay {
		return m.handleDetailOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.cancelFetch != nil {
			m.cancelFetch()
		}
		if m.onShutdown != nil {
			m.onShutdown()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleAlert):
		m.alertsOpen = !m.alertsOpen
		if m.alertsOpen {
			m.panelFocus = FocusAlerts
			m.alertCursor = 0
		} else {
			m.panelFocus = FocusFleet
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = dataTabs[(int(m.activeTab)+1)%len(dataTabs)]
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.activeTab = dataTabs[(int(m.activeTab)+len(dataTabs)-1)%len(dataTabs)]
		return m, nil

	case key.Matches(msg, m.keys.Frame):
		return m.setFrame(m.frame.Next())

	case key.Matches(msg, m.keys.PlayPause):
		if !m.playback.Toggle(m.frame) {
			m.statusMessage = "Playback is unavailable for live data"
		} else {
			m.statusMessage = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		m.playback.NextSpeed(m.frame)
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		m.playback.PrevSpeed(m.frame)
		return m, nil

	case key.Matches(msg, m.keys.Zone):
		m.zone = timeline.NextZone(m.zone)
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		if m.theme == config.ThemeLight {
			m.theme = config.ThemeDark
		} else {
			m.theme = config.ThemeLight
		}
		return m, nil
	}

	if m.panelFocus == FocusAlerts {
		return m.handleAlertsPanelKey(msg)
	}
	return m.handleFleetPanelKey(msg)
}

// setFrame switches the time frame. Leaving live rewinds playback to the
// start of the new window; returning to live stops it.
func (m Model) setFrame(f timeline.Frame) (tea.Model, tea.Cmd) {
	m.frame = f
	m.playback.Stop()
	if !f.IsLive() {
		m.playback.Current = m.historyStart()
	}
	m.statusMessage = ""
	m.log.Info().Str("frame", string(f)).Msg("time frame changed")
	return m, m.refetch()
}

func (m Model) historyStart() time.Time {
	return m.now().Add(-m.frame.Duration())
}

func (m Model) handleFleetPanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fleet := m.fleet()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.fleetCursor > 0 {
			m.fleetCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.fleetCursor < len(fleet) {
			m.fleetCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		id := ""
		if m.fleetCursor > 0 && m.fleetCursor <= len(fleet) {
			id = fleet[m.fleetCursor-1].ID
		}
		return m.selectAUV(id)

	case key.Matches(msg, m.keys.Escape):
		m.fleetCursor = 0
		return m.selectAUV("")
	}

	return m, nil
}

func (m Model) selectAUV(id string) (tea.Model, tea.Cmd) {
	if id == m.selectedAUV {
		return m, nil
	}
	m.selectedAUV = id
	return m, m.refetch()
}

func (m Model) handleAlertsPanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.sortedAlerts()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.alertCursor > 0 {
			m.alertCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.alertCursor < len(active)-1 {
			m.alertCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.alertCursor >= 0 && m.alertCursor < len(active) {
			a := active[m.alertCursor]
			m.detailOverlay = true
			m.detailTitle = "Alert Detail"
			m.detailContent = m.formatAlertDetail(a)
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if m.alerts != nil && m.alertCursor >= 0 && m.alertCursor < len(active) {
			id := active[m.alertCursor].ID
			if m.alerts.Dismiss(id) {
				m.log.Info().Str("alert", id).Msg("alert dismissed")
			}
			m.refreshAlerts()
			if m.alertCursor >= len(active)-1 && m.alertCursor > 0 {
				m.alertCursor--
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.alertsOpen = false
		m.panelFocus = FocusFleet
		return m, nil
	}

	return m, nil
}

func (m Model) handleDetailOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Enter):
		m.detailOverlay = false
		m.detailContent = ""
		m.detailTitle = ""
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		m.detailOverlay = false
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) formatAlertDetail(a alerts.Alert) string {
	loc := m.zone.Location()
	var lines []string
	lines = append(lines, "ID:        "+a.ID)
	lines = append(lines, "Severity:  "+a.Severity.String())
	if a.Category != "" {
		lines = append(lines, "Category:  "+a.Category)
	}
	lines = append(lines, "Raised:    "+a.Timestamp.In(loc).Format("2006-01-02 15:04:05 MST"))
	lines = append(lines, "           "+alerts.RelativeLabelIn(a.Timestamp, m.now(), loc))
	lines = append(lines, "")
	lines = append(lines, a.Title)
	lines = append(lines, a.Message)
	return strings.Join(lines, "\n")
}

func (m Model) sortedAlerts() []alerts.Alert {
	if m.alerts == nil {
		return nil
	}
	return alerts.SortForDisplay(m.alerts.Active())
}

func (m Model) fleet() []telemetry.AUV {
	if m.telemetry == nil {
		return nil
	}
	return m.telemetry.Fleet()
}

// displayTime is the clock shown in the time bar: wall time when live, the
// playback position otherwise.
func (m Model) displayTime() time.Time {
	if m.frame.IsLive() {
		return m.now()
	}
	return m.playback.Current
}

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	output := m.renderDashboard()

	if m.height > 0 {
		lines := strings.Split(output, "\n")
		if len(lines) > m.height {
			lines = lines[:m.height]
			output = strings.Join(lines, "\n")
		}
	}

	return output
}
