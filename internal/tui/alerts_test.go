package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/alerts"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/source"
)

func TestRenderAlertsPanel_NoAlerts(t *testing.T) {
	m := newTestModel(WithAlertProvider(&mockAlertProvider{alerts: nil}))

	panel := plain(m.renderAlertsPanel(60, 20))
	if !strings.Contains(panel, "System Alerts") {
		t.Error("alerts panel should have a title")
	}
	if !strings.Contains(panel, "No active alerts") {
		t.Error("alerts panel with no alerts should show 'No active alerts'")
	}
}

func TestRenderAlertsPanel_NilProvider(t *testing.T) {
	m := newTestModel()

	// Should not panic.
	panel := plain(m.renderAlertsPanel(60, 20))
	if !strings.Contains(panel, "No active alerts") {
		t.Error("alerts panel with nil provider should show 'No active alerts'")
	}
}

func TestRenderAlertsPanel_WithAlerts(t *testing.T) {
	// Provider order is deliberately scrambled; the panel sorts by severity.
	mock := source.MockAlerts(testNow)
	mock[0], mock[2] = mock[2], mock[0]
	m := newTestModel(WithAlertProvider(&mockAlertProvider{alerts: mock}))

	panel := plain(m.renderAlertsPanel(64, 30))

	for _, want := range []string{
		"System Alerts (3)",
		"Benthic Octopod detected within 120m of AUV-003",
		"2 minutes ago",
		"15 minutes ago",
		"28 minutes ago",
	} {
		if !strings.Contains(panel, want) {
			t.Errorf("alerts panel missing %q:\n%s", want, panel)
		}
	}

	high := strings.Index(panel, "Proximity Warning")
	medium := strings.Index(panel, "Battery Warning")
	low := strings.Index(panel, "Dissolved Oxygen")
	if !(high < medium && medium < low) {
		t.Errorf("alerts should be ordered high, medium, low; got offsets %d %d %d", high, medium, low)
	}
}

func TestRenderAlertsPanel_OlderThanADay(t *testing.T) {
	old := []alerts.Alert{{
		ID:        "old",
		Title:     "Report Overdue",
		Severity:  alerts.SeverityLow,
		Timestamp: testNow.Add(-72 * time.Hour),
	}}
	m := newTestModel(WithAlertProvider(&mockAlertProvider{alerts: old}))

	if panel := plain(m.renderAlertsPanel(60, 20)); !strings.Contains(panel, "5/22/2025") {
		t.Errorf("alerts older than a day should show the date:\n%s", panel)
	}
}

func TestRenderAlertsPanel_Overflow(t *testing.T) {
	var many []alerts.Alert
	for i := 0; i < 10; i++ {
		many = append(many, alerts.Alert{
			ID:        fmt.Sprintf("a-%02d", i),
			Title:     fmt.Sprintf("Alert %d", i),
			Severity:  alerts.SeverityMedium,
			Timestamp: testNow.Add(-time.Duration(i) * time.Minute),
		})
	}
	m := newTestModel(WithAlertProvider(&mockAlertProvider{alerts: many}))

	panel := plain(m.renderAlertsPanel(60, 16))
	if !strings.Contains(panel, "more") {
		t.Errorf("overflowing panel should say how many are hidden:\n%s", panel)
	}
}

func TestRenderAlertEntry(t *testing.T) {
	tests := []struct {
		name     string
		alert    alerts.Alert
		selected bool
	}{
		{
			name:  "high alert",
			alert: alerts.Alert{ID: "1", Title: "Proximity Warning", Message: "Octopod nearby", Severity: alerts.SeverityHigh},
		},
		{
			name:  "low alert",
			alert: alerts.Alert{ID: "2", Title: "Dissolved Oxygen", Message: "Below optimal", Severity: alerts.SeverityLow},
		},
		{
			name:     "selected",
			alert:    alerts.Alert{ID: "3", Title: "Battery Warning", Message: "32%", Severity: alerts.SeverityMedium},
			selected: true,
		},
		{
			name:  "long message is cut",
			alert: alerts.Alert{ID: "4", Title: "T", Message: strings.Repeat("x", 200), Severity: alerts.SeverityLow},
		},
	}

	m := newTestModel()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := plain(m.renderAlertEntry(tt.alert, 40, "Just now", tt.selected))
			if !strings.Contains(entry, tt.alert.Title) {
				t.Errorf("entry missing title: %q", entry)
			}
			if !strings.Contains(entry, "Just now") {
				t.Errorf("entry missing relative time: %q", entry)
			}
			if !strings.Contains(entry, strings.ToUpper(string(tt.alert.Severity))) {
				t.Errorf("entry missing severity: %q", entry)
			}
			for _, line := range strings.Split(entry, "\n") {
				if w := len([]rune(line)); w > 40 {
					t.Errorf("line wider than 40 cells (%d): %q", w, line)
				}
			}
		})
	}
}

func TestAlertsPanel_ToggleAndClose(t *testing.T) {
	m := newTestModel(WithAlertProvider(&mockAlertProvider{alerts: source.MockAlerts(testNow)}))

	m, _ = update(t, m, keyRune('a'))
	if !m.alertsOpen || m.panelFocus != FocusAlerts {
		t.Fatal("'a' should open and focus the alerts panel")
	}
	if !strings.Contains(plain(m.View()), "System Alerts") {
		t.Error("open panel should be rendered")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.alertsOpen || m.panelFocus != FocusFleet {
		t.Error("Esc should close the alerts panel")
	}

	m, _ = update(t, m, keyRune('a'))
	m, _ = update(t, m, keyRune('a'))
	if m.alertsOpen {
		t.Error("'a' twice should leave the panel closed")
	}
}

func TestAlertsPanel_DetailOverlay(t *testing.T) {
	m := newTestModel(WithAlertProvider(&mockAlertProvider{alerts: source.MockAlerts(testNow)}))

	m, _ = update(t, m, keyRune('a'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.detailOverlay {
		t.Fatal("Enter should open the detail overlay")
	}
	for _, want := range []string{"alert-002", "Severity:  medium", "15 minutes ago", "AUV-003 battery level at 32%"} {
		if !strings.Contains(m.detailContent, want) {
			t.Errorf("detail missing %q:\n%s", want, m.detailContent)
		}
	}
	if !strings.Contains(plain(m.View()), "Alert Detail") {
		t.Error("overlay should be rendered")
	}

	// Keys other than close are swallowed by the overlay.
	m, _ = update(t, m, keyRune('d'))
	if !m.detailOverlay || m.alertView.Total != 3 {
		t.Error("'d' must not dismiss while the overlay is open")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.detailOverlay {
		t.Error("Esc should close the overlay")
	}
	if !m.alertsOpen {
		t.Error("closing the overlay should keep the alerts panel open")
	}
}

func TestAlertsPanel_DismissUpdatesStoreAndBell(t *testing.T) {
	store := alerts.NewStore()
	if err := store.Replace(source.MockAlerts(testNow)); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	m := newTestModel(WithAlertProvider(store))

	m, _ = update(t, m, keyRune('a'))
	m, _ = update(t, m, keyRune('d'))

	if store.Len() != 2 {
		t.Fatalf("dismiss should remove one alert from the store, %d left", store.Len())
	}
	if m.alertView.HasCritical {
		t.Error("dismissing the only high alert should clear the critical flag")
	}
	if got := m.renderBell(); got != "🔔 2" {
		t.Errorf("bell: want %q, got %q", "🔔 2", got)
	}

	// Cursor stays in range as the list shrinks.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, keyRune('d'))
	m, _ = update(t, m, keyRune('d'))
	if store.Len() != 0 {
		t.Errorf("want all alerts dismissed, %d left", store.Len())
	}
	if m.alertCursor != 0 {
		t.Errorf("cursor should settle at 0, got %d", m.alertCursor)
	}
	if !strings.Contains(plain(m.renderAlertsPanel(60, 20)), "No active alerts") {
		t.Error("empty store should render 'No active alerts'")
	}
}

func TestAlertsPanel_CursorBounds(t *testing.T) {
	m := newTestModel(WithAlertProvider(&mockAlertProvider{alerts: source.MockAlerts(testNow)}))
	m, _ = update(t, m, keyRune('a'))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.alertCursor != 0 {
		t.Errorf("cursor should not go above 0, got %d", m.alertCursor)
	}
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.alertCursor != 2 {
		t.Errorf("cursor should stop at the last alert, got %d", m.alertCursor)
	}
}

func TestAlertsRefreshOnTick(t *testing.T) {
	provider := &mockAlertProvider{}
	m := newTestModel(WithAlertProvider(provider))
	if m.alertView.Total != 0 {
		t.Fatalf("want empty view, got %+v", m.alertView)
	}

	provider.alerts = source.MockAlerts(testNow)
	m, cmd := update(t, m, tickMsg(testNow))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.alertView.Total != 3 || !m.alertView.HasCritical {
		t.Errorf("tick should recompute the aggregate, got %+v", m.alertView)
	}
}

func TestAlertMentions(t *testing.T) {
	active := source.MockAlerts(testNow)
	if !alertMentions(active, "AUV-003", testNow, time.Hour) {
		t.Error("AUV-003 is named in recent alerts")
	}
	if alertMentions(active, "AUV-002", testNow, time.Hour) {
		t.Error("AUV-002 is not named in any alert")
	}
	if alertMentions(active, "AUV-003", testNow, time.Minute) {
		t.Error("no alert naming AUV-003 is within the last minute")
	}
}
