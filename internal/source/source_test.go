package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/alerts"
)

var now = time.Date(2025, 5, 25, 8, 0, 0, 0, time.UTC)

func TestMockAlerts(t *testing.T) {
	got := MockAlerts(now)
	if len(got) != 3 {
		t.Fatalf("want 3 mock alerts, got %d", len(got))
	}

	wantLabels := []string{"2 minutes ago", "15 minutes ago", "28 minutes ago"}
	for i, a := range got {
		if label := alerts.RelativeLabel(a.Timestamp, now); label != wantLabels[i] {
			t.Errorf("%s: want %q, got %q", a.ID, wantLabels[i], label)
		}
	}

	v, err := alerts.Aggregate(got)
	if err != nil {
		t.Fatalf("mock alerts should aggregate cleanly: %v", err)
	}
	if v.Total != 3 || !v.HasCritical {
		t.Errorf("want total 3 with critical, got %+v", v)
	}
}

func TestParseAlerts(t *testing.T) {
	data := []byte(`
alerts:
  - id: sed-1
    title: Sediment Plume
    message: Plume radius above 500m
    severity: HIGH
    category: environmental
    timestamp: 2025-05-25T07:42:18Z
  - title: Mission Delay
    message: MSN-2025-05-25-003 behind schedule
    severity: medium
    type: operational
    age: 90m
  - id: rep-1
    title: Report Due
    severity: low
`)

	got, err := ParseAlerts(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 alerts, got %d", len(got))
	}

	if got[0].Severity != alerts.SeverityHigh {
		t.Errorf("severity should be normalized to lowercase, got %q", got[0].Severity)
	}
	if !got[0].Timestamp.Equal(time.Date(2025, 5, 25, 7, 42, 18, 0, time.UTC)) {
		t.Errorf("explicit timestamp not kept: %v", got[0].Timestamp)
	}

	if got[1].ID == "" {
		t.Error("missing id should be generated")
	}
	if got[1].Category != "operational" {
		t.Errorf("type should alias category, got %q", got[1].Category)
	}
	if label := alerts.RelativeLabel(got[1].Timestamp, now); label != "1 hour ago" {
		t.Errorf("age 90m: want %q, got %q", "1 hour ago", label)
	}

	if !got[2].Timestamp.Equal(now) {
		t.Errorf("no timestamp or age should mean now, got %v", got[2].Timestamp)
	}
}

func TestParseAlerts_GeneratedIDsUnique(t *testing.T) {
	data := []byte(`
alerts:
  - {title: a, severity: low}
  - {title: b, severity: low}
`)
	got, err := ParseAlerts(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ID == got[1].ID {
		t.Errorf("generated ids should differ, both %q", got[0].ID)
	}
	if err := alerts.NewStore().Replace(got); err != nil {
		t.Errorf("generated ids should satisfy the store: %v", err)
	}
}

func TestParseAlerts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantSev bool
	}{
		{"unsupported severity", "alerts:\n  - {id: x, severity: critical}\n", true},
		{"missing severity", "alerts:\n  - {id: x}\n", true},
		{"bad age", "alerts:\n  - {id: x, severity: low, age: soon}\n", false},
		{"bad yaml", "alerts: [\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAlerts([]byte(tt.data), now)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, alerts.ErrInvalidSeverity); got != tt.wantSev {
				t.Errorf("errors.Is(ErrInvalidSeverity) = %v, want %v (err: %v)", got, tt.wantSev, err)
			}
		})
	}
}

func TestLoadAlertsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alerts.yaml")
	if err := os.WriteFile(path, []byte("alerts:\n  - {id: a, severity: medium, age: 5m}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadAlertsFile(path, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("unexpected alerts: %+v", got)
	}

	if _, err := LoadAlertsFile(filepath.Join(dir, "missing.yaml"), now); err == nil {
		t.Error("missing fixture should fail")
	}
}
