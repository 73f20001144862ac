package alerts

import (
	"strings"
	"testing"
	"time"
)

func TestRelativeLabel_Boundaries(t *testing.T) {
	now := time.Date(2025, 5, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{60 * time.Second, "1 minute ago"},
		{119 * time.Second, "1 minute ago"},
		{120 * time.Second, "2 minutes ago"},
		{15 * time.Minute, "15 minutes ago"},
		{3599 * time.Second, "59 minutes ago"},
		{3600 * time.Second, "1 hour ago"},
		{7199 * time.Second, "1 hour ago"},
		{7200 * time.Second, "2 hours ago"},
		{86399 * time.Second, "23 hours ago"},
		{-30 * time.Second, "Just now"},
		{-48 * time.Hour, "Just now"},
	}

	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			got := RelativeLabelIn(now.Add(-tt.elapsed), now, time.UTC)
			if got != tt.want {
				t.Errorf("elapsed %v: want %q, got %q", tt.elapsed, tt.want, got)
			}
		})
	}
}

func TestRelativeLabel_DateFallback(t *testing.T) {
	ts := time.Date(2025, 5, 25, 7, 42, 18, 0, time.UTC)

	got := RelativeLabelIn(ts, ts.Add(86400*time.Second), time.UTC)
	if got != "5/25/2025" {
		t.Errorf("want %q, got %q", "5/25/2025", got)
	}
	if strings.Contains(got, "ago") || strings.Contains(got, ":") {
		t.Errorf("date fallback should have no relative phrase or time of day, got %q", got)
	}

	got = RelativeLabelIn(ts, ts.Add(30*24*time.Hour), time.UTC)
	if got != "5/25/2025" {
		t.Errorf("month-old alert: want %q, got %q", "5/25/2025", got)
	}
}

func TestRelativeLabel_DateUsesLocation(t *testing.T) {
	// 02:00 UTC is still the previous day at UTC-8.
	ts := time.Date(2025, 5, 25, 2, 0, 0, 0, time.UTC)
	now := ts.Add(72 * time.Hour)

	ccz := time.FixedZone("UTC-8", -8*60*60)
	if got := RelativeLabelIn(ts, now, ccz); got != "5/24/2025" {
		t.Errorf("UTC-8: want %q, got %q", "5/24/2025", got)
	}
	if got := RelativeLabelIn(ts, now, nil); got == "" {
		t.Error("nil location should fall back to local zone, got empty label")
	}
}

func TestRelativeLabel_Deterministic(t *testing.T) {
	ts := time.Date(2025, 5, 25, 7, 0, 0, 0, time.UTC)
	now := ts.Add(28 * time.Minute)

	first := RelativeLabel(ts, now)
	for i := 0; i < 10; i++ {
		if got := RelativeLabel(ts, now); got != first {
			t.Fatalf("call %d: want %q, got %q", i, first, got)
		}
	}
	if first != "28 minutes ago" {
		t.Errorf("want %q, got %q", "28 minutes ago", first)
	}
}
