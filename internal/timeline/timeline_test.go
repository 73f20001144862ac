package timeline

import (
	"errors"
	"testing"
	"time"
)

func TestParseFrame(t *testing.T) {
	for _, f := range Frames {
		got, err := ParseFrame(string(f))
		if err != nil {
			t.Errorf("ParseFrame(%q): unexpected error %v", f, err)
		}
		if got != f {
			t.Errorf("ParseFrame(%q): want %q, got %q", f, f, got)
		}
	}

	if _, err := ParseFrame("2h"); !errors.Is(err, ErrUnknownFrame) {
		t.Errorf("ParseFrame(2h): want ErrUnknownFrame, got %v", err)
	}
}

func TestFrame_Labels(t *testing.T) {
	tests := []struct {
		frame Frame
		label string
		dur   time.Duration
	}{
		{FrameLive, "Live Data", 0},
		{FrameHour, "Past Hour", time.Hour},
		{Frame6h, "Past 6 Hours", 6 * time.Hour},
		{Frame24h, "Past 24 Hours", 24 * time.Hour},
		{FrameWeek, "Past Week", 168 * time.Hour},
		{FrameMonth, "Past Month", 720 * time.Hour},
	}
	for _, tt := range tests {
		if got := tt.frame.Label(); got != tt.label {
			t.Errorf("%s label: want %q, got %q", tt.frame, tt.label, got)
		}
		if got := tt.frame.Duration(); got != tt.dur {
			t.Errorf("%s duration: want %v, got %v", tt.frame, tt.dur, got)
		}
	}
}

func TestFrame_NextWraps(t *testing.T) {
	f := FrameLive
	for i := 0; i < len(Frames); i++ {
		f = f.Next()
	}
	if f != FrameLive {
		t.Errorf("cycling through all frames should return to live, got %q", f)
	}
	if FrameMonth.Next() != FrameLive {
		t.Error("30d should wrap to live")
	}
}

func TestPlayback_LiveDisablesControls(t *testing.T) {
	start := time.Date(2025, 5, 25, 7, 0, 0, 0, time.UTC)
	p := NewPlayback(start, 1)

	if p.Toggle(FrameLive) {
		t.Error("Toggle should be refused in live mode")
	}
	if p.Playing {
		t.Error("playback should stay paused in live mode")
	}
	if p.SetSpeed(FrameLive, 2) {
		t.Error("SetSpeed should be refused in live mode")
	}
	if p.Speed != 1 {
		t.Errorf("speed: want 1, got %g", p.Speed)
	}

	p.Playing = true
	p.Advance(FrameLive, time.Second)
	if !p.Current.Equal(start) {
		t.Errorf("live frame must not advance the clock, got %v", p.Current)
	}
}

func TestPlayback_Advance(t *testing.T) {
	start := time.Date(2025, 5, 25, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		speed float64
		want  time.Duration
	}{
		{0.5, 500 * time.Millisecond},
		{1, time.Second},
		{2, 2 * time.Second},
		{5, 5 * time.Second},
	}
	for _, tt := range tests {
		p := NewPlayback(start, tt.speed)
		p.Advance(FrameHour, time.Second)
		if !p.Current.Equal(start) {
			t.Errorf("speed %g: paused playback should not advance", tt.speed)
		}

		if !p.Toggle(FrameHour) {
			t.Fatalf("speed %g: Toggle should succeed for historical frame", tt.speed)
		}
		p.Advance(FrameHour, time.Second)
		if got := p.Current.Sub(start); got != tt.want {
			t.Errorf("speed %g: advanced %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestPlayback_SpeedSteps(t *testing.T) {
	p := NewPlayback(time.Time{}, 7)
	if p.Speed != 1 {
		t.Errorf("invalid start speed should fall back to 1, got %g", p.Speed)
	}

	if !p.NextSpeed(Frame24h) || p.Speed != 2 {
		t.Errorf("NextSpeed: want 2, got %g", p.Speed)
	}
	if !p.NextSpeed(Frame24h) || p.Speed != 5 {
		t.Errorf("NextSpeed: want 5, got %g", p.Speed)
	}
	if p.NextSpeed(Frame24h) {
		t.Error("NextSpeed past the fastest should return false")
	}
	for p.PrevSpeed(Frame24h) {
	}
	if p.Speed != 0.5 {
		t.Errorf("PrevSpeed should stop at 0.5, got %g", p.Speed)
	}
	if p.SetSpeed(Frame24h, 3) {
		t.Error("SetSpeed(3) should be refused")
	}
}

func TestValidateSpeed(t *testing.T) {
	for _, s := range Speeds {
		if err := ValidateSpeed(s); err != nil {
			t.Errorf("ValidateSpeed(%g): unexpected error %v", s, err)
		}
	}
	if err := ValidateSpeed(3); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("ValidateSpeed(3): want ErrInvalidSpeed, got %v", err)
	}
}

func TestZones(t *testing.T) {
	z, err := FindZone("UTC")
	if err != nil {
		t.Fatalf("FindZone(UTC): %v", err)
	}
	if z.Location() != time.UTC {
		t.Error("UTC zone should resolve to time.UTC")
	}

	ccz, err := FindZone("Etc/GMT+8")
	if err != nil {
		t.Fatalf("FindZone(Etc/GMT+8): %v", err)
	}
	noon := time.Date(2025, 5, 25, 12, 0, 0, 0, time.UTC)
	if got := FormatClock(noon, ccz.Location()); got != "04:00:00" {
		t.Errorf("CCZ clock: want 04:00:00, got %s", got)
	}

	if _, err := FindZone("Mars/Olympus"); !errors.Is(err, ErrUnknownZone) {
		t.Errorf("want ErrUnknownZone, got %v", err)
	}

	if NextZone(Zones[len(Zones)-1]).Name != Zones[0].Name {
		t.Error("NextZone should wrap to the first zone")
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2025, 5, 25, 7, 42, 18, 0, time.UTC)
	if got := FormatClock(ts, nil); got != "07:42:18" {
		t.Errorf("want 07:42:18, got %s", got)
	}
}
