package tui

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShutdownManager_Order(t *testing.T) {
	var order []string
	sm := NewShutdownManager()
	sm.StopTelemetry = func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("StopTelemetry should get a deadline")
		}
		order = append(order, "telemetry")
		return nil
	}
	sm.FlushLogs = func() error {
		order = append(order, "logs")
		return nil
	}

	if err := sm.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if len(order) != 2 || order[0] != "telemetry" || order[1] != "logs" {
		t.Errorf("want [telemetry logs], got %v", order)
	}
}

func TestShutdownManager_RunsOnce(t *testing.T) {
	calls := 0
	sm := NewShutdownManager()
	sm.FlushLogs = func() error {
		calls++
		return nil
	}

	for i := 0; i < 3; i++ {
		_ = sm.Shutdown()
	}
	if calls != 1 {
		t.Errorf("want 1 flush, got %d", calls)
	}
}

func TestShutdownManager_JoinsErrors(t *testing.T) {
	errStop := errors.New("stop failed")
	errFlush := errors.New("flush failed")

	sm := NewShutdownManager()
	sm.Timeout = 10 * time.Millisecond
	sm.StopTelemetry = func(context.Context) error { return errStop }
	sm.FlushLogs = func() error { return errFlush }

	err := sm.Shutdown()
	if !errors.Is(err, errStop) || !errors.Is(err, errFlush) {
		t.Errorf("want both errors joined, got %v", err)
	}
	if again := sm.Shutdown(); again != err {
		t.Errorf("later calls should return the first result, got %v", again)
	}
}

func TestShutdownManager_NoSteps(t *testing.T) {
	if err := NewShutdownManager().Shutdown(); err != nil {
		t.Errorf("empty manager should shut down cleanly, got %v", err)
	}
}
