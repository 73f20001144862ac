package tui

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ShutdownManager runs the dashboard's teardown steps once, whether quit
// comes from the keyboard or a signal.
type ShutdownManager struct {
	// Timeout bounds StopTelemetry.
	Timeout time.Duration

	// StopTelemetry cancels in-flight telemetry fetches.
	StopTelemetry func(ctx context.Context) error

	// FlushLogs closes the log file.
	FlushLogs func() error

	once sync.Once
	err  error
}

func NewShutdownManager() *ShutdownManager {
	return &ShutdownManager{
		Timeout: 2 * time.Second,
	}
}

// Shutdown stops telemetry, then flushes logs. Later calls return the result
// of the first.
func (sm *ShutdownManager) Shutdown() error {
	sm.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sm.Timeout)
		defer cancel()

		var errs []error
		if sm.StopTelemetry != nil {
			errs = append(errs, sm.StopTelemetry(ctx))
		}
		if sm.FlushLogs != nil {
			errs = append(errs, sm.FlushLogs())
		}
		sm.err = errors.Join(errs...)
	})
	return sm.err
}
