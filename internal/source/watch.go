package source

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/alerts"
)

// Replacer receives each freshly loaded alert set. *alerts.Store satisfies it.
type Replacer interface {
	Replace(records []alerts.Alert) error
}

// Watcher reloads a YAML fixture into a Replacer whenever the file's
// modification time or size changes.
type Watcher struct {
	path     string
	interval time.Duration
	target   Replacer
	now      func() time.Time
	log      zerolog.Logger

	modTime time.Time
	size    int64
}

type WatcherOption func(*Watcher)

func WithWatcherLogger(l zerolog.Logger) WatcherOption {
	return func(w *Watcher) { w.log = l }
}

func WithWatcherClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) { w.now = now }
}

// NewWatcher records the fixture's current state, so only later edits
// trigger a reload.
func NewWatcher(path string, interval time.Duration, target Replacer, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		interval: interval,
		target:   target,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if info, err := os.Stat(path); err == nil {
		w.modTime, w.size = info.ModTime(), info.Size()
	}
	return w
}

// Poll reloads the fixture if it changed since the last poll. A fixture that
// fails to parse is remembered too, so a broken file is reported once per
// edit rather than on every tick.
func (w *Watcher) Poll() (bool, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return false, fmt.Errorf("checking alerts fixture: %w", err)
	}
	if info.ModTime().Equal(w.modTime) && info.Size() == w.size {
		return false, nil
	}
	w.modTime, w.size = info.ModTime(), info.Size()

	records, err := LoadAlertsFile(w.path, w.now())
	if err != nil {
		return false, err
	}
	if err := w.target.Replace(records); err != nil {
		return false, fmt.Errorf("replacing alerts: %w", err)
	}
	return true, nil
}

// Run polls every interval until ctx is cancelled. A non-positive interval
// returns immediately.
func (w *Watcher) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := w.Poll()
			if err != nil {
				w.log.Warn().Err(err).Str("path", w.path).Msg("alerts fixture reload failed")
				continue
			}
			if changed {
				w.log.Info().Str("path", w.path).Msg("alerts fixture reloaded")
			}
		}
	}
}
