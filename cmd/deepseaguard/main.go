package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/alerts"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/config"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/logger"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/source"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/telemetry"
	"github.com/tritonminingco/deepseaguard-dashboard/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to the TOML config file (default ~/.config/deepseaguard/config.toml)")
	alertsFlag := flag.String("alerts", "", "YAML alerts fixture to load instead of the built-in demo alerts")
	levelFlag := flag.String("log-level", "", "Log level: trace, debug, info, warn or error")
	initFlag := flag.Bool("init-config", false, "Write the default config file and exit")
	flag.Parse()

	path := *configFlag
	if path == "" {
		path = config.DefaultPath()
	}

	if *initFlag {
		RunInitConfig(path)
		return
	}

	loadResult, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deepseaguard: config error: %v\n", err)
		os.Exit(1)
	}
	cfg := loadResult.Config

	for _, w := range loadResult.Warnings {
		fmt.Fprintf(os.Stderr, "deepseaguard: config warning: %s\n", w)
	}

	level := cfg.Logging.Level
	if *levelFlag != "" {
		level = *levelFlag
	}
	log, err := logger.New(logger.Options{
		Level:      level,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "deepseaguard: %v\n", err)
		os.Exit(1)
	}

	fixture := cfg.Alerts.FixturePath
	if *alertsFlag != "" {
		fixture = *alertsFlag
	}
	store, err := loadAlerts(fixture, time.Now())
	if err != nil {
		_ = log.Close()
		fmt.Fprintf(os.Stderr, "deepseaguard: %v\n", err)
		os.Exit(1)
	}

	storeLog := log.Component("alerts")
	store.OnChange(func(active []alerts.Alert) {
		storeLog.Debug().Int("active", len(active)).Msg("alert set changed")
	})
	notifier := alerts.NewPlatformNotifier(cfg.Alerts.SystemNotify, log.Component("notify"))
	store.OnChange(alerts.NotifyNewHigh(notifier, store.Active()))

	provider := telemetry.NewMockProvider(
		telemetry.WithDelay(time.Duration(cfg.Telemetry.FetchDelayMS) * time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownMgr := tui.NewShutdownManager()
	shutdownMgr.StopTelemetry = func(context.Context) error {
		cancel()
		return nil
	}
	shutdownMgr.FlushLogs = func() error {
		log.Info().Msg("shutting down")
		return log.Close()
	}

	if fixture != "" && cfg.Alerts.ReloadSeconds > 0 {
		watcher := source.NewWatcher(fixture,
			time.Duration(cfg.Alerts.ReloadSeconds)*time.Second,
			store,
			source.WithWatcherLogger(log.Component("source")),
		)
		go watcher.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info().
		Str("config", path).
		Int("alerts", store.Len()).
		Str("frame", cfg.Time.DefaultFrame).
		Msg("starting dashboard")

	model := tui.NewModel(cfg,
		tui.WithAlertProvider(store),
		tui.WithTelemetryProvider(provider),
		tui.WithLogger(log),
		tui.WithContext(ctx),
		tui.WithOnShutdown(func() {
			_ = shutdownMgr.Shutdown()
		}),
	)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
	)

	go func() {
		select {
		case <-sigCh:
			_ = shutdownMgr.Shutdown()
			p.Quit()
		case <-ctx.Done():
			return
		}
	}()

	if _, err := p.Run(); err != nil {
		_ = shutdownMgr.Shutdown()
		fmt.Fprintf(os.Stderr, "deepseaguard: %v\n", err)
		os.Exit(1)
	}
	_ = shutdownMgr.Shutdown()
}

// loadAlerts fills a store from the fixture at path, or from the demo alerts
// when path is empty.
func loadAlerts(path string, now time.Time) (*alerts.Store, error) {
	records := source.MockAlerts(now)
	if path != "" {
		var err error
		records, err = source.LoadAlertsFile(path, now)
		if err != nil {
			return nil, err
		}
	}

	store := alerts.NewStore()
	if err := store.Replace(records); err != nil {
		return nil, fmt.Errorf("loading alerts: %w", err)
	}
	return store, nil
}
