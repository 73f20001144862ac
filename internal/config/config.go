package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/timeline"
)

type Config struct {
	Display   DisplayConfig
	Time      TimeConfig
	Alerts    AlertsConfig
	Telemetry TelemetryConfig
	Logging   LoggingConfig
}

type DisplayConfig struct {
	RefreshRateMS int    `toml:"refresh_rate_ms"`
	Theme         string `toml:"theme"`
}

type TimeConfig struct {
	DefaultFrame  string  `toml:"default_frame"`
	Timezone      string  `toml:"timezone"`
	PlaybackSpeed float64 `toml:"playback_speed"`
}

type AlertsConfig struct {
	FixturePath   string `toml:"fixture_path"`
	ReloadSeconds int    `toml:"reload_seconds"`
	SystemNotify  bool   `toml:"system_notify"`
}

type TelemetryConfig struct {
	FetchDelayMS int `toml:"fetch_delay_ms"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Path       string `toml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type LoadResult struct {
	Config   Config
	Warnings []string
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "deepseaguard")
}

// DefaultPath is the config file read when no -config flag is given.
func DefaultPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

func DefaultConfig() Config {
	logPath := "deepseaguard.log"
	if dir := configDir(); dir != "" {
		logPath = filepath.Join(dir, "deepseaguard.log")
	}

	return Config{
		Display: DisplayConfig{
			RefreshRateMS: 500,
			Theme:         ThemeDark,
		},
		Time: TimeConfig{
			DefaultFrame:  string(timeline.FrameLive),
			Timezone:      "UTC",
			PlaybackSpeed: 1,
		},
		Alerts: AlertsConfig{
			ReloadSeconds: 5,
		},
		Telemetry: TelemetryConfig{
			FetchDelayMS: 500,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Path:       logPath,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

func Load() (*LoadResult, error) {
	return LoadFrom(DefaultPath())
}

func LoadFrom(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	result, err := decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

func LoadFromString(data string) (*LoadResult, error) {
	if data == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	result, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

var knownTopLevel = map[string]bool{
	"display":   true,
	"time":      true,
	"alerts":    true,
	"telemetry": true,
	"logging":   true,
}

type tomlFile struct {
	Display   *DisplayConfig   `toml:"display"`
	Time      *TimeConfig      `toml:"time"`
	Alerts    *AlertsConfig    `toml:"alerts"`
	Telemetry *TelemetryConfig `toml:"telemetry"`
	Logging   *LoggingConfig   `toml:"logging"`
}

func decode(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, err
	}

	for key := range raw {
		if !knownTopLevel[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key))
		}
	}

	var tf tomlFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, err
	}

	mergeFromRaw(&result.Config, &tf, raw)
	return result, nil
}

// mergeFromRaw copies only the keys present in the file so that omitted keys
// keep their defaults.
func mergeFromRaw(cfg *Config, tf *tomlFile, raw map[string]any) {
	if tf.Display != nil {
		if section, ok := rawSection(raw, "display"); ok {
			if _, exists := section["refresh_rate_ms"]; exists {
				cfg.Display.RefreshRateMS = tf.Display.RefreshRateMS
			}
			if _, exists := section["theme"]; exists {
				cfg.Display.Theme = tf.Display.Theme
			}
		}
	}
	if tf.Time != nil {
		if section, ok := rawSection(raw, "time"); ok {
			if _, exists := section["default_frame"]; exists {
				cfg.Time.DefaultFrame = tf.Time.DefaultFrame
			}
			if _, exists := section["timezone"]; exists {
				cfg.Time.Timezone = tf.Time.Timezone
			}
			if _, exists := section["playback_speed"]; exists {
				cfg.Time.PlaybackSpeed = tf.Time.PlaybackSpeed
			}
		}
	}
	if tf.Alerts != nil {
		if section, ok := rawSection(raw, "alerts"); ok {
			if _, exists := section["fixture_path"]; exists {
				cfg.Alerts.FixturePath = expandTilde(tf.Alerts.FixturePath)
			}
			if _, exists := section["reload_seconds"]; exists {
				cfg.Alerts.ReloadSeconds = tf.Alerts.ReloadSeconds
			}
			if _, exists := section["system_notify"]; exists {
				cfg.Alerts.SystemNotify = tf.Alerts.SystemNotify
			}
		}
	}
	if tf.Telemetry != nil {
		if section, ok := rawSection(raw, "telemetry"); ok {
			if _, exists := section["fetch_delay_ms"]; exists {
				cfg.Telemetry.FetchDelayMS = tf.Telemetry.FetchDelayMS
			}
		}
	}
	if tf.Logging != nil {
		if section, ok := rawSection(raw, "logging"); ok {
			if _, exists := section["level"]; exists {
				cfg.Logging.Level = tf.Logging.Level
			}
			if _, exists := section["path"]; exists {
				cfg.Logging.Path = expandTilde(tf.Logging.Path)
			}
			if _, exists := section["max_size_mb"]; exists {
				cfg.Logging.MaxSizeMB = tf.Logging.MaxSizeMB
			}
			if _, exists := section["max_backups"]; exists {
				cfg.Logging.MaxBackups = tf.Logging.MaxBackups
			}
			if _, exists := section["max_age_days"]; exists {
				cfg.Logging.MaxAgeDays = tf.Logging.MaxAgeDays
			}
		}
	}
}

func rawSection(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Display.RefreshRateMS < 1 {
		errs = append(errs, fmt.Sprintf("refresh_rate_ms must be positive, got %d", cfg.Display.RefreshRateMS))
	}
	if cfg.Display.Theme != ThemeDark && cfg.Display.Theme != ThemeLight {
		errs = append(errs, fmt.Sprintf("theme must be %q or %q, got %q", ThemeDark, ThemeLight, cfg.Display.Theme))
	}

	if _, err := timeline.ParseFrame(cfg.Time.DefaultFrame); err != nil {
		errs = append(errs, fmt.Sprintf("default_frame: %v", err))
	}
	if _, err := timeline.FindZone(cfg.Time.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("timezone: %v", err))
	}
	if err := timeline.ValidateSpeed(cfg.Time.PlaybackSpeed); err != nil {
		errs = append(errs, err.Error())
	}

	if cfg.Alerts.ReloadSeconds < 0 {
		errs = append(errs, fmt.Sprintf("reload_seconds must not be negative, got %d", cfg.Alerts.ReloadSeconds))
	}

	if cfg.Telemetry.FetchDelayMS < 0 {
		errs = append(errs, fmt.Sprintf("fetch_delay_ms must not be negative, got %d", cfg.Telemetry.FetchDelayMS))
	}

	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("logging level must be one of trace, debug, info, warn, error, got %q", cfg.Logging.Level))
	}
	if cfg.Logging.Path == "" {
		errs = append(errs, "logging path must not be empty")
	}
	if cfg.Logging.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("logging max_size_mb must be positive, got %d", cfg.Logging.MaxSizeMB))
	}
	if cfg.Logging.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("logging max_backups must not be negative, got %d", cfg.Logging.MaxBackups))
	}
	if cfg.Logging.MaxAgeDays < 0 {
		errs = append(errs, fmt.Sprintf("logging max_age_days must not be negative, got %d", cfg.Logging.MaxAgeDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
	return nil
}
