package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrConfigExists is returned by WriteDefault when path is already present.
var ErrConfigExists = errors.New("config file already exists")

// Encode renders cfg as a TOML document that LoadFromString accepts.
func Encode(cfg Config) ([]byte, error) {
	tf := tomlFile{
		Display:   &cfg.Display,
		Time:      &cfg.Time,
		Alerts:    &cfg.Alerts,
		Telemetry: &cfg.Telemetry,
		Logging:   &cfg.Logging,
	}

	var buf bytes.Buffer
	buf.WriteString("# DeepSeaGuard dashboard configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(tf); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes DefaultConfig to path, creating parent directories.
// An existing file is never overwritten.
func WriteDefault(path string) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	data, err := Encode(DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
