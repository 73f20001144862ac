// Package logger sets up the dashboard's structured file logging.
//
// The terminal belongs to the TUI, so log lines are written as zerolog JSON
// to a size-rotated file. Warnings and errors are also kept in memory so the
// header can surface them.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// bufferSize is how many recent warnings are retained.
const bufferSize = 100

// Options controls where logs go and how they rotate.
type Options struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger wraps a zerolog.Logger with the in-memory warning buffer.
type Logger struct {
	zerolog.Logger
	buf    *Buffer
	closer io.Closer
}

// ParseLevel parses a level name, falling back to info for anything
// unrecognised.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// New opens (creating directories as needed) a rotating log file.
func New(opts Options) (*Logger, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}

	l := NewWithWriter(w, opts.Level)
	l.closer = w
	return l, nil
}

// NewWithWriter builds a Logger over an arbitrary writer.
func NewWithWriter(w io.Writer, level string) *Logger {
	buf := NewBuffer(bufferSize)
	zl := zerolog.New(w).
		Level(ParseLevel(level)).
		Hook(captureHook{buf: buf, now: time.Now}).
		With().
		Timestamp().
		Str("app", "deepseaguard").
		Logger()

	return &Logger{Logger: zl, buf: buf}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), buf: NewBuffer(1)}
}

// Component returns a child logger tagged with the given component name.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Recent returns captured warnings and errors, oldest first.
func (l *Logger) Recent() []Entry {
	return l.buf.List()
}

// Latest returns the most recent captured warning or error.
func (l *Logger) Latest() (Entry, bool) {
	return l.buf.Latest()
}

// WarningCount is the total number of warnings and errors logged.
func (l *Logger) WarningCount() int {
	w, e := l.buf.Counts()
	return w + e
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
