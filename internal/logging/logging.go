// Package logging opens the client's zerolog file logger. The terminal
// belongs to the UI, so nothing is written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the file logger.
type Options struct {
	// Path is the log file. Parent directories are created.
	Path string
	// Level is debug, info, warn, error or disabled.
	Level string
	// Format is "json" or "console".
	Format string
	// MaxMB truncates the file on open when it is larger.
	MaxMB int
}

// Logger is an open log file plus its zerolog front.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Open creates or appends to the log file.
func Open(opts Options) (*Logger, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if oversized(path, opts.MaxMB) {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{Logger: New(f, opts.Level, opts.Format), file: f}, nil
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) zerolog.Logger {
	out := w
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "meetingmind").
		Logger()
}

// Close flushes and closes the file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a config level to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func oversized(path string, maxMB int) bool {
	if maxMB <= 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > int64(maxMB)<<20
}
