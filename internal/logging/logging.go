// Package logging configures the zerolog logger. The TUI owns the terminal,
// so log lines always go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at path with the given level and tags every
// line with a fresh session id. The returned closer releases the file.
func Setup(level, path string) (io.Closer, string, error) {
	lvl := ParseLevel(level)
	sessionID := uuid.NewString()

	if lvl == zerolog.Disabled || path == "" {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), sessionID, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, "", fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, "", fmt.Errorf("logging: open log file: %w", err)
	}

	log.Logger = New(f, lvl, sessionID)
	return f, sessionID, nil
}

// New builds a logger writing JSON lines to w.
func New(w io.Writer, lvl zerolog.Level, sessionID string) zerolog.Logger {
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("session", sessionID).
		Logger()
}

// ParseLevel maps a config string to a level; unknown values mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "none", "disabled":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
