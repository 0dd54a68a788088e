// Package logging builds the slog logger of a device.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

var logLevelMapping = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel returns the slog level by name, info for unknown names
func ParseLevel(level string) slog.Level {
	l, ok := logLevelMapping[strings.ToLower(level)]
	if !ok {
		return slog.LevelInfo
	}
	return l
}

// New creates a text logger tagged with the device id
func New(w io.Writer, level, deviceID string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	if deviceID != "" {
		logger = logger.With("device_id", deviceID)
	}
	return logger
}
