package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SlogLogger implements Logger on top of a structured slog.Logger.
// Messages are emitted at the configured level with trailing newlines trimmed.
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger wraps l, logging every Printf at info level.
// A nil logger uses slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l, level: slog.LevelInfo}
}

// WithLevel returns a copy that logs at the given level
func (s *SlogLogger) WithLevel(level slog.Level) *SlogLogger {
	return &SlogLogger{logger: s.logger, level: level}
}

// Printf implements Logger
func (s *SlogLogger) Printf(format string, args ...interface{}) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, s.level) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	s.logger.Log(ctx, s.level, msg)
}

// NopLogger discards all output
type NopLogger struct{}

// Printf implements Logger and discards the message
func (NopLogger) Printf(string, ...interface{}) {}
