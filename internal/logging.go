package internal

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Logger is the small logging capability passed into the pipeline.
// The upstream platform is noisy and frequently failing by design, so
// callers choose how much of that noise they want to see.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// SlogLogger adapts log/slog to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a slog-backed logger writing to stderr.
// With verbose set, debug records are emitted as well.
func NewSlogLogger(verbose bool) *SlogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &SlogLogger{logger: slog.New(handler)}
}

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// NopLogger discards everything. Used where the caller explicitly wants a
// quiet pipeline, e.g. under the MCP stdio transport.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CaptureLogger records formatted messages for inspection in tests.
type CaptureLogger struct {
	mu      sync.Mutex
	Entries []string
}

func (l *CaptureLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, level+": "+fmt.Sprintf(format, args...))
}

func (l *CaptureLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *CaptureLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *CaptureLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *CaptureLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }
