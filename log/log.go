// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("parsed", slog.Int("bindings", n))
//
// The zero-value Logger is valid and discards all messages, so library code
// can log unconditionally without nil checks.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger provides a concurrency-safe simplified logging interface.
// The zero value is a no-op logger.
type Logger struct {
	*slog.Logger
}

// Make creates a new [Logger] that writes to the specified writer.
// The default configuration is [DefaultFormat] and [DefaultLevel].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{Logger: slog.New(cfg.handler())}
}

// With returns a new [Logger] that includes the given attributes in each log
// message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{Logger: slog.New(l.Handler().WithAttrs(attrs))}
}

// TraceContext logs at [LevelTrace] with the given context.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

// DebugContext logs at [LevelDebug] with the given context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

// InfoContext logs at [LevelInfo] with the given context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

// WarnContext logs at [LevelWarn] with the given context.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

// ErrorContext logs at [LevelError] with the given context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs...)
}

func (l Logger) log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if l.Logger == nil {
		return
	}

	l.LogAttrs(ctx, slog.Level(level), msg, attrs...)
}

// Private singleton default logger.
//
//nolint:gochecknoglobals
var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// Default returns the process-wide default logger, writing to stderr.
func Default() Logger {
	defaultOnce.Do(func() {
		defaultLogger = Make(os.Stderr)
	})

	return defaultLogger
}

// Error logs at [LevelError] using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().ErrorContext(context.Background(), msg, attrs...)
}

// Warn logs at [LevelWarn] using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().WarnContext(context.Background(), msg, attrs...)
}

// Info logs at [LevelInfo] using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().InfoContext(context.Background(), msg, attrs...)
}

// Debug logs at [LevelDebug] using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().DebugContext(context.Background(), msg, attrs...)
}
