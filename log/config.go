package log

import (
	"io"
	"iter"
	"log/slog"
	"strings"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"

	case LevelDebug:
		return "debug"

	case LevelInfo:
		return "info"

	case LevelWarn:
		return "warn"

	case LevelError:
		return "error"

	default:
		return slog.Level(l).String()
	}
}

// Levels returns an iterator over all defined log level names.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelTrace,
			LevelDebug,
			LevelInfo,
			LevelWarn,
			LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a string representation of a log level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, true

	case "debug":
		return LevelDebug, true

	case "info", "":
		return LevelInfo, true

	case "warn", "warning":
		return LevelWarn, true

	case "error":
		return LevelError, true

	default:
		return DefaultLevel, false
	}
}

// Format represents the log output format.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the default log output format.
const DefaultFormat = FormatText

// String returns the lowercase name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "text"
}

// Formats returns an iterator over all defined format names.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatText, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a string representation of a log format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, true

	case "json":
		return FormatJSON, true

	default:
		return DefaultFormat, false
	}
}

// config holds logger construction options.
type config struct {
	writer io.Writer
	level  Level
	format Format
}

// Option configures a Logger at creation time.
type Option func(*config)

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat sets the log output format.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

func makeConfig(w io.Writer, opts ...Option) config {
	cfg := config{
		writer: w,
		level:  DefaultLevel,
		format: DefaultFormat,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func (c config) handler() slog.Handler {
	hopts := &slog.HandlerOptions{Level: slog.Level(c.level)}

	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.writer, hopts)
	}

	return slog.NewTextHandler(c.writer, hopts)
}
