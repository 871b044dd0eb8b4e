package realtimews

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	// LogLevelDebug logs everything including every inbound frame type
	LogLevelDebug LogLevel = iota
	// LogLevelInfo logs informational messages and above
	LogLevelInfo
	// LogLevelWarn logs warnings and above
	LogLevelWarn
	// LogLevelError logs only errors
	LogLevelError
	// LogLevelOff disables all logging
	LogLevelOff
)

// String returns the string representation of a LogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel converts a string to LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "OFF":
		return LogLevelOff
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// Logger writes leveled, structured events. Each entry is an event name plus
// a field map, e.g. Info("ws_connected", map[string]any{"url": u}).
type Logger struct {
	level LogLevel
	zl    zerolog.Logger
}

// NewLogger creates a logger writing JSON lines to stderr.
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a logger writing JSON lines to w.
func NewLoggerWithWriter(level LogLevel, w io.Writer) *Logger {
	zl := zerolog.New(w).With().Timestamp().Str("component", "realtimews").Logger()
	return &Logger{level: level, zl: zl.Level(level.zerolog())}
}

// NewConsoleLogger creates a human-readable logger, used by the CLIs.
func NewConsoleLogger(level LogLevel, w io.Writer) *Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	return &Logger{level: level, zl: zl.Level(level.zerolog())}
}

// NewLoggerFromEnv creates a logger with level from REALTIMEWS_LOG_LEVEL env var
func NewLoggerFromEnv() *Logger {
	return NewLogger(ParseLogLevel(os.Getenv("REALTIMEWS_LOG_LEVEL")))
}

// Level returns the logger's minimum level
func (l *Logger) Level() LogLevel {
	return l.level
}

// SetLevel updates the logger's minimum level
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
	l.zl = l.zl.Level(level.zerolog())
}

// Debug logs debug-level messages
func (l *Logger) Debug(event string, fields map[string]any) {
	l.zl.Debug().Fields(fields).Msg(event)
}

// Info logs info-level messages
func (l *Logger) Info(event string, fields map[string]any) {
	l.zl.Info().Fields(fields).Msg(event)
}

// Warn logs warning-level messages
func (l *Logger) Warn(event string, fields map[string]any) {
	l.zl.Warn().Fields(fields).Msg(event)
}

// Error logs error-level messages
func (l *Logger) Error(event string, fields map[string]any) {
	l.zl.Error().Fields(fields).Msg(event)
}

// WithContext returns a logger that includes additional fields in every entry.
func (l *Logger) WithContext(context map[string]any) *Logger {
	return &Logger{level: l.level, zl: l.zl.With().Fields(context).Logger()}
}

// DefaultLogger is used when Options.Logger is nil.
var DefaultLogger = NewLoggerFromEnv()
