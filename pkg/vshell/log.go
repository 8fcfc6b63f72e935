package vshell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"github.com/rs/zerolog"
)

// logLevelEnv sets the level of the package logger before any config is read.
const logLevelEnv = "VSHELL_LOG_LEVEL"

var logger = DefaultLogger()

// verbosityLevels maps -v counts to levels; anything beyond is trace.
var verbosityLevels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
}

// NewLogger writes plain console lines to w, tagged lib=vshell.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Str("lib", "vshell").
		Logger()
}

// NewTestLogger picks the level from a verbosity count.
func NewTestLogger(w io.Writer, verbose int) zerolog.Logger {
	level := zerolog.TraceLevel
	if verbose >= 0 && verbose < len(verbosityLevels) {
		level = verbosityLevels[verbose]
	}
	return NewLogger(w, level)
}

// LogLevelFromString parses a level name, ignoring case and surrounding
// whitespace.
func LogLevelFromString(levelStr string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q: %w", levelStr, err)
	}
	return level, nil
}

// DefaultLogger logs to stderr at warn, or at the level named by
// VSHELL_LOG_LEVEL when that parses.
func DefaultLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if v, ok := os.LookupEnv(logLevelEnv); ok {
		if parsed, err := LogLevelFromString(v); err == nil {
			level = parsed
		}
	}
	return NewLogger(os.Stderr, level)
}

// Logger returns the package logger.
func Logger() *zerolog.Logger {
	return &logger
}

// SetLogger replaces the package logger. Sessions created afterwards derive
// their loggers from it.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// NewLoggerAdapter lets the core event bus write through l.
func NewLoggerAdapter(l *zerolog.Logger) core.Logger {
	return busLogger{l: l}
}

type busLogger struct {
	l *zerolog.Logger
}

func (b busLogger) Info() core.LogEvent  { return busEvent{b.l.Info()} }
func (b busLogger) Debug() core.LogEvent { return busEvent{b.l.Debug()} }
func (b busLogger) Warn() core.LogEvent  { return busEvent{b.l.Warn()} }
func (b busLogger) Error() core.LogEvent { return busEvent{b.l.Error()} }
func (b busLogger) Trace() core.LogEvent { return busEvent{b.l.Trace()} }

// busEvent wraps a zerolog event, which is nil when the level is disabled.
type busEvent struct {
	e *zerolog.Event
}

func (b busEvent) Str(key, val string) core.LogEvent       { return busEvent{b.e.Str(key, val)} }
func (b busEvent) Int(key string, val int) core.LogEvent   { return busEvent{b.e.Int(key, val)} }
func (b busEvent) Err(err error) core.LogEvent             { return busEvent{b.e.Err(err)} }
func (b busEvent) Bool(key string, val bool) core.LogEvent { return busEvent{b.e.Bool(key, val)} }
func (b busEvent) Msg(msg string)                          { b.e.Msg(msg) }
