package core

// Logger interface defines logging capabilities
type Logger interface {
	Info() LogEvent
	Debug() LogEvent
	Warn() LogEvent
	Error() LogEvent
	Trace() LogEvent
}

// LogEvent interface for structured logging
type LogEvent interface {
	Str(key, val string) LogEvent
	Int(key string, val int) LogEvent
	Err(err error) LogEvent
	Bool(key string, val bool) LogEvent
	Msg(msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

type nopEvent struct{}

func (NopLogger) Info() LogEvent  { return nopEvent{} }
func (NopLogger) Debug() LogEvent { return nopEvent{} }
func (NopLogger) Warn() LogEvent  { return nopEvent{} }
func (NopLogger) Error() LogEvent { return nopEvent{} }
func (NopLogger) Trace() LogEvent { return nopEvent{} }

func (e nopEvent) Str(string, string) LogEvent { return e }
func (e nopEvent) Int(string, int) LogEvent    { return e }
func (e nopEvent) Err(error) LogEvent          { return e }
func (e nopEvent) Bool(string, bool) LogEvent  { return e }
func (nopEvent) Msg(string)                    {}
