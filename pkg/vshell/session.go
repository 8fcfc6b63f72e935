package vshell

import (
	"context"

	"github.com/arthur-debert/vshell/pkg/vshell/core"
	"github.com/arthur-debert/vshell/pkg/vshell/filesystem"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BannerLines greet a new session.
var BannerLines = []string{
	"Welcome to WebTerminal v1.0.0",
	`Type "help" for available commands`,
}

// SnapshotChange is the payload of core.EventSnapshotReplaced.
type SnapshotChange struct {
	SessionID string
	Line      string
	Command   Command
	Snapshot  *filesystem.Snapshot
}

// DirectoryChange is the payload of core.EventDirectoryChanged.
type DirectoryChange struct {
	SessionID string
	From      string
	To        string
}

// Session threads the working directory, snapshot and output log through
// successive command lines. It is not safe for concurrent use.
type Session struct {
	id     string
	interp *Interpreter
	state  State
	output []string
	bus    *core.MemoryEventBus
	logger zerolog.Logger
}

type sessionOptions struct {
	snapshot *filesystem.Snapshot
	cwd      string
	banner   bool
	bus      *core.MemoryEventBus
	logger   *zerolog.Logger
	interp   *Interpreter
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

// WithSnapshot starts the session from s instead of the seed.
func WithSnapshot(s *filesystem.Snapshot) SessionOption {
	return func(o *sessionOptions) { o.snapshot = s }
}

// WithCwd starts the session in dir instead of /home.
func WithCwd(dir string) SessionOption {
	return func(o *sessionOptions) { o.cwd = dir }
}

// WithBanner controls whether the welcome lines open the output log.
func WithBanner(enabled bool) SessionOption {
	return func(o *sessionOptions) { o.banner = enabled }
}

// WithEventBus publishes session events on bus.
func WithEventBus(bus *core.MemoryEventBus) SessionOption {
	return func(o *sessionOptions) { o.bus = bus }
}

// WithLogger overrides the package logger for this session.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(o *sessionOptions) { o.logger = &l }
}

// WithInterpreter runs commands through in.
func WithInterpreter(in *Interpreter) SessionOption {
	return func(o *sessionOptions) { o.interp = in }
}

// NewSession creates a session.
func NewSession(opts ...SessionOption) *Session {
	o := sessionOptions{cwd: core.HomeDir, banner: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.snapshot == nil {
		o.snapshot = filesystem.Default()
	}
	if o.interp == nil {
		o.interp = NewInterpreter()
	}
	base := *Logger()
	if o.logger != nil {
		base = *o.logger
	}

	id := uuid.NewString()
	l := base.With().Str("session", id).Logger()
	if o.bus == nil {
		o.bus = core.NewMemoryEventBus(NewLoggerAdapter(&l))
	}

	s := &Session{
		id:     id,
		interp: o.interp,
		state:  State{Cwd: o.cwd, Snapshot: o.snapshot},
		bus:    o.bus,
		logger: l,
	}
	if o.banner {
		s.output = append(s.output, BannerLines...)
	}
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Cwd returns the current working directory.
func (s *Session) Cwd() string { return s.state.Cwd }

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() *filesystem.Snapshot { return s.state.Snapshot }

// Events returns the bus session events are published on.
func (s *Session) Events() *core.MemoryEventBus { return s.bus }

// Output returns a copy of the output log.
func (s *Session) Output() []string {
	return append([]string(nil), s.output...)
}

// Submit runs one command line and returns the lines it produced and the
// working directory afterwards.
func (s *Session) Submit(ctx context.Context, line string) ([]string, string) {
	res := s.interp.Execute(s.state, line)

	if res.Clear {
		s.output = nil
	}
	s.output = append(s.output, res.Lines...)

	name := "unknown"
	if res.Known {
		name = res.Command.String()
	}

	if res.Err != nil {
		s.logger.Debug().
			Str("command", name).
			Str("cwd", s.state.Cwd).
			Err(res.Err).
			Msg("command failed")
		return res.Lines, s.state.Cwd
	}
	if !res.Known {
		return res.Lines, s.state.Cwd
	}

	s.logger.Debug().
		Str("command", name).
		Str("cwd", s.state.Cwd).
		Int("lines", len(res.Lines)).
		Msg("command executed")

	switch {
	case res.Mutated() && !res.Command.Mutating():
		s.logger.Error().
			Str("command", name).
			Msg("read-only command returned a snapshot, ignored")
	case res.Mutated():
		s.state.Snapshot = res.Snapshot
		s.logger.Info().
			Str("command", name).
			Int("entries", res.Snapshot.Len()).
			Msg("snapshot replaced")
		_ = s.bus.Publish(ctx, core.NewBaseEvent(core.EventSnapshotReplaced, SnapshotChange{
			SessionID: s.id,
			Line:      line,
			Command:   res.Command,
			Snapshot:  res.Snapshot,
		}))
	case res.Command.Mutating():
		s.logger.Debug().
			Str("command", name).
			Msg("snapshot unchanged")
	}

	if res.Cwd != "" {
		from := s.state.Cwd
		s.state.Cwd = res.Cwd
		_ = s.bus.Publish(ctx, core.NewBaseEvent(core.EventDirectoryChanged, DirectoryChange{
			SessionID: s.id,
			From:      from,
			To:        res.Cwd,
		}))
	}

	return res.Lines, s.state.Cwd
}
