package main

import (
	"context"

	"github.com/arthur-debert/vshell/pkg/vshell"
	"github.com/arthur-debert/vshell/pkg/vshell/config"
)

// openSession starts a session from the persisted snapshot, if any, and
// keeps saving it after every change. An empty state file keeps everything
// in memory.
func openSession(ctx context.Context, cfg *config.Config, banner bool) *vshell.Session {
	opts := []vshell.SessionOption{
		vshell.WithBanner(banner && cfg.Banner),
		vshell.WithInterpreter(vshell.NewInterpreter(vshell.WithMaxTreeDepth(cfg.MaxTreeDepth))),
	}

	if cfg.StateFile == "" {
		vshell.Logger().Debug().Msg("persistence disabled")
		return vshell.NewSession(opts...)
	}

	store := vshell.NewFileStore(cfg.StateFile)
	opts = append(opts, vshell.WithSnapshot(vshell.LoadOrDefault(ctx, store, vshell.Logger())))

	s := vshell.NewSession(opts...)
	vshell.AttachStore(s.Events(), store)
	vshell.Logger().Debug().
		Str("session", s.ID()).
		Str("state", cfg.StateFile).
		Msg("session opened")
	return s
}
