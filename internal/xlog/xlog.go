// Package xlog wires github.com/rs/zerolog the way logiface-zerolog wires it
// for joeycumines/go-utilpkg: one shared backend, per-component loggers
// carrying a "component" field, level gated by the owning type's verbosity
// option rather than by a global switch.
package xlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// base is the process-wide zerolog backend. Components never log directly
// to it; they call WithComponent to get a tagged, level-scoped child.
var base = zerolog.New(io.Discard).With().Timestamp().Logger()

func init() {
	if os.Getenv("RRR_LOG") != "" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
}

// WithComponent returns a logger tagged with name, gated at level.
// level follows the CLI's per-component verbosity flags (-V/-P/-O/-A/-Q/-S):
// 0 disables the component's logging entirely.
func WithComponent(name string, level int) zerolog.Logger {
	l := base.With().Str("component", name).Logger()
	if level <= 0 {
		return l.Level(zerolog.Disabled)
	}
	return l.Level(verbosityToLevel(level))
}

func verbosityToLevel(v int) zerolog.Level {
	switch {
	case v >= 3:
		return zerolog.TraceLevel
	case v == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
