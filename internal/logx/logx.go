// Package logx builds the zerolog logger used by the railway CLI.
package logx

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrBadLevel indicates an unknown log level name.
var ErrBadLevel = errors.New("unknown log level")

// DefaultLevel is used when no level is configured.
const DefaultLevel = zerolog.InfoLevel

// Options configures New.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means
	// DefaultLevel.
	Level string

	// Verbose forces debug level regardless of Level.
	Verbose bool

	// JSON writes one JSON object per event instead of console lines.
	JSON bool

	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// ParseLevel maps a level name to a zerolog level. The empty string selects
// DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrBadLevel, s)
	}
	return lvl, nil
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if opts.Verbose {
		lvl = zerolog.DebugLevel
	}

	out := w
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    opts.NoColor,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
