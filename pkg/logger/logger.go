// Package logger configures the process-wide zerolog logger for the task
// service. main calls Init once with the loaded config; everything else
// receives its logger by injection, with Get as a fallback for code paths
// that run before wiring completes.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the output format and verbosity.
type Options struct {
	// Level is one of trace, debug, info, warn or error. Anything else,
	// including empty, means info.
	Level string
	// Pretty switches from JSON lines to colourised console output for
	// local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu   sync.Mutex
	root zerolog.Logger
	set  bool
)

// Init builds the root logger and records it for Get. Calling Init again
// replaces the root; in practice only main calls it.
func Init(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := level(opts.Level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(out).Level(lvl).With().
		Timestamp().
		Str("service", "task-api").
		Logger()

	mu.Lock()
	root = l
	set = true
	mu.Unlock()
	return l
}

// Get returns the root logger, or a plain stdout JSON logger when Init has
// not run yet.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !set {
		root = zerolog.New(os.Stdout).With().Timestamp().Logger()
		set = true
	}
	return root
}

func level(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}
