// Package logging is git-iris's process-wide structured logger: one
// *slog.Logger initialized once at process start and torn down once at
// exit, in the teacher's own package-level-logger idiom.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	active  *slog.Logger
	closers []io.Closer
)

// Options configures Init.
type Options struct {
	Level  slog.Level
	JSON   bool
	Output io.Writer // defaults to os.Stderr
}

// Init installs the process-wide logger. Calling it again replaces the
// previous logger; callers should call Teardown first if they opened a
// file-backed Output.
func Init(opts Options) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	active = slog.New(handler)
	if c, ok := out.(io.Closer); ok {
		closers = append(closers, c)
	}
	return active
}

// Get returns the active logger, initializing a default stderr text
// logger at Info level if Init was never called.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		active = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return active
}

// Teardown closes any file-backed outputs opened by Init and resets the
// active logger to nil, so the next Get call reinstalls the default.
func Teardown() error {
	mu.Lock()
	defer mu.Unlock()
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closers = nil
	active = nil
	return firstErr
}
