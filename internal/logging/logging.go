// Package logging configures the process-wide structured logger shared
// by the fieldtrain and fieldpredict binaries. Diagnostics go to
// stderr so stdout stays clean for result tables.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Options selects the handler format and minimum level.
type Options struct {
	Level string // debug, info, warn, error
	JSON  bool
}

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Configure replaces the process logger.
func Configure(opts Options) {
	hopts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(os.Stderr, hopts)
	} else {
		h = slog.NewTextHandler(os.Stderr, hopts)
	}
	current.Store(slog.New(h))
}

// L returns the configured logger.
func L() *slog.Logger {
	return current.Load()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
