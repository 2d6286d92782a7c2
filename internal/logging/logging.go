package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// DefaultFile is where the TUI logs when no file is configured, relative to
// the XDG state directory.
const DefaultFile = "revrec/revrec.log"

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string // empty means stderr
}

// Init installs the default slog logger. The returned func closes the log
// file, if one was opened.
func Init(cfg Config) (func() error, error) {
	w := io.Writer(os.Stderr)
	closeFn := func() error { return nil }

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}

		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}

		w = f
		closeFn = f.Close
	}

	slog.SetDefault(slog.New(NewHandler(w, cfg)))

	return closeFn, nil
}

// NewHandler builds the handler Init installs. Tests use it directly.
func NewHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

// StateFile resolves DefaultFile under the XDG state home, creating parents.
func StateFile() (string, error) {
	path, err := xdg.StateFile(DefaultFile)
	if err != nil {
		return "", fmt.Errorf("resolving log path: %w", err)
	}

	return path, nil
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns the default logger annotated with whatever request
// metadata ctx carries.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if id := RequestID(ctx); id != "" {
		logger = logger.With("request_id", id)
	}

	return logger
}
