package conf

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel converts a config level name into a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger builds the logger described by cfg. Records always go to out, and
// when a log file is configured they are also written there as JSON. The
// returned close func releases the log file.
func NewLogger(cfg LogConfig, out io.Writer) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.Format == "json" {
		primary = slog.NewJSONHandler(out, opts)
	}
	if cfg.File == "" {
		return slog.New(primary), func() error { return nil }, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	handler := slogmulti.Fanout(primary, slog.NewJSONHandler(file, opts))
	return slog.New(handler), file.Close, nil
}

// Discard is a logger that drops every record. It is the library default so
// that embedding the VM stays silent unless a logger is supplied.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
