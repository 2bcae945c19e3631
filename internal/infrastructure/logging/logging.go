package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/andrescamacho/greeter-go/internal/infrastructure/config"
)

// NewLogger builds an slog.Logger from logging configuration
func NewLogger(cfg *config.LoggingConfig) (*slog.Logger, error) {
	out, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler), nil
}

func openOutput(cfg *config.LoggingConfig) (io.Writer, error) {
	switch cfg.Output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging output is 'file' but file_path is empty")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported logging output: %s", cfg.Output)
	}
}

// ParseLevel converts a configuration level string to an slog level.
// Unknown levels fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
