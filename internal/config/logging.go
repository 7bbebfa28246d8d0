package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger builds the process logger from cfg: text on stderr, plus JSON
// lines appended to cfg.LogFile when set. Debug level adds source locations.
// The returned cleanup closes the log file.
func SetupLogger(cfg Config) (*slog.Logger, func() error) {
	opts := handlerOptions(cfg.LogLevel)
	noop := func() error { return nil }

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), noop
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		logger.Warn("log file unavailable, logging to stderr only", "file", cfg.LogFile, "error", err)
		return logger, noop
	}

	return fanout(os.Stderr, file, opts), file.Close
}

// SetupLoggerWithWriters is SetupLogger with caller-provided writers.
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	return fanout(stderr, file, handlerOptions(level))
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
}

func fanout(stderr, file io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		slog.NewTextHandler(stderr, opts),
		slog.NewJSONHandler(file, opts),
	))
}
