package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

func New() zerolog.Logger {
	return NewWithWriter(os.Stdout)
}

func NewWithWriter(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger.Level(zerolog.DebugLevel)
}

// NewConsole is for the CLI, where a human reads stderr.
func NewConsole(level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return WithLevel(zerolog.New(out).With().Timestamp().Logger(), level)
}

// WithLevel parses level names like "debug" or "WARN"; unknown names fall back to info.
func WithLevel(logger zerolog.Logger, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}

func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
