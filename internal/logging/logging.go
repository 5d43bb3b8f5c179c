// Package logging provides leveled logging for jellytube.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}).With().Timestamp().Logger()

// Setup applies the configured log level. Unknown or empty levels fall
// back to info.
func Setup(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	log = log.Level(lvl)
}

// D logs a debug message.
func D(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}

// I logs an info message.
func I(format string, args ...any) {
	log.Info().Msgf(format, args...)
}

// W logs a warning message.
func W(format string, args ...any) {
	log.Warn().Msgf(format, args...)
}

// E logs an error message.
func E(format string, args ...any) {
	log.Error().Msgf(format, args...)
}
