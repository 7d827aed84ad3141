// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at out and sets the level. Production uses
// JSON lines; anything else gets the console writer.
func Setup(out io.Writer, env, level string) {
	if out == nil {
		out = os.Stderr
	}
	production := env == "production"
	if production {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	lvl, known := ParseLevel(level, production)
	zerolog.SetGlobalLevel(lvl)
	if !known {
		log.Warn().Msgf("Unknown log level '%s', defaulting to info.", level)
	}
}

// ParseLevel maps a level name to a zerolog level. An empty name defaults to
// warn in production and info elsewhere; unknown names return info and false.
func ParseLevel(level string, production bool) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "panic":
		return zerolog.PanicLevel, true
	case "disabled":
		return zerolog.Disabled, true
	case "":
		if production {
			return zerolog.WarnLevel, true
		}
		return zerolog.InfoLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}
