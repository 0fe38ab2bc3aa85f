package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger.
var Logger = zerolog.Nop()

// Initialize configures the global logger. Console output is used unless
// jsonOutput is set; unknown levels fall back to info.
func Initialize(w io.Writer, level string, jsonOutput bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if !jsonOutput {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	Logger = zerolog.New(out).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(ParseLevel(level))

	log.Logger = Logger
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ForComponent returns a logger tagged with a component field.
func ForComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}
