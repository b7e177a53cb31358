// Package logging configures the process logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger for the given verbosity:
// 0 warn, 1 info, 2 debug, 3+ trace. Output goes to w without color, or to
// a colored stderr when w is nil.
func Setup(verbosity int, w io.Writer) {
	zerolog.SetGlobalLevel(Level(verbosity))

	noColor := w != nil
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}
	logger := zerolog.New(console).With().Timestamp()
	if verbosity >= 2 {
		logger = logger.Caller()
	}
	log.Logger = logger.Logger()

	log.Debug().Int("verbosity", verbosity).Msg("logger initialized")
}

// Level maps a verbosity count to a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
