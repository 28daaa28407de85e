package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Debug mode uses the
// human-readable console writer, release mode plain JSON.
func Init(ginMode string) {
	if ginMode == "release" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}
