package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github/chapool/go-disperse/internal/util"
)

// ApplyLogger configures the global zerolog logger according to the server
// config. Called once at startup by every subcommand.
func (c Server) ApplyLogger() {
	zerolog.SetGlobalLevel(util.LogLevelFromString(c.Logger.Level))

	if c.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
