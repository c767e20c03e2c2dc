package logger

import (
	"io"
	"mariachi/config"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const FormatJSON = "json"

// InitLogger installs a console logger at trace level. Configure narrows it once
// the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and output format and tags every entry
// with the application name.
func Configure(cfg *config.Config) {
	log.Logger = New(os.Stdout, cfg.Server.LogFormat).With().Str("app", cfg.App.Name).Logger()

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// New builds a logger writing JSON lines for FormatJSON and console text otherwise.
func New(out io.Writer, format string) zerolog.Logger {
	if format == FormatJSON {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}).With().Timestamp().Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
