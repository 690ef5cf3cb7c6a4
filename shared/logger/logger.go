package logger

import (
	"fleetdesk/config"
	"fleetdesk/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Every line carries the binary that wrote it.
const (
	ComponentAPI       = "api"
	ComponentScheduler = "scheduler"
	ComponentMigrate   = "migrate"
)

const defaultLevel = zerolog.InfoLevel

// InitLogger replaces the global logger. Development gets the console writer,
// other environments write JSON lines.
func InitLogger(cfg *config.Config, component string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var output io.Writer = os.Stdout
	if cfg.Server.Env == constant.ServerEnvDevelopment {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	log.Logger = newLogger(output, cfg.App.Name, component)

	SetLogLevel(cfg)
}

func newLogger(output io.Writer, app, component string) zerolog.Logger {
	logCtx := zerolog.New(output).With().Timestamp().Str("component", component)

	if app != "" {
		logCtx = logCtx.Str("app", app)
	}

	return logCtx.Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Empty or unknown values mean info.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = defaultLevel
		log.Debug().Str("loglevel", config.Server.LogLevel).Msg("No usable log level configured, using info.")
	}

	zerolog.SetGlobalLevel(level)
}
