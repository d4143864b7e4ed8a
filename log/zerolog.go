package log

import (
	"context"
	"io"
	"os"

	"github.com/thanhminhmr/go-exceptional/configuration"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	Level   string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Console bool   `env:"LOG_CONSOLE"`
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano
	configuration.SetDefault("LOG_LEVEL", "info")
	configuration.SetDefault("LOG_CONSOLE", "true")
}

// Module provides the *zerolog.Logger and the application context.
var Module = fx.Module("log",
	fx.Provide(
		configuration.Loader(&Config{}),
		ConsoleLogger,
	),
)

// ConsoleLogger creates the application logger writing to stderr, human
// readable unless the config asks for JSON lines. The returned context carries
// the logger and is cancelled when the application stops.
func ConsoleLogger(lifecycle fx.Lifecycle, config *Config) (*zerolog.Logger, context.Context, error) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, nil, err
	}
	// create the logger
	logger := newLogger(os.Stderr, config.Console).Level(level)
	// create the global context with lifecycle cancel binding and the logger
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return zerolog.Ctx(ctx), ctx, nil
}

func newLogger(output io.Writer, console bool) zerolog.Logger {
	if console {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "2006-01-02T15:04:05.000000000Z07:00",
		}
	}
	return zerolog.New(output).With().Timestamp().Caller().Logger()
}
