package exceptional

import (
	"context"

	"github.com/thanhminhmr/go-exceptional/configuration"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides a *Composer to an fx application. It needs a
// *zerolog.Logger and a prometheus.Registerer.
var Module = fx.Module("exceptional",
	fx.Provide(
		configuration.Loader(&Config{}),
		NewMetrics,
		NewLifecycleComposer,
	),
)

// NewLifecycleComposer creates a Composer bound to the lifecycle: it becomes
// the default Composer and, when enabled, its AutoLoader runs between start
// and stop.
func NewLifecycleComposer(
	lifecycle fx.Lifecycle,
	config *Config,
	logger *zerolog.Logger,
	metrics *Metrics,
) (*Composer, error) {
	composer, err := NewComposer(config, logger, metrics)
	if err != nil {
		return nil, err
	}
	SetDefault(composer)
	if config.AutoLoad {
		autoLoader := NewAutoLoader(composer, logger)
		lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				autoLoader.Init()
				return nil
			},
			OnStop: func(context.Context) error {
				autoLoader.Teardown()
				return nil
			},
		})
	}
	return composer, nil
}
