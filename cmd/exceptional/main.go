package main

import (
	"github.com/thanhminhmr/go-exceptional/exceptional"
	"github.com/thanhminhmr/go-exceptional/http"
	"github.com/thanhminhmr/go-exceptional/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.WithLogger(log.InitFxLogger),
		log.Module,
		fx.Provide(
			fx.Annotate(
				newMetricsRegistry,
				fx.As(new(prometheus.Registerer)),
				fx.As(new(prometheus.Gatherer)),
			),
		),
		exceptional.Module,
		http.Module,
		fx.Invoke(registerRoutes),
	).Run()
}

func newMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}
