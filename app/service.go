package app

import (
	"context"
	"fmt"

	"github.com/citypulse/mobidemand/config"
	"github.com/citypulse/mobidemand/core/events"
	"github.com/citypulse/mobidemand/core/model"
	"github.com/citypulse/mobidemand/generator"
	"github.com/citypulse/mobidemand/infra/logger"
	"github.com/citypulse/mobidemand/infra/metrics"
	"github.com/citypulse/mobidemand/infra/sink"
	"github.com/citypulse/mobidemand/internal/eventbus"
)

// Service runs the streaming demand collector.
type Service struct {
	streamer *generator.Streamer
	bus      *eventbus.Bus[events.Event]
	snk      sink.Sink
	log      logger.Logger

	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	profile, err := config.ResolveProfile(cfg.Generator)
	if err != nil {
		return nil, fmt.Errorf("resolve profile: %w", err)
	}
	stations := generator.PlaceStations(profile, cfg.Generator.Stations, cfg.Generator.Seed)
	snk, err := BuildSink(cfg.Sinks)
	if err != nil {
		return nil, err
	}
	bus := eventbus.New[events.Event]()
	streamer := generator.NewStreamer(cfg.Generator, profile, stations, bus, snk)
	return &Service{
		streamer:    streamer,
		bus:         bus,
		snk:         snk,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	startEventMonitor(ctx, s.bus, s.log)
	s.streamer.Start(ctx)
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return s.snk.Close()
}

// Backfill generates the configured historical dataset and returns its
// summary. The sink is closed before returning so all files are flushed.
func Backfill(ctx context.Context, cfg *config.Config) (model.DatasetSummary, error) {
	profile, err := config.ResolveProfile(cfg.Generator)
	if err != nil {
		return model.DatasetSummary{}, fmt.Errorf("resolve profile: %w", err)
	}
	stations := generator.PlaceStations(profile, cfg.Generator.Stations, cfg.Generator.Seed)
	snk, err := BuildSink(cfg.Sinks)
	if err != nil {
		return model.DatasetSummary{}, err
	}
	bf := generator.NewBackfill(cfg.Generator, profile, stations, nil, snk)
	sum, runErr := bf.Run(ctx)
	if err := snk.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close sink: %w", err)
	}
	return sum, runErr
}

// BuildSink assembles the sink stack selected by the configuration. With no
// sink enabled a NopSink is returned.
func BuildSink(cfg config.SinksConfig) (sink.Sink, error) {
	var builders []func() (sink.Sink, error)
	if cfg.CSV.Enabled {
		builders = append(builders, func() (sink.Sink, error) {
			return sink.NewCSVSink(cfg.CSV.Dir), nil
		})
	}
	if cfg.Influx.Enabled {
		builders = append(builders, func() (sink.Sink, error) {
			return sink.NewInfluxSinkWithFallback(cfg.Influx), nil
		})
	}
	if cfg.MQTT.Enabled {
		builders = append(builders, func() (sink.Sink, error) {
			s, err := sink.NewMQTTSink(cfg.MQTT)
			if err != nil {
				return nil, fmt.Errorf("mqtt sink: %w", err)
			}
			return s, nil
		})
	}
	if cfg.Kafka.Enabled {
		builders = append(builders, func() (sink.Sink, error) {
			return sink.NewKafkaSink(cfg.Kafka), nil
		})
	}
	return assembleSinks(builders)
}

// assembleSinks runs the builders in order. If one fails, the sinks built so
// far are closed before the error is returned.
func assembleSinks(builders []func() (sink.Sink, error)) (sink.Sink, error) {
	var sinks []sink.Sink
	for _, build := range builders {
		s, err := build()
		if err != nil {
			for _, open := range sinks {
				_ = open.Close()
			}
			return nil, err
		}
		sinks = append(sinks, s)
	}
	switch len(sinks) {
	case 0:
		return sink.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return sink.NewMultiSink(sinks...), nil
	}
}
