// Package generator produces synthetic micro-mobility datasets: station
// inventories, hourly demand observations, weather series and city events.
// It supports a one-shot historical backfill and a live streaming mode.
package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/citypulse/mobidemand/config"
	"github.com/citypulse/mobidemand/core/city"
	"github.com/citypulse/mobidemand/core/demand"
	"github.com/citypulse/mobidemand/core/events"
	"github.com/citypulse/mobidemand/core/model"
	"github.com/citypulse/mobidemand/core/weather"
	"github.com/citypulse/mobidemand/infra/logger"
	"github.com/citypulse/mobidemand/infra/sink"
	"github.com/citypulse/mobidemand/internal/eventbus"
)

// Streamer periodically emits the current hour's observations for the whole
// station set.
type Streamer struct {
	cfg      config.GeneratorConfig
	stations []model.Station
	dm       *demand.Model
	wx       *weather.Synthesizer
	bus      *eventbus.Bus[events.Event]
	sink     sink.Sink
	log      logger.Logger
	rand     *rand.Rand
}

// NewStreamer creates a streamer over the given station set. bus and snk may
// be nil.
func NewStreamer(cfg config.GeneratorConfig, profile city.Profile, stations []model.Station, bus *eventbus.Bus[events.Event], snk sink.Sink) *Streamer {
	return &Streamer{
		cfg:      cfg,
		stations: stations,
		dm:       demand.New(profile, uint64(cfg.Seed)),
		wx:       weather.NewSynthesizer(profile.Climate, cfg.Seed),
		bus:      bus,
		sink:     snk,
		log:      logger.New("demand-generator"),
		rand:     rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Start emits observations until the context is cancelled.
func (s *Streamer) Start(ctx context.Context) {
	for {
		interval := s.randomInterval()
		intervalHist.Observe(interval.Seconds())
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if err := s.Emit(time.Now()); err != nil {
			emitErrors.Inc()
			s.log.Errorf("emit: %v", err)
		}
	}
}

// Emit generates and delivers the observations for the hour containing now.
func (s *Streamer) Emit(now time.Time) error {
	hour := now.Truncate(time.Hour)
	f := s.dm.FactorsAt(hour)
	recs := make([]model.DemandRecord, 0, len(s.stations))
	trips := 0
	for _, st := range s.stations {
		rec := s.dm.Observe(st, hour, f)
		trips += rec.TripCount
		recs = append(recs, rec)
	}
	wrec := s.wx.At(hour)

	if s.sink != nil {
		if err := s.sink.RecordDemand(recs); err != nil {
			return err
		}
		if err := s.sink.RecordWeather([]model.WeatherRecord{wrec}); err != nil {
			return err
		}
	}
	if s.bus != nil {
		s.bus.Publish(events.DemandEvent{Records: recs, Time: hour})
		s.bus.Publish(events.WeatherEvent{Record: wrec})
	}

	for _, r := range recs {
		recordsTotal.WithLabelValues(r.AreaType.String()).Inc()
	}
	tripsSum.Add(float64(trips))
	lastEmit.Set(float64(time.Now().Unix()))
	s.log.Infof("emitted %d observations for %s trips=%d condition=%s",
		len(recs), hour.Format(time.RFC3339), trips, wrec.Condition)
	return nil
}

func (s *Streamer) randomInterval() time.Duration {
	min := s.cfg.MinInterval()
	max := s.cfg.MaxInterval()
	if max <= min {
		return min
	}
	d := min + time.Duration(s.rand.Int63n(int64(max-min)))
	if s.cfg.JitterPct > 0 {
		j := 1 + (s.rand.Float64()*2-1)*s.cfg.JitterPct
		d = time.Duration(float64(d) * j)
		if d < min {
			d = min
		}
		if d > max {
			d = max
		}
	}
	return d
}
