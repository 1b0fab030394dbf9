package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

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

// Backfill generates the full historical dataset for the configured date
// range and writes it through the sink hour by hour.
type Backfill struct {
	cfg      config.GeneratorConfig
	profile  city.Profile
	stations []model.Station
	bus      *eventbus.Bus[events.Event]
	sink     sink.Sink
	log      logger.Logger
}

// NewBackfill creates a backfill run. snk must not be nil; bus may be.
func NewBackfill(cfg config.GeneratorConfig, profile city.Profile, stations []model.Station, bus *eventbus.Bus[events.Event], snk sink.Sink) *Backfill {
	return &Backfill{
		cfg:      cfg,
		profile:  profile,
		stations: stations,
		bus:      bus,
		sink:     snk,
		log:      logger.New("backfill"),
	}
}

// Run sweeps the configured range and returns the dataset summary. The run
// stops early with ctx.Err() when the context is cancelled.
func (b *Backfill) Run(ctx context.Context) (model.DatasetSummary, error) {
	start, end, err := b.cfg.Range()
	if err != nil {
		return model.DatasetSummary{}, err
	}
	b.log.Infof("generating demand data from %s to %s for %d stations",
		b.cfg.StartDate, b.cfg.EndDate, len(b.stations))

	if err := b.sink.RecordStations(b.stations); err != nil {
		return model.DatasetSummary{}, fmt.Errorf("record stations: %w", err)
	}

	dm := demand.New(b.profile, uint64(b.cfg.Seed))
	wx := weather.NewSynthesizer(b.profile.Climate, b.cfg.Seed)

	progressEvery := b.cfg.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = 10000
	}
	hours := int(end.Sub(start)/time.Hour) + 1
	total := hours * len(b.stations)
	demandCount, weatherCount := 0, 0
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		select {
		case <-ctx.Done():
			return model.DatasetSummary{}, ctx.Err()
		default:
		}
		f := dm.FactorsAt(t)
		recs := make([]model.DemandRecord, 0, len(b.stations))
		for _, st := range b.stations {
			recs = append(recs, dm.Observe(st, t, f))
		}
		if err := b.sink.RecordDemand(recs); err != nil {
			return model.DatasetSummary{}, fmt.Errorf("record demand: %w", err)
		}
		wrec := wx.At(t)
		if err := b.sink.RecordWeather([]model.WeatherRecord{wrec}); err != nil {
			return model.DatasetSummary{}, fmt.Errorf("record weather: %w", err)
		}
		if b.bus != nil {
			b.bus.Publish(events.DemandEvent{Records: recs, Time: t})
		}
		prev := demandCount
		demandCount += len(recs)
		weatherCount++
		if demandCount/progressEvery != prev/progressEvery {
			b.log.Infof("progress: %.1f%% (%d/%d records)",
				float64(demandCount)/float64(total)*100, demandCount, total)
		}
	}

	cityEvents := b.generateEvents(start, end)
	if err := b.sink.RecordEvents(cityEvents); err != nil {
		return model.DatasetSummary{}, fmt.Errorf("record events: %w", err)
	}

	summary := model.DatasetSummary{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now(),
		Start:          start,
		End:            end,
		City:           b.profile.Name,
		Stations:       len(b.stations),
		DemandRecords:  demandCount,
		WeatherRecords: weatherCount,
		Events:         len(cityEvents),
	}
	if err := b.sink.RecordSummary(summary); err != nil {
		return model.DatasetSummary{}, fmt.Errorf("record summary: %w", err)
	}
	if b.bus != nil {
		b.bus.Publish(events.SummaryEvent{Summary: summary})
	}
	b.log.Infof("generated %d demand, %d weather, %d event records",
		summary.DemandRecords, summary.WeatherRecords, summary.Events)
	return summary, nil
}

var eventTypes = []string{"concert", "festival", "sports", "conference", "exhibition"}

// eventDayChance is the probability that a given day hosts a city event.
const eventDayChance = 0.1

func (b *Backfill) generateEvents(start, end time.Time) []model.CityEvent {
	rng := rand.New(rand.NewSource(b.cfg.Seed + 1))
	var out []model.CityEvent
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if rng.Float64() >= eventDayChance {
			continue
		}
		typ := eventTypes[rng.Intn(len(eventTypes))]
		anchor := b.profile.Anchors[rng.Intn(len(b.profile.Anchors))]
		out = append(out, model.CityEvent{
			Date:               d,
			Type:               typ,
			Name:               fmt.Sprintf("%s %s Event", b.profile.Name, title(typ)),
			ExpectedAttendance: 1000 + rng.Intn(49001),
			Location:           anchor.Name,
		})
	}
	return out
}

func title(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
