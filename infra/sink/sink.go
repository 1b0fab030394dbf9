// Package sink provides the delivery backends for generated datasets. A sink
// receives record batches as they are produced and owns their persistence or
// transport.
package sink

import "github.com/citypulse/mobidemand/core/model"

// Sink receives generated datasets. Implementations must tolerate empty
// batches and be safe to Close more than once.
type Sink interface {
	RecordDemand(recs []model.DemandRecord) error
	RecordWeather(recs []model.WeatherRecord) error
	RecordEvents(evs []model.CityEvent) error
	RecordStations(sts []model.Station) error
	RecordSummary(sum model.DatasetSummary) error
	Close() error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordDemand([]model.DemandRecord) error   { return nil }
func (NopSink) RecordWeather([]model.WeatherRecord) error { return nil }
func (NopSink) RecordEvents([]model.CityEvent) error      { return nil }
func (NopSink) RecordStations([]model.Station) error      { return nil }
func (NopSink) RecordSummary(model.DatasetSummary) error  { return nil }
func (NopSink) Close() error                              { return nil }
