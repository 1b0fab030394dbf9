package sink

import "github.com/citypulse/mobidemand/core/model"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDemand forwards the batch to all sinks, returning the first error.
func (m *MultiSink) RecordDemand(recs []model.DemandRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordDemand(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordWeather forwards the batch to all sinks, returning the first error.
func (m *MultiSink) RecordWeather(recs []model.WeatherRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordWeather(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvents forwards the batch to all sinks, returning the first error.
func (m *MultiSink) RecordEvents(evs []model.CityEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordEvents(evs); err != nil {
			return err
		}
	}
	return nil
}

// RecordStations forwards the batch to all sinks, returning the first error.
func (m *MultiSink) RecordStations(sts []model.Station) error {
	for _, s := range m.Sinks {
		if err := s.RecordStations(sts); err != nil {
			return err
		}
	}
	return nil
}

// RecordSummary forwards the summary to all sinks, returning the first error.
func (m *MultiSink) RecordSummary(sum model.DatasetSummary) error {
	for _, s := range m.Sinks {
		if err := s.RecordSummary(sum); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and returns the first error encountered. All sinks
// are attempted regardless of earlier failures.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
