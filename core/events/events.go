// Package events defines the payloads published on the internal event bus
// while datasets are generated.
package events

import (
	"time"

	"github.com/citypulse/mobidemand/core/model"
)

// Event is implemented by every bus payload.
type Event interface{ event() }

// DemandEvent carries the demand records emitted for one hour.
type DemandEvent struct {
	Records []model.DemandRecord
	Time    time.Time
}

// WeatherEvent carries the weather observation for one hour.
type WeatherEvent struct {
	Record model.WeatherRecord
}

// SummaryEvent signals a completed backfill run.
type SummaryEvent struct {
	Summary model.DatasetSummary
}

func (DemandEvent) event()  {}
func (WeatherEvent) event() {}
func (SummaryEvent) event() {}
