package app

import (
	"context"
	"sync"

	"github.com/citypulse/mobidemand/core/events"
	"github.com/citypulse/mobidemand/infra/logger"
	"github.com/citypulse/mobidemand/internal/eventbus"
)

// eventMonitor subscribes to the generation bus and keeps running totals so a
// streaming run is observable in the logs without a metrics backend.
type eventMonitor struct {
	log logger.Logger

	mu      sync.Mutex
	batches int
	trips   int
}

// startEventMonitor subscribes to the bus and consumes events until the
// context is cancelled or the bus is closed.
func startEventMonitor(ctx context.Context, bus *eventbus.Bus[events.Event], log logger.Logger) *eventMonitor {
	m := &eventMonitor{log: log}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				m.handle(ev)
			}
		}
	}()
	return m
}

func (m *eventMonitor) handle(ev events.Event) {
	switch e := ev.(type) {
	case events.DemandEvent:
		trips := 0
		for _, r := range e.Records {
			trips += r.TripCount
		}
		m.mu.Lock()
		m.batches++
		m.trips += trips
		batches, total := m.batches, m.trips
		m.mu.Unlock()
		m.log.Debugw("demand batch", map[string]any{
			"records": len(e.Records),
			"trips":   trips,
			"batches": batches,
			"total":   total,
		})
	case events.WeatherEvent:
		m.log.Debugw("weather observation", map[string]any{
			"condition": e.Record.Condition,
			"aqi":       e.Record.AQI,
		})
	case events.SummaryEvent:
		m.log.Infof("run %s complete: %d demand records over %d stations",
			e.Summary.RunID, e.Summary.DemandRecords, e.Summary.Stations)
	}
}

func (m *eventMonitor) totals() (batches, trips int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batches, m.trips
}
