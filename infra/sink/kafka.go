package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/citypulse/mobidemand/core/model"
	"github.com/citypulse/mobidemand/infra/logger"
)

// KafkaConfig configures the Kafka sink.
type KafkaConfig struct {
	Enabled bool     `json:"enabled"`
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
}

// SetDefaults applies fallback values for optional fields.
func (c *KafkaConfig) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "mobidemand.demand"
	}
}

// Validate checks mandatory fields when the sink is enabled.
func (c KafkaConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka sink: at least one broker is required")
	}
	return nil
}

// KafkaSink produces generated records as JSON messages. Demand observations
// go to the configured topic keyed by station, weather and events to sibling
// topics.
type KafkaSink struct {
	demand  *kafka.Writer
	weather *kafka.Writer
	events  *kafka.Writer
	log     logger.Logger
}

// NewKafkaSink creates writers for the demand, weather and events topics.
func NewKafkaSink(cfg KafkaConfig) *KafkaSink {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			MaxAttempts:  3,
		}
	}
	return &KafkaSink{
		demand:  newWriter(cfg.Topic),
		weather: newWriter(cfg.Topic + ".weather"),
		events:  newWriter(cfg.Topic + ".events"),
		log:     logger.New("kafka-sink"),
	}
}

func writeJSON[T any](w *kafka.Writer, items []T, key func(T) []byte) error {
	if len(items) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(items))
	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: key(it), Value: data})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return w.WriteMessages(ctx, msgs...)
}

// RecordDemand produces one message per observation, keyed by station ID so a
// station's series lands on one partition.
func (s *KafkaSink) RecordDemand(recs []model.DemandRecord) error {
	return writeJSON(s.demand, recs, func(r model.DemandRecord) []byte {
		return []byte(strconv.Itoa(r.StationID))
	})
}

// RecordWeather produces one message per weather observation.
func (s *KafkaSink) RecordWeather(recs []model.WeatherRecord) error {
	return writeJSON(s.weather, recs, func(r model.WeatherRecord) []byte {
		return []byte(r.Timestamp.Format(time.RFC3339))
	})
}

// RecordEvents produces one message per city event.
func (s *KafkaSink) RecordEvents(evs []model.CityEvent) error {
	return writeJSON(s.events, evs, func(e model.CityEvent) []byte {
		return []byte(e.Date.Format("2006-01-02"))
	})
}

// RecordStations is a no-op: the station inventory is static reference data
// and is not streamed.
func (s *KafkaSink) RecordStations([]model.Station) error { return nil }

// RecordSummary is a no-op for Kafka.
func (s *KafkaSink) RecordSummary(model.DatasetSummary) error { return nil }

// Close closes all topic writers and returns the first error.
func (s *KafkaSink) Close() error {
	var first error
	for _, w := range []*kafka.Writer{s.demand, s.weather, s.events} {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
