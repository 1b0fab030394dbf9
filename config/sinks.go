package config

import (
	"fmt"

	"github.com/citypulse/mobidemand/infra/sink"
)

// CSVConfig configures the raw dataset directory sink.
type CSVConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

// SetDefaults applies fallback values for optional fields.
func (c *CSVConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "data/raw"
	}
}

// Validate checks mandatory fields when the sink is enabled.
func (c CSVConfig) Validate() error {
	if c.Enabled && c.Dir == "" {
		return fmt.Errorf("csv sink: dir is required")
	}
	return nil
}

// SinksConfig selects and configures the dataset delivery backends.
type SinksConfig struct {
	CSV    CSVConfig         `json:"csv"`
	Influx sink.InfluxConfig `json:"influx"`
	MQTT   sink.MQTTConfig   `json:"mqtt"`
	Kafka  sink.KafkaConfig  `json:"kafka"`
}

// SetDefaults applies fallback values on every sink block.
func (c *SinksConfig) SetDefaults() {
	c.CSV.SetDefaults()
	c.MQTT.SetDefaults()
	c.Kafka.SetDefaults()
}

// Validate checks every enabled sink block.
func (c SinksConfig) Validate() error {
	if err := c.CSV.Validate(); err != nil {
		return err
	}
	if c.Influx.Enabled && c.Influx.URL == "" {
		return fmt.Errorf("influx sink: url is required")
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	return c.Kafka.Validate()
}
