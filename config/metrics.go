package config

import (
	"fmt"
	"strings"
)

// MetricsConfig configures operational telemetry.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
}

// SetDefaults applies fallback values for optional fields.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
}

// Validate checks the listen address shape.
func (c MetricsConfig) Validate() error {
	if c.PrometheusEnabled && !strings.Contains(c.PrometheusAddr, ":") {
		return fmt.Errorf("prometheus_addr must be a host:port listen address")
	}
	return nil
}
