package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sampleYAML = `
generator:
  city: delhi
  stations: 5
  seed: 7
  start_date: "2024-02-01"
  end_date: "2024-02-03"
  time_zone: UTC
sinks:
  csv:
    enabled: true
    dir: out
  kafka:
    enabled: true
    brokers: ["localhost:9092"]
metrics:
  prometheus_enabled: true
  prometheus_addr: ":9999"
`

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Generator.Stations)
	require.Equal(t, int64(7), cfg.Generator.Seed)
	require.Equal(t, "out", cfg.Sinks.CSV.Dir)
	require.Equal(t, []string{"localhost:9092"}, cfg.Sinks.Kafka.Brokers)
	require.Equal(t, ":9999", cfg.Metrics.PrometheusAddr)

	// Defaults fill the untouched sections.
	require.Equal(t, 10000, cfg.Generator.ProgressEvery)
	require.Equal(t, "mobidemand", cfg.Sinks.MQTT.TopicPrefix)
	require.Equal(t, "mobidemand.demand", cfg.Sinks.Kafka.Topic)

	start, end, err := cfg.Generator.Range()
	require.NoError(t, err)
	require.Equal(t, "2024-02-01", start.Format("2006-01-02"))
	require.Equal(t, "2024-02-03", end.Format("2006-01-02"))
}

func TestLoadJSON(t *testing.T) {
	body := `{"generator": {"city": "delhi", "stations": 3, "time_zone": "UTC"}}`
	cfg, err := Load(writeConfig(t, "config.json", body))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Generator.Stations)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MOBI_GENERATOR__STATIONS", "12")
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Generator.Stations)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "x = 1"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidRanges(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"end before start", `
generator:
  time_zone: UTC
  start_date: "2024-03-01"
  end_date: "2024-02-01"
`},
		{"bad date", `
generator:
  time_zone: UTC
  start_date: "01/02/2024"
`},
		{"bad jitter", `
generator:
  time_zone: UTC
  jitter_pct: 2
`},
		{"interval inversion", `
generator:
  time_zone: UTC
  min_interval_seconds: 60
  max_interval_seconds: 30
`},
		{"kafka without brokers", `
generator:
  time_zone: UTC
sinks:
  kafka:
    enabled: true
`},
		{"mqtt without broker", `
generator:
  time_zone: UTC
sinks:
  mqtt:
    enabled: true
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", tc.body))
			require.Error(t, err)
		})
	}
}

func TestGeneratorDefaults(t *testing.T) {
	var cfg GeneratorConfig
	cfg.SetDefaults()
	require.Equal(t, "delhi", cfg.City)
	require.Equal(t, 50, cfg.Stations)
	require.Equal(t, "2024-01-01", cfg.StartDate)
	require.Equal(t, "2024-12-31", cfg.EndDate)
	require.Equal(t, 3600, cfg.MinIntervalSeconds)
	require.Equal(t, cfg.MinIntervalSeconds, cfg.MaxIntervalSeconds)
	require.NoError(t, cfg.Validate())
}
