package sink

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/citypulse/mobidemand/core/model"
	"github.com/citypulse/mobidemand/infra/logger"
)

// InfluxConfig configures the InfluxDB sink.
type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// InfluxSink writes generated observations to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails, so a down instance never blocks generation.
func NewInfluxSinkWithFallback(cfg InfluxConfig) Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

// RecordDemand writes one point per demand observation.
func (s *InfluxSink) RecordDemand(recs []model.DemandRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("demand_observation").
			AddTag("station_id", strconv.Itoa(r.StationID)).
			AddTag("area_type", r.AreaType.String()).
			AddTag("is_holiday", strconv.FormatBool(r.IsHoliday)).
			AddField("trip_count", r.TripCount).
			AddField("weather_factor", round3(r.WeatherFactor)).
			AddField("seasonal_factor", round3(r.SeasonalFactor)).
			AddField("event_factor", round3(r.EventFactor)).
			SetTime(r.Timestamp)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordWeather writes one point per weather observation.
func (s *InfluxSink) RecordWeather(recs []model.WeatherRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("weather_observation").
			AddTag("condition", string(r.Condition)).
			AddField("temperature_c", r.TemperatureC).
			AddField("humidity_pct", r.HumidityPct).
			AddField("wind_speed_kmh", r.WindSpeedKMH).
			AddField("precipitation_mm", r.PrecipitationMM).
			AddField("aqi", r.AQI).
			SetTime(r.Timestamp)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvents writes one point per city event.
func (s *InfluxSink) RecordEvents(evs []model.CityEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, e := range evs {
		p := write.NewPointWithMeasurement("city_event").
			AddTag("event_type", e.Type).
			AddTag("location", e.Location).
			AddField("expected_attendance", e.ExpectedAttendance).
			SetTime(e.Date)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordStations writes the station inventory as points.
func (s *InfluxSink) RecordStations(sts []model.Station) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, st := range sts {
		p := write.NewPointWithMeasurement("station").
			AddTag("station_id", strconv.Itoa(st.ID)).
			AddTag("area_type", st.AreaType.String()).
			AddTag("anchor", st.Anchor).
			AddField("latitude", st.Latitude).
			AddField("longitude", st.Longitude).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordSummary writes the run summary as a single point.
func (s *InfluxSink) RecordSummary(sum model.DatasetSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("generation_run").
		AddTag("run_id", sum.RunID).
		AddTag("city", sum.City).
		AddField("stations", sum.Stations).
		AddField("demand_records", sum.DemandRecords).
		AddField("weather_records", sum.WeatherRecords).
		AddField("events", sum.Events).
		SetTime(sum.GeneratedAt)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
