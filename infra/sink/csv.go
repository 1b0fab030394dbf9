package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/citypulse/mobidemand/core/model"
	"github.com/citypulse/mobidemand/infra/logger"
)

// Dataset file names written inside the sink directory.
const (
	TripFile     = "trip_data.csv"
	WeatherFile  = "weather_data.csv"
	EventsFile   = "events_data.csv"
	StationsFile = "stations.csv"
	SummaryFile  = "data_summary.json"
)

// CSVSink writes the classic raw dataset layout: one CSV per dataset plus a
// JSON run summary. Files are created lazily on first write.
type CSVSink struct {
	dir string
	log logger.Logger

	mu     sync.Mutex
	files  map[string]*csvFile
	closed bool
}

type csvFile struct {
	f *os.File
	w *csv.Writer
}

// NewCSVSink creates a sink writing into dir.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{
		dir:   dir,
		log:   logger.New("csv-sink"),
		files: make(map[string]*csvFile),
	}
}

func (s *CSVSink) writer(name string, header []string) (*csv.Writer, error) {
	if s.closed {
		return nil, fmt.Errorf("csv sink: already closed")
	}
	if cf, ok := s.files[name]; ok {
		return cf.w, nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dataset dir: %w", err)
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s header: %w", name, err)
	}
	s.files[name] = &csvFile{f: f, w: w}
	return w, nil
}

// RecordDemand appends demand rows to trip_data.csv.
func (s *CSVSink) RecordDemand(recs []model.DemandRecord) error {
	if len(recs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := s.writer(TripFile, []string{
		"timestamp", "station_id", "station_name", "latitude", "longitude",
		"area_type", "trip_count", "hour", "day_of_week", "month",
		"is_weekend", "is_holiday", "weather_factor", "seasonal_factor", "event_factor",
	})
	if err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			strconv.Itoa(r.StationID),
			r.StationName,
			formatFloat(r.Latitude),
			formatFloat(r.Longitude),
			r.AreaType.String(),
			strconv.Itoa(r.TripCount),
			strconv.Itoa(r.Hour),
			strconv.Itoa(r.DayOfWeek),
			strconv.Itoa(r.Month),
			strconv.FormatBool(r.IsWeekend),
			strconv.FormatBool(r.IsHoliday),
			formatFloat(r.WeatherFactor),
			formatFloat(r.SeasonalFactor),
			formatFloat(r.EventFactor),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// RecordWeather appends weather rows to weather_data.csv.
func (s *CSVSink) RecordWeather(recs []model.WeatherRecord) error {
	if len(recs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := s.writer(WeatherFile, []string{
		"timestamp", "temperature", "humidity", "wind_speed", "precipitation", "aqi", "weather_condition",
	})
	if err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			formatFloat(r.TemperatureC),
			formatFloat(r.HumidityPct),
			formatFloat(r.WindSpeedKMH),
			formatFloat(r.PrecipitationMM),
			strconv.Itoa(r.AQI),
			string(r.Condition),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// RecordEvents appends event rows to events_data.csv.
func (s *CSVSink) RecordEvents(evs []model.CityEvent) error {
	if len(evs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := s.writer(EventsFile, []string{
		"date", "event_type", "event_name", "expected_attendance", "location",
	})
	if err != nil {
		return err
	}
	for _, e := range evs {
		row := []string{
			e.Date.Format("2006-01-02"),
			e.Type,
			e.Name,
			strconv.Itoa(e.ExpectedAttendance),
			e.Location,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// RecordStations writes the station inventory to stations.csv.
func (s *CSVSink) RecordStations(sts []model.Station) error {
	if len(sts) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := s.writer(StationsFile, []string{
		"station_id", "name", "latitude", "longitude", "area_type", "base_area",
	})
	if err != nil {
		return err
	}
	for _, st := range sts {
		row := []string{
			strconv.Itoa(st.ID),
			st.Name,
			formatFloat(st.Latitude),
			formatFloat(st.Longitude),
			st.AreaType.String(),
			st.Anchor,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// RecordSummary writes the run summary as indented JSON.
func (s *CSVSink) RecordSummary(sum model.DatasetSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, SummaryFile), data, 0o644)
}

// Close flushes and closes all open dataset files.
func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	var first error
	for name, cf := range s.files {
		cf.w.Flush()
		if err := cf.w.Error(); err != nil && first == nil {
			first = fmt.Errorf("flush %s: %w", name, err)
		}
		if err := cf.f.Close(); err != nil && first == nil {
			first = fmt.Errorf("close %s: %w", name, err)
		}
	}
	s.files = nil
	return first
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
