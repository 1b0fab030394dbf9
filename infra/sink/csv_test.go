package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/citypulse/mobidemand/core/model"
)

func TestCSVSinkWritesDatasets(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVSink(dir)

	ts := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)
	recs := []model.DemandRecord{
		{
			Timestamp: ts, StationID: 0, StationName: "Station_0_India_Gate",
			Latitude: 28.61, Longitude: 77.23, AreaType: model.AreaTourist,
			TripCount: 12, Hour: 8, DayOfWeek: 0, Month: 3,
			WeatherFactor: 1, SeasonalFactor: 1.2, EventFactor: 1,
		},
		{
			Timestamp: ts, StationID: 1, StationName: "Station_1_JNU",
			Latitude: 28.53, Longitude: 77.16, AreaType: model.AreaEducational,
			TripCount: 27, Hour: 8, DayOfWeek: 0, Month: 3,
			WeatherFactor: 1, SeasonalFactor: 1.2, EventFactor: 1,
		},
	}
	require.NoError(t, s.RecordDemand(recs))
	require.NoError(t, s.RecordWeather([]model.WeatherRecord{{
		Timestamp: ts, TemperatureC: 24.5, HumidityPct: 55, WindSpeedKMH: 12,
		AQI: 180, Condition: model.ConditionPleasant,
	}}))
	require.NoError(t, s.RecordEvents([]model.CityEvent{{
		Date: ts, Type: "festival", Name: "Delhi Festival Event",
		ExpectedAttendance: 20000, Location: "India Gate",
	}}))
	require.NoError(t, s.RecordStations([]model.Station{{
		ID: 0, Name: "Station_0_India_Gate", Latitude: 28.61, Longitude: 77.23,
		AreaType: model.AreaTourist, Anchor: "India Gate",
	}}))
	sum := model.DatasetSummary{
		RunID: "run-1", GeneratedAt: ts, Start: ts, End: ts,
		City: "Delhi", Stations: 2, DemandRecords: 2, WeatherRecords: 1, Events: 1,
	}
	require.NoError(t, s.RecordSummary(sum))
	require.NoError(t, s.Close())

	rows := readCSV(t, filepath.Join(dir, TripFile))
	require.Len(t, rows, 3)
	require.Equal(t, "timestamp", rows[0][0])
	require.Equal(t, "1", rows[2][1])
	require.Equal(t, "27", rows[2][6])
	require.Equal(t, "educational", rows[2][5])

	require.Len(t, readCSV(t, filepath.Join(dir, WeatherFile)), 2)
	eventRows := readCSV(t, filepath.Join(dir, EventsFile))
	require.Len(t, eventRows, 2)
	require.Equal(t, "2024-03-04", eventRows[1][0])
	require.Len(t, readCSV(t, filepath.Join(dir, StationsFile)), 2)

	data, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
	var got model.DatasetSummary
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, sum.RunID, got.RunID)
	require.Equal(t, sum.DemandRecords, got.DemandRecords)
}

func TestCSVSinkEmptyBatchCreatesNoFile(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVSink(dir)
	require.NoError(t, s.RecordDemand(nil))
	require.NoError(t, s.Close())
	_, err := os.Stat(filepath.Join(dir, TripFile))
	require.True(t, os.IsNotExist(err))
}

func TestCSVSinkRejectsWritesAfterClose(t *testing.T) {
	s := NewCSVSink(t.TempDir())
	require.NoError(t, s.Close())
	err := s.RecordDemand([]model.DemandRecord{{StationID: 1}})
	require.Error(t, err)
	// A second close is harmless.
	require.NoError(t, s.Close())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
