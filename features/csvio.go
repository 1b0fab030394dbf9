package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/citypulse/mobidemand/core/model"
)

// ReadDemandCSV parses a raw demand dataset in the layout written by the CSV
// sink. Columns are resolved by header name.
func ReadDemandCSV(r io.Reader) ([]model.DemandRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	col := func(row []string, name string) (string, error) {
		i, ok := idx[name]
		if !ok {
			return "", fmt.Errorf("missing column %q", name)
		}
		if i >= len(row) {
			return "", fmt.Errorf("short row: no value for %q", name)
		}
		return row[i], nil
	}

	var recs []model.DemandRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		line++
		rec, err := parseDemandRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
}

func parseDemandRow(row []string, col func([]string, string) (string, error)) (model.DemandRecord, error) {
	var rec model.DemandRecord
	var err error

	get := func(name string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = col(row, name)
		return v
	}
	parseInt := func(name string) int {
		s := get(name)
		if err != nil {
			return 0
		}
		var n int
		n, err = strconv.Atoi(s)
		if err != nil {
			err = fmt.Errorf("column %q: %w", name, err)
		}
		return n
	}
	parseFloat := func(name string) float64 {
		s := get(name)
		if err != nil {
			return 0
		}
		var f float64
		f, err = strconv.ParseFloat(s, 64)
		if err != nil {
			err = fmt.Errorf("column %q: %w", name, err)
		}
		return f
	}
	parseBool := func(name string) bool {
		s := get(name)
		if err != nil {
			return false
		}
		var b bool
		b, err = strconv.ParseBool(s)
		if err != nil {
			err = fmt.Errorf("column %q: %w", name, err)
		}
		return b
	}

	if ts := get("timestamp"); err == nil {
		rec.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			err = fmt.Errorf("column %q: %w", "timestamp", err)
		}
	}
	rec.StationID = parseInt("station_id")
	rec.StationName = get("station_name")
	rec.Latitude = parseFloat("latitude")
	rec.Longitude = parseFloat("longitude")
	rec.AreaType = model.AreaType(get("area_type"))
	rec.TripCount = parseInt("trip_count")
	rec.Hour = parseInt("hour")
	rec.DayOfWeek = parseInt("day_of_week")
	rec.Month = parseInt("month")
	rec.IsWeekend = parseBool("is_weekend")
	rec.IsHoliday = parseBool("is_holiday")
	rec.WeatherFactor = parseFloat("weather_factor")
	rec.SeasonalFactor = parseFloat("seasonal_factor")
	rec.EventFactor = parseFloat("event_factor")
	return rec, err
}

// WriteCSV writes the feature table to w.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	header := []string{
		"timestamp", "station_id", "area_type", "trip_count",
		"hour", "day_of_week", "month", "is_weekend", "is_holiday",
		"lag_1h", "lag_24h", "lag_168h", "rolling_24h_mean", "rolling_24h_std",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Timestamp.Format(time.RFC3339),
			strconv.Itoa(r.StationID),
			r.AreaType.String(),
			strconv.Itoa(r.TripCount),
			strconv.Itoa(r.Hour),
			strconv.Itoa(r.DayOfWeek),
			strconv.Itoa(r.Month),
			strconv.FormatBool(r.IsWeekend),
			strconv.FormatBool(r.IsHoliday),
			strconv.Itoa(r.LagHour),
			strconv.Itoa(r.LagDay),
			strconv.Itoa(r.LagWeek),
			strconv.FormatFloat(r.Rolling24Mean, 'f', -1, 64),
			strconv.FormatFloat(r.Rolling24Std, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
