// Package features builds model-ready feature tables from collected raw
// demand data: lagged trip counts, rolling statistics and calendar flags per
// station-hour.
package features

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/citypulse/mobidemand/core/model"
)

// Lag offsets in hours. Weekly seasonality needs the 168 h lag, so rows
// within the first week of a station's series are skipped.
const (
	LagHour = 1
	LagDay  = 24
	LagWeek = 168
)

// RollingWindow is the window size in hours for rolling statistics.
const RollingWindow = 24

// Row is one feature vector for a station-hour.
type Row struct {
	Timestamp     time.Time
	StationID     int
	AreaType      model.AreaType
	TripCount     int
	Hour          int
	DayOfWeek     int
	Month         int
	IsWeekend     bool
	IsHoliday     bool
	LagHour       int
	LagDay        int
	LagWeek       int
	Rolling24Mean float64
	Rolling24Std  float64
}

// Build derives feature rows from raw demand records. Records may arrive in
// any order; each station's series is sorted chronologically first. Rows
// without a full lag window are dropped.
func Build(records []model.DemandRecord) []Row {
	byStation := make(map[int][]model.DemandRecord)
	for _, r := range records {
		byStation[r.StationID] = append(byStation[r.StationID], r)
	}
	ids := make([]int, 0, len(byStation))
	for id := range byStation {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var rows []Row
	window := make([]float64, RollingWindow)
	for _, id := range ids {
		series := byStation[id]
		sort.Slice(series, func(i, j int) bool {
			return series[i].Timestamp.Before(series[j].Timestamp)
		})
		for i := LagWeek; i < len(series); i++ {
			r := series[i]
			for j := 0; j < RollingWindow; j++ {
				window[j] = float64(series[i-RollingWindow+j].TripCount)
			}
			rows = append(rows, Row{
				Timestamp:     r.Timestamp,
				StationID:     r.StationID,
				AreaType:      r.AreaType,
				TripCount:     r.TripCount,
				Hour:          r.Hour,
				DayOfWeek:     r.DayOfWeek,
				Month:         r.Month,
				IsWeekend:     r.IsWeekend,
				IsHoliday:     r.IsHoliday,
				LagHour:       series[i-LagHour].TripCount,
				LagDay:        series[i-LagDay].TripCount,
				LagWeek:       series[i-LagWeek].TripCount,
				Rolling24Mean: stat.Mean(window, nil),
				Rolling24Std:  stat.StdDev(window, nil),
			})
		}
	}
	return rows
}
