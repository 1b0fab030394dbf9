package model

import "time"

// AreaType classifies the urban area a station serves. The area type drives
// the demand pattern applied to the station.
type AreaType string

const (
	AreaBusinessDistrict AreaType = "business_district"
	AreaResidential      AreaType = "residential"
	AreaTourist          AreaType = "tourist"
	AreaTransportHub     AreaType = "transport_hub"
	AreaEducational      AreaType = "educational"
)

// String returns the wire representation of the area type.
func (a AreaType) String() string { return string(a) }

// Valid reports whether the area type is one of the known values.
func (a AreaType) Valid() bool {
	switch a {
	case AreaBusinessDistrict, AreaResidential, AreaTourist, AreaTransportHub, AreaEducational:
		return true
	}
	return false
}

// Station is a docking or pickup point for shared e-scooters and e-bikes.
type Station struct {
	ID        int      `json:"station_id"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	AreaType  AreaType `json:"area_type"`
	// Anchor is the named city area the station was placed around.
	Anchor string `json:"base_area"`
}

// DemandRecord is one hourly demand observation for a single station.
type DemandRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	StationID   int       `json:"station_id"`
	StationName string    `json:"station_name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	AreaType    AreaType  `json:"area_type"`
	TripCount   int       `json:"trip_count"`
	Hour        int       `json:"hour"`
	DayOfWeek   int       `json:"day_of_week"`
	Month       int       `json:"month"`
	IsWeekend   bool      `json:"is_weekend"`
	IsHoliday   bool      `json:"is_holiday"`
	// Multiplicative factors applied to the base demand before sampling.
	WeatherFactor  float64 `json:"weather_factor"`
	SeasonalFactor float64 `json:"seasonal_factor"`
	EventFactor    float64 `json:"event_factor"`
}

// WeatherCondition is a coarse classification derived from temperature and
// precipitation.
type WeatherCondition string

const (
	ConditionRainy    WeatherCondition = "rainy"
	ConditionHot      WeatherCondition = "hot"
	ConditionCold     WeatherCondition = "cold"
	ConditionPleasant WeatherCondition = "pleasant"
)

// WeatherRecord is the synthetic weather observation for one hour.
type WeatherRecord struct {
	Timestamp       time.Time        `json:"timestamp"`
	TemperatureC    float64          `json:"temperature"`
	HumidityPct     float64          `json:"humidity"`
	WindSpeedKMH    float64          `json:"wind_speed"`
	PrecipitationMM float64          `json:"precipitation"`
	AQI             int              `json:"aqi"`
	Condition       WeatherCondition `json:"weather_condition"`
}

// CityEvent is a scheduled city happening that lifts demand around its venue.
type CityEvent struct {
	Date               time.Time `json:"date"`
	Type               string    `json:"event_type"`
	Name               string    `json:"event_name"`
	ExpectedAttendance int       `json:"expected_attendance"`
	Location           string    `json:"location"`
}

// DatasetSummary describes one completed generation run.
type DatasetSummary struct {
	RunID          string    `json:"run_id"`
	GeneratedAt    time.Time `json:"generation_date"`
	Start          time.Time `json:"start_date"`
	End            time.Time `json:"end_date"`
	City           string    `json:"city"`
	Stations       int       `json:"num_stations"`
	DemandRecords  int       `json:"total_trip_records"`
	WeatherRecords int       `json:"total_weather_records"`
	Events         int       `json:"total_events"`
}
