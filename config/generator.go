package config

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// GeneratorConfig configures station placement and data generation.
type GeneratorConfig struct {
	// City selects a built-in profile. Ignored when ProfileFile is set.
	City string `json:"city"`
	// ProfileFile points to a YAML or JSON city profile.
	ProfileFile string `json:"profile_file"`
	Stations    int    `json:"stations"`
	Seed        int64  `json:"seed"`
	// StartDate and EndDate bound the backfill range, inclusive, as
	// YYYY-MM-DD. Hourly records are generated from StartDate 00:00 up to
	// and including EndDate 00:00.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TimeZone  string `json:"time_zone"`
	// Streaming emission cadence.
	MinIntervalSeconds int     `json:"min_interval_seconds"`
	MaxIntervalSeconds int     `json:"max_interval_seconds"`
	JitterPct          float64 `json:"jitter_pct"`
	// ProgressEvery controls backfill progress logging, in records.
	ProgressEvery int `json:"progress_every"`
}

// SetDefaults applies fallback values for optional fields.
func (c *GeneratorConfig) SetDefaults() {
	if c.City == "" && c.ProfileFile == "" {
		c.City = "delhi"
	}
	if c.Stations == 0 {
		c.Stations = 50
	}
	if c.StartDate == "" {
		c.StartDate = "2024-01-01"
	}
	if c.EndDate == "" {
		c.EndDate = "2024-12-31"
	}
	if c.MinIntervalSeconds <= 0 {
		c.MinIntervalSeconds = 3600
	}
	if c.MaxIntervalSeconds <= 0 {
		c.MaxIntervalSeconds = c.MinIntervalSeconds
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = 10000
	}
	if c.TimeZone == "" {
		c.TimeZone = time.Local.String()
	}
}

// Validate checks the configuration ranges.
func (c GeneratorConfig) Validate() error {
	if c.Stations <= 0 {
		return fmt.Errorf("stations must be > 0")
	}
	if c.MinIntervalSeconds > c.MaxIntervalSeconds {
		return fmt.Errorf("min_interval_seconds > max_interval_seconds")
	}
	if c.JitterPct < 0 || c.JitterPct > 1 {
		return fmt.Errorf("jitter_pct must be within [0, 1]")
	}
	start, end, err := c.Range()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s before start_date %s", c.EndDate, c.StartDate)
	}
	return nil
}

// Range parses the configured date range in the configured time zone.
func (c GeneratorConfig) Range() (start, end time.Time, err error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err = time.ParseInLocation(dateLayout, c.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start_date: %w", err)
	}
	end, err = time.ParseInLocation(dateLayout, c.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end_date: %w", err)
	}
	return start, end, nil
}

// Location resolves the configured time zone.
func (c GeneratorConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %s: %w", c.TimeZone, err)
	}
	return loc, nil
}

// MinInterval returns the minimum streaming interval.
func (c GeneratorConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalSeconds) * time.Second
}

// MaxInterval returns the maximum streaming interval.
func (c GeneratorConfig) MaxInterval() time.Duration {
	return time.Duration(c.MaxIntervalSeconds) * time.Second
}
