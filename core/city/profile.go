package city

import (
	"fmt"
	"time"

	"github.com/citypulse/mobidemand/core/model"
)

// Anchor is a named city area stations are scattered around.
type Anchor struct {
	Name      string         `json:"name"`
	Latitude  float64        `json:"lat"`
	Longitude float64        `json:"lon"`
	AreaType  model.AreaType `json:"type"`
}

// DemandPattern describes the daily demand shape of an area type.
type DemandPattern struct {
	// PeakHours are the hours of day (0-23) with the highest demand.
	PeakHours []int `json:"peak_hours"`
	// BaseDemand is the expected hourly trip count outside peaks.
	BaseDemand float64 `json:"base_demand"`
}

// IsPeak reports whether h is a peak hour of the pattern.
func (p DemandPattern) IsPeak(h int) bool {
	for _, ph := range p.PeakHours {
		if ph == h {
			return true
		}
	}
	return false
}

// IsShoulder reports whether h is directly adjacent to a peak hour.
func (p DemandPattern) IsShoulder(h int) bool {
	for _, ph := range p.PeakHours {
		if h == ph-1 || h == ph+1 {
			return true
		}
	}
	return false
}

// Climate classifies the months of the year for the weather and seasonal
// demand models. A month may appear in several classes.
type Climate struct {
	HotMonths       []time.Month `json:"hot_months"`
	ColdMonths      []time.Month `json:"cold_months"`
	MonsoonMonths   []time.Month `json:"monsoon_months"`
	PollutionMonths []time.Month `json:"pollution_months"`
	PleasantMonths  []time.Month `json:"pleasant_months"`
}

func containsMonth(ms []time.Month, m time.Month) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

// IsHot reports whether m is a hot month.
func (c Climate) IsHot(m time.Month) bool { return containsMonth(c.HotMonths, m) }

// IsCold reports whether m is a cold month.
func (c Climate) IsCold(m time.Month) bool { return containsMonth(c.ColdMonths, m) }

// IsMonsoon reports whether m falls in the rainy season.
func (c Climate) IsMonsoon(m time.Month) bool { return containsMonth(c.MonsoonMonths, m) }

// IsPolluted reports whether m is a high-pollution month.
func (c Climate) IsPolluted(m time.Month) bool { return containsMonth(c.PollutionMonths, m) }

// IsPleasant reports whether m is a pleasant-weather month.
func (c Climate) IsPleasant(m time.Month) bool { return containsMonth(c.PleasantMonths, m) }

// Holiday is a fixed-date public holiday.
type Holiday struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// Profile bundles everything the generator needs to know about a city.
type Profile struct {
	Name     string                           `json:"name"`
	Anchors  []Anchor                         `json:"anchors"`
	Patterns map[model.AreaType]DemandPattern `json:"patterns"`
	Climate  Climate                          `json:"climate"`
	Holidays []Holiday                        `json:"holidays"`
}

// Pattern returns the demand pattern for the area type. Unknown area types
// fall back to the residential pattern so a partial profile stays usable.
func (p Profile) Pattern(a model.AreaType) DemandPattern {
	if pat, ok := p.Patterns[a]; ok {
		return pat
	}
	return p.Patterns[model.AreaResidential]
}

// IsHoliday reports whether t falls on one of the profile's holidays.
func (p Profile) IsHoliday(t time.Time) bool {
	for _, h := range p.Holidays {
		if t.Month() == h.Month && t.Day() == h.Day {
			return true
		}
	}
	return false
}

// Validate checks the profile is complete enough to generate data from.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if len(p.Anchors) == 0 {
		return fmt.Errorf("profile %s: at least one anchor is required", p.Name)
	}
	for _, a := range p.Anchors {
		if !a.AreaType.Valid() {
			return fmt.Errorf("profile %s: anchor %s has unknown area type %q", p.Name, a.Name, a.AreaType)
		}
	}
	if len(p.Patterns) == 0 {
		return fmt.Errorf("profile %s: demand patterns are required", p.Name)
	}
	for at, pat := range p.Patterns {
		if pat.BaseDemand <= 0 {
			return fmt.Errorf("profile %s: pattern %s: base_demand must be > 0", p.Name, at)
		}
		for _, h := range pat.PeakHours {
			if h < 0 || h > 23 {
				return fmt.Errorf("profile %s: pattern %s: peak hour %d out of range", p.Name, at, h)
			}
		}
	}
	for _, h := range p.Holidays {
		if h.Month < time.January || h.Month > time.December || h.Day < 1 || h.Day > 31 {
			return fmt.Errorf("profile %s: invalid holiday %d/%d", p.Name, h.Month, h.Day)
		}
	}
	return nil
}
