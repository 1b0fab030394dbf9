package demand

import (
	"time"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/citypulse/mobidemand/core/city"
	"github.com/citypulse/mobidemand/core/model"
)

// Factors are the multiplicative adjustments applied to the base demand of
// every station for a given hour. They are drawn once per hour and shared by
// all stations.
type Factors struct {
	Weather  float64
	Seasonal float64
	Event    float64
}

// Combined returns the product of all factors.
func (f Factors) Combined() float64 { return f.Weather * f.Seasonal * f.Event }

// Model turns a city profile into hourly trip counts. Observed counts are
// Poisson samples around the pattern demand, so repeated runs with the same
// seed yield the same series.
type Model struct {
	profile city.Profile
	src     xrand.Source
	rng     *xrand.Rand
}

// New creates a demand model seeded for reproducible sampling.
func New(profile city.Profile, seed uint64) *Model {
	src := xrand.NewSource(seed)
	return &Model{profile: profile, src: src, rng: xrand.New(src)}
}

// Base returns the expected trip count for an area type at time t before
// environmental factors are applied.
func (m *Model) Base(area model.AreaType, t time.Time) float64 {
	pat := m.profile.Pattern(area)
	h := t.Hour()
	var mult float64
	switch {
	case pat.IsPeak(h):
		mult = 1.5
	case pat.IsShoulder(h):
		mult = 1.2
	case h >= 6 && h <= 22:
		mult = 1.0
	default:
		mult = 0.3
	}
	if isWeekend(t) {
		switch area {
		case model.AreaBusinessDistrict, model.AreaEducational:
			mult *= 0.6
		case model.AreaTourist:
			mult *= 1.3
		}
	}
	return pat.BaseDemand * mult
}

// FactorsAt draws the weather, seasonal and event factors for the hour t.
func (m *Model) FactorsAt(t time.Time) Factors {
	return Factors{
		Weather:  m.weatherFactor(t.Month()),
		Seasonal: m.seasonalFactor(t.Month()),
		Event:    m.eventFactor(),
	}
}

func (m *Model) weatherFactor(mo time.Month) float64 {
	c := m.profile.Climate
	temp := 1.0
	switch {
	case c.IsHot(mo):
		temp = 0.7
	case c.IsCold(mo):
		temp = 0.8
	}
	rain := 1.0
	if c.IsMonsoon(mo) && m.rng.Float64() < 0.3 {
		rain = 0.4
	}
	aqi := 1.0
	if c.IsPolluted(mo) {
		aqi = 0.9
	}
	return temp * rain * aqi
}

func (m *Model) seasonalFactor(mo time.Month) float64 {
	c := m.profile.Climate
	switch {
	case c.IsPleasant(mo):
		return 1.2
	case c.IsMonsoon(mo):
		return 0.9
	case c.IsHot(mo):
		return 0.8
	default:
		return 1.0
	}
}

func (m *Model) eventFactor() float64 {
	if m.rng.Float64() < 0.05 {
		return 1.2 + m.rng.Float64()*0.6
	}
	return 1.0
}

// Sample draws an observed trip count for the given expected demand.
func (m *Model) Sample(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	p := distuv.Poisson{Lambda: lambda, Src: m.src}
	n := int(p.Rand())
	if n < 0 {
		n = 0
	}
	return n
}

// Observe produces the demand record for one station at time t using the
// hour's shared factors.
func (m *Model) Observe(st model.Station, t time.Time, f Factors) model.DemandRecord {
	base := m.Base(st.AreaType, t)
	trips := m.Sample(base * f.Combined())
	return model.DemandRecord{
		Timestamp:      t,
		StationID:      st.ID,
		StationName:    st.Name,
		Latitude:       st.Latitude,
		Longitude:      st.Longitude,
		AreaType:       st.AreaType,
		TripCount:      trips,
		Hour:           t.Hour(),
		DayOfWeek:      weekdayIndex(t),
		Month:          int(t.Month()),
		IsWeekend:      isWeekend(t),
		IsHoliday:      m.profile.IsHoliday(t),
		WeatherFactor:  f.Weather,
		SeasonalFactor: f.Seasonal,
		EventFactor:    f.Event,
	}
}

// weekdayIndex maps time.Weekday to the dataset convention where Monday is 0
// and Sunday is 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
