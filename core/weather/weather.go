// Package weather synthesizes hourly weather observations matching the city
// profile's climate, so generated demand data ships with a correlated weather
// dataset.
package weather

import (
	"math"
	"math/rand"
	"time"

	"github.com/citypulse/mobidemand/core/city"
	"github.com/citypulse/mobidemand/core/model"
)

// Synthesizer draws one weather record per hour.
type Synthesizer struct {
	climate city.Climate
	rng     *rand.Rand
}

// NewSynthesizer creates a seeded synthesizer for the given climate.
func NewSynthesizer(climate city.Climate, seed int64) *Synthesizer {
	return &Synthesizer{climate: climate, rng: rand.New(rand.NewSource(seed))}
}

// At returns the weather observation for the hour t.
func (s *Synthesizer) At(t time.Time) model.WeatherRecord {
	mo := t.Month()

	var temp, humidity float64
	switch {
	case s.climate.IsHot(mo):
		temp = s.uniform(35, 45)
		humidity = s.uniform(30, 60)
	case s.climate.IsCold(mo):
		temp = s.uniform(8, 20)
		humidity = s.uniform(50, 80)
	default:
		temp = s.uniform(20, 35)
		humidity = s.uniform(40, 70)
	}

	wind := s.uniform(5, 25)

	var precip float64
	if s.climate.IsMonsoon(mo) {
		if s.rng.Float64() < 0.4 {
			precip = s.uniform(0, 20)
		}
	} else if s.rng.Float64() < 0.1 {
		precip = s.uniform(0, 2)
	}

	return model.WeatherRecord{
		Timestamp:       t,
		TemperatureC:    round1(temp),
		HumidityPct:     round1(humidity),
		WindSpeedKMH:    round1(wind),
		PrecipitationMM: round1(precip),
		AQI:             50 + s.rng.Intn(251),
		Condition:       Classify(temp, precip),
	}
}

// Classify derives the coarse condition label from temperature and
// precipitation.
func Classify(tempC, precipMM float64) model.WeatherCondition {
	switch {
	case precipMM > 5:
		return model.ConditionRainy
	case tempC > 35:
		return model.ConditionHot
	case tempC < 15:
		return model.ConditionCold
	default:
		return model.ConditionPleasant
	}
}

func (s *Synthesizer) uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
