package city

import (
	"time"

	"github.com/citypulse/mobidemand/core/model"
)

// Delhi returns the built-in profile for Delhi, the reference city of the
// project's historical datasets.
func Delhi() Profile {
	return Profile{
		Name: "Delhi",
		Anchors: []Anchor{
			{Name: "Connaught Place", Latitude: 28.6315, Longitude: 77.2167, AreaType: model.AreaBusinessDistrict},
			{Name: "India Gate", Latitude: 28.6129, Longitude: 77.2295, AreaType: model.AreaTourist},
			{Name: "Red Fort", Latitude: 28.6562, Longitude: 77.2410, AreaType: model.AreaTourist},
			{Name: "Karol Bagh", Latitude: 28.6519, Longitude: 77.1909, AreaType: model.AreaBusinessDistrict},
			{Name: "Lajpat Nagar", Latitude: 28.5677, Longitude: 77.2353, AreaType: model.AreaResidential},
			{Name: "Dwarka", Latitude: 28.5921, Longitude: 77.0460, AreaType: model.AreaResidential},
			{Name: "Gurgaon Border", Latitude: 28.4595, Longitude: 77.0266, AreaType: model.AreaTransportHub},
			{Name: "Delhi University", Latitude: 28.6857, Longitude: 77.2085, AreaType: model.AreaEducational},
			{Name: "JNU", Latitude: 28.5383, Longitude: 77.1641, AreaType: model.AreaEducational},
			{Name: "Chandni Chowk", Latitude: 28.6506, Longitude: 77.2334, AreaType: model.AreaBusinessDistrict},
		},
		Patterns: map[model.AreaType]DemandPattern{
			model.AreaBusinessDistrict: {PeakHours: []int{8, 9, 17, 18}, BaseDemand: 25},
			model.AreaResidential:      {PeakHours: []int{7, 8, 18, 19}, BaseDemand: 15},
			model.AreaTourist:          {PeakHours: []int{10, 11, 14, 15}, BaseDemand: 20},
			model.AreaTransportHub:     {PeakHours: []int{6, 7, 8, 17, 18, 19}, BaseDemand: 30},
			model.AreaEducational:      {PeakHours: []int{8, 9, 16, 17}, BaseDemand: 18},
		},
		Climate: Climate{
			HotMonths:       []time.Month{time.May, time.June, time.July},
			ColdMonths:      []time.Month{time.December, time.January, time.February},
			MonsoonMonths:   []time.Month{time.July, time.August, time.September},
			PollutionMonths: []time.Month{time.October, time.November, time.December, time.January},
			PleasantMonths:  []time.Month{time.March, time.April, time.October, time.November},
		},
		Holidays: []Holiday{
			{Month: time.January, Day: 26},
			{Month: time.August, Day: 15},
			{Month: time.October, Day: 2},
			{Month: time.December, Day: 25},
		},
	}
}
