package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/citypulse/mobidemand/core/city"
	"github.com/citypulse/mobidemand/core/model"
)

// anchorJitterDeg is the maximum lat/lon offset applied around an anchor,
// roughly a 2 km radius.
const anchorJitterDeg = 0.02

// PlaceStations scatters n stations around the profile's anchors. Placement
// is deterministic for a given seed.
func PlaceStations(p city.Profile, n int, seed int64) []model.Station {
	rng := rand.New(rand.NewSource(seed))
	stations := make([]model.Station, 0, n)
	for i := 0; i < n; i++ {
		a := p.Anchors[rng.Intn(len(p.Anchors))]
		lat := a.Latitude + (rng.Float64()*2-1)*anchorJitterDeg
		lon := a.Longitude + (rng.Float64()*2-1)*anchorJitterDeg
		stations = append(stations, model.Station{
			ID:        i,
			Name:      fmt.Sprintf("Station_%d_%s", i, strings.ReplaceAll(a.Name, " ", "_")),
			Latitude:  lat,
			Longitude: lon,
			AreaType:  a.AreaType,
			Anchor:    a.Name,
		})
	}
	return stations
}
