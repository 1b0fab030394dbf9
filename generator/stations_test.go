package generator

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/citypulse/mobidemand/core/city"
)

func TestPlaceStationsDeterministic(t *testing.T) {
	p := city.Delhi()
	a := PlaceStations(p, 50, 42)
	b := PlaceStations(p, 50, 42)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed should place identical stations")
	}
	c := PlaceStations(p, 50, 43)
	if reflect.DeepEqual(a, c) {
		t.Fatalf("different seeds should place different stations")
	}
}

func TestPlaceStationsAroundAnchors(t *testing.T) {
	p := city.Delhi()
	anchors := make(map[string]city.Anchor, len(p.Anchors))
	for _, a := range p.Anchors {
		anchors[a.Name] = a
	}
	stations := PlaceStations(p, 50, 1)
	if len(stations) != 50 {
		t.Fatalf("expected 50 stations, got %d", len(stations))
	}
	for i, st := range stations {
		if st.ID != i {
			t.Fatalf("station %d has ID %d", i, st.ID)
		}
		a, ok := anchors[st.Anchor]
		if !ok {
			t.Fatalf("station %d references unknown anchor %q", i, st.Anchor)
		}
		if st.AreaType != a.AreaType {
			t.Fatalf("station %d area type %s does not match anchor %s", i, st.AreaType, a.AreaType)
		}
		if math.Abs(st.Latitude-a.Latitude) > anchorJitterDeg || math.Abs(st.Longitude-a.Longitude) > anchorJitterDeg {
			t.Fatalf("station %d placed too far from anchor %s", i, st.Anchor)
		}
		wantPrefix := "Station_"
		if !strings.HasPrefix(st.Name, wantPrefix) || strings.Contains(st.Name, " ") {
			t.Fatalf("unexpected station name %q", st.Name)
		}
	}
}
