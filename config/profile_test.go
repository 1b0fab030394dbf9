package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/citypulse/mobidemand/core/model"
)

const sampleProfile = `
name: Testville
anchors:
  - name: Old Town
    lat: 52.52
    lon: 13.405
    type: tourist
  - name: Campus
    lat: 52.51
    lon: 13.39
    type: educational
patterns:
  tourist:
    peak_hours: [11, 15, 19]
    base_demand: 10
  educational:
    peak_hours: [8, 13, 17]
    base_demand: 12
  residential:
    peak_hours: [8, 18]
    base_demand: 8
climate:
  hot_months: [6, 7, 8]
  cold_months: [12, 1, 2]
  pleasant_months: [4, 5, 9, 10]
holidays:
  - month: 10
    day: 3
`

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile(writeConfig(t, "profile.yaml", sampleProfile))
	require.NoError(t, err)
	require.Equal(t, "Testville", p.Name)
	require.Len(t, p.Anchors, 2)
	require.Equal(t, model.AreaTourist, p.Anchors[0].AreaType)
	require.Equal(t, 10.0, p.Pattern(model.AreaTourist).BaseDemand)
	require.True(t, p.Climate.IsHot(time.July))
	require.True(t, p.IsHoliday(time.Date(2024, time.October, 3, 12, 0, 0, 0, time.UTC)))
}

func TestLoadProfileRejectsIncomplete(t *testing.T) {
	_, err := LoadProfile(writeConfig(t, "profile.yaml", "name: Nowhere\n"))
	require.Error(t, err)
}

func TestResolveProfile(t *testing.T) {
	p, err := ResolveProfile(GeneratorConfig{City: "Delhi"})
	require.NoError(t, err)
	require.Equal(t, "Delhi", p.Name)

	_, err = ResolveProfile(GeneratorConfig{City: "atlantis"})
	require.Error(t, err)

	p, err = ResolveProfile(GeneratorConfig{ProfileFile: writeConfig(t, "profile.yaml", sampleProfile)})
	require.NoError(t, err)
	require.Equal(t, "Testville", p.Name)
}
