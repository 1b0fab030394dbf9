package city

import (
	"testing"
	"time"

	"github.com/citypulse/mobidemand/core/model"
)

func TestDelhiValidates(t *testing.T) {
	p := Delhi()
	if err := p.Validate(); err != nil {
		t.Fatalf("delhi profile invalid: %v", err)
	}
	if len(p.Anchors) != 10 {
		t.Fatalf("expected 10 anchors, got %d", len(p.Anchors))
	}
	if len(p.Patterns) != 5 {
		t.Fatalf("expected 5 patterns, got %d", len(p.Patterns))
	}
}

func TestPatternPeakAndShoulder(t *testing.T) {
	p := Delhi().Pattern(model.AreaBusinessDistrict)
	if !p.IsPeak(8) || !p.IsPeak(18) {
		t.Fatalf("expected 8 and 18 to be peak hours")
	}
	if p.IsPeak(12) {
		t.Fatalf("12 should not be a peak hour")
	}
	if !p.IsShoulder(7) || !p.IsShoulder(10) || !p.IsShoulder(16) {
		t.Fatalf("hours adjacent to peaks should be shoulders")
	}
	if p.IsShoulder(12) {
		t.Fatalf("12 should not be a shoulder hour")
	}
}

func TestPatternFallback(t *testing.T) {
	p := Delhi()
	got := p.Pattern(model.AreaType("warehouse"))
	want := p.Patterns[model.AreaResidential]
	if got.BaseDemand != want.BaseDemand {
		t.Fatalf("unknown area type should fall back to residential")
	}
}

func TestIsHoliday(t *testing.T) {
	p := Delhi()
	if !p.IsHoliday(time.Date(2024, time.August, 15, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("Aug 15 should be a holiday")
	}
	if p.IsHoliday(time.Date(2024, time.August, 16, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("Aug 16 should not be a holiday")
	}
}

func TestValidateRejectsBrokenProfiles(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"no name", func(p *Profile) { p.Name = "" }},
		{"no anchors", func(p *Profile) { p.Anchors = nil }},
		{"bad area type", func(p *Profile) { p.Anchors[0].AreaType = "mall" }},
		{"no patterns", func(p *Profile) { p.Patterns = nil }},
		{"zero demand", func(p *Profile) {
			p.Patterns[model.AreaTourist] = DemandPattern{PeakHours: []int{10}, BaseDemand: 0}
		}},
		{"peak out of range", func(p *Profile) {
			p.Patterns[model.AreaTourist] = DemandPattern{PeakHours: []int{24}, BaseDemand: 5}
		}},
		{"bad holiday", func(p *Profile) { p.Holidays = []Holiday{{Month: 13, Day: 1}} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Delhi()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestClimateClassification(t *testing.T) {
	c := Delhi().Climate
	if !c.IsHot(time.June) || c.IsHot(time.December) {
		t.Fatalf("unexpected hot month classification")
	}
	if !c.IsMonsoon(time.August) || c.IsMonsoon(time.March) {
		t.Fatalf("unexpected monsoon month classification")
	}
	if !c.IsPolluted(time.November) || c.IsPolluted(time.June) {
		t.Fatalf("unexpected pollution month classification")
	}
}
