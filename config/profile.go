package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/citypulse/mobidemand/core/city"
)

// ResolveProfile returns the city profile selected by the generator
// configuration: a profile file when one is set, otherwise a built-in city.
func ResolveProfile(cfg GeneratorConfig) (city.Profile, error) {
	if cfg.ProfileFile != "" {
		return LoadProfile(cfg.ProfileFile)
	}
	switch strings.ToLower(cfg.City) {
	case "delhi":
		return city.Delhi(), nil
	default:
		return city.Profile{}, fmt.Errorf("unknown city %q and no profile_file set", cfg.City)
	}
}

// LoadProfile reads a city profile from a YAML or JSON file.
func LoadProfile(path string) (city.Profile, error) {
	k := koanf.New(".")
	parser, err := parserFor(path)
	if err != nil {
		return city.Profile{}, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return city.Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	var p city.Profile
	if err := k.UnmarshalWithConf("", &p, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return city.Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return city.Profile{}, err
	}
	return p, nil
}
