package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration of the service.
type Config struct {
	Generator GeneratorConfig `json:"generator"`
	Sinks     SinksConfig     `json:"sinks"`
	Metrics   MetricsConfig   `json:"metrics"`
}

// Load reads the configuration file at path, applies MOBI_ environment
// overrides and validates the result. YAML and JSON files are supported,
// selected by extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("MOBI_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mobi_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Generator.SetDefaults()
	cfg.Sinks.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Generator.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Sinks.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}
