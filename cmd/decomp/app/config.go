package app

import (
	"fmt"
	"math"
	"os"

	"github.com/katalvlaran/massdecomp/decomposer"
	"gopkg.in/yaml.v3"
)

// DefaultAlphabet holds the monoisotopic masses of CHNOPS.
const DefaultAlphabet = "C=12, H=1.00782503207, N=14.0030740048, O=15.99491461956, P=30.97376163, S=31.972071"

type SearchConfig struct {
	PPM        float64 `yaml:"ppm"`
	Absolute   float64 `yaml:"abs"`
	Alphabet   string  `yaml:"alphabet"`
	Bounds     string  `yaml:"bounds"`
	Parent     string  `yaml:"parent"`
	Precision  float64 `yaml:"precision"`
	MassErrors bool    `yaml:"mass_errors"`
	Workers    int     `yaml:"workers"`
	Ion        string  `yaml:"ion"`
	Filter     string  `yaml:"filter"`
}

type Config struct {
	Search  *SearchConfig `yaml:"search"`
	Logging *LoggerConfig `yaml:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		Search: &SearchConfig{
			PPM:       20,
			Absolute:  0.001,
			Alphabet:  DefaultAlphabet,
			Precision: decomposer.DefaultPrecision,
			Workers:   4,
			Ion:       DefaultIon,
			Filter:    FilterNone,
		},
		Logging: &LoggerConfig{Level: "warn"},
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig.
// An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(bytes, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Search == nil {
		return fmt.Errorf("search config is required")
	}

	if c.Logging == nil {
		return fmt.Errorf("logging config is required")
	}

	s := c.Search
	if s.PPM < 0 || s.Absolute < 0 {
		return fmt.Errorf("ppm and abs must be non-negative")
	}

	if s.Alphabet == "" {
		return fmt.Errorf("alphabet is required")
	}

	if !(s.Precision > 0) || math.IsInf(s.Precision, 1) {
		return fmt.Errorf("precision must be positive")
	}

	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if _, err := ParseIon(s.Ion); err != nil {
		return err
	}

	if s.Filter != FilterNone && s.Filter != FilterRDBE {
		return fmt.Errorf("unknown filter %q, allowed are %s, %s", s.Filter, FilterRDBE, FilterNone)
	}

	return nil
}
