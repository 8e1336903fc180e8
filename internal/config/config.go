package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quadlab/internal/quad"
)

const (
	DefaultStart    = 0.0
	DefaultStop     = 1000.0
	DefaultStep     = 1.0
	DefaultHalvings = 13
	DefaultSinAmp   = 4.0
)

// DefaultCoeffs are the classic polynomial coefficients, indexed by
// power of x.
var DefaultCoeffs = []float64{4, 7, 5, 2}

type Config struct {
	Integrand string    `yaml:"integrand"`
	Rule      string    `yaml:"rule"`
	Start     float64   `yaml:"start"`
	Stop      float64   `yaml:"stop"`
	Step      float64   `yaml:"step"`
	Halvings  int       `yaml:"halvings"`
	Parallel  bool      `yaml:"parallel"`
	Coeffs    []float64 `yaml:"coeffs"`
	SinAmp    float64   `yaml:"sin_amp"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrand: "polysin",
		Rule:      "rectangle",
		Start:     DefaultStart,
		Stop:      DefaultStop,
		Step:      DefaultStep,
		Halvings:  DefaultHalvings,
		Coeffs:    append([]float64(nil), DefaultCoeffs...),
		SinAmp:    DefaultSinAmp,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SweepConfig projects the file config onto the core sweep settings.
func (c *Config) SweepConfig() quad.Config {
	return quad.Config{
		Start:    c.Start,
		Stop:     c.Stop,
		Step:     c.Step,
		Halvings: c.Halvings,
	}
}
