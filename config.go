package mcl

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is fixed for the lifetime of a Localiser.
type Config struct {
	Particles int            `yaml:"particles"`
	Odometry  OdometryConfig `yaml:"odometry"`
	Initial   SpreadConfig   `yaml:"initial"`
	Update    SpreadConfig   `yaml:"update"`
	Estimate  EstimateConfig `yaml:"estimate"`
}

// OdometryConfig holds the noise scale factors of the motion model.
type OdometryConfig struct {
	Rotation    float64 `yaml:"rotation"`
	Translation float64 `yaml:"translation"` // applied to x
	Drift       float64 `yaml:"drift"`       // applied to y
}

// SpreadConfig parameterises one noise stage.
type SpreadConfig struct {
	GaussSD       float64 `yaml:"gauss_sd"`       // linear standard deviation
	VonMisesKappa float64 `yaml:"vonmises_kappa"` // heading concentration, larger is tighter
}

// EstimateConfig selects how the population is reduced to one pose.
type EstimateConfig struct {
	Mode EstimateMode `yaml:"mode"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("mcl: parsing embedded defaults: %v", err))
	}
	return cfg
}

// LoadConfig reads a YAML file over the embedded defaults. Fields absent
// from the file keep their default. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks the configuration before a session starts.
func (c Config) Validate() error {
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidConfig, c.Particles)
	}

	params := []struct {
		name  string
		value float64
	}{
		{"odometry.rotation", c.Odometry.Rotation},
		{"odometry.translation", c.Odometry.Translation},
		{"odometry.drift", c.Odometry.Drift},
		{"initial.gauss_sd", c.Initial.GaussSD},
		{"initial.vonmises_kappa", c.Initial.VonMisesKappa},
		{"update.gauss_sd", c.Update.GaussSD},
		{"update.vonmises_kappa", c.Update.VonMisesKappa},
	}
	for _, p := range params {
		if p.value < 0 || math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	switch c.Estimate.Mode {
	case "", EstimateLinear, EstimateNormalised, EstimateCircular:
	default:
		return fmt.Errorf("%w: unknown estimate mode %q", ErrInvalidConfig, c.Estimate.Mode)
	}
	return nil
}
