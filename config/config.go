// Package config provides configuration loading and access for the
// simulation: embedded YAML defaults merged with an optional user overlay,
// exposed through a package-level singleton.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the internal simulation parameters: time stepping, domain
// geometry, boundaries, thermostat, particle types, a single default cuboid
// cluster, and output settings. Decoding of external scene files is left to
// the simio package's Reader interface.
type Config struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Domain     DomainConfig     `yaml:"domain"`
	Boundaries BoundariesConfig `yaml:"boundaries"`
	Thermostat ThermostatConfig `yaml:"thermostat"`
	Types      []TypeConfig     `yaml:"types"`
	Cluster    ClusterConfig    `yaml:"cluster"`
	Output     OutputConfig     `yaml:"output"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds the time-stepping and force-field parameters.
type PhysicsConfig struct {
	StartTime      float64               `yaml:"start_time"`
	DeltaT         float64               `yaml:"delta_t"`
	EndTime        float64               `yaml:"end_time"`
	GravityAxis    int                   `yaml:"gravity_axis"`
	GravityConst   float64               `yaml:"gravity_const"`
	ExternalForces []ExternalForceConfig `yaml:"external_forces"`
}

// ExternalForceConfig adds a constant body force to specific particle ids,
// e.g. to pull a membrane upward by a few of its particles. until_time <= 0
// keeps the force active for the whole run.
type ExternalForceConfig struct {
	ParticleIDs []int      `yaml:"particle_ids"`
	Vector      [3]float64 `yaml:"vector"`
	UntilTime   float64    `yaml:"until_time"`
}

// DomainConfig describes the simulation box and the linked-cell cutoff.
type DomainConfig struct {
	Origin [3]float64 `yaml:"origin"`
	Size   [3]float64 `yaml:"size"`
	Cutoff float64    `yaml:"cutoff"`
}

// BoundariesConfig names the boundary kind ("outflow", "soft-reflective",
// "periodic") for each active face. Front/Back must be empty for a 2-D
// domain (Size[2] == 0); validate rejects them otherwise.
type BoundariesConfig struct {
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	Top    string `yaml:"top"`
	Bottom string `yaml:"bottom"`
	Front  string `yaml:"front"`
	Back   string `yaml:"back"`
}

// ThermostatConfig configures the rescaling thermostat. Kind is one of
// "classical", "individual", "none". Frequency == 0 disables periodic
// rescaling (Init still runs once at startup if InitTemp > 0).
type ThermostatConfig struct {
	Kind       string  `yaml:"kind"`
	InitTemp   float64 `yaml:"init_temp"`
	TargetTemp float64 `yaml:"target_temp"`
	MaxDelta   float64 `yaml:"max_delta"`
	Frequency  int     `yaml:"frequency"`
}

// TypeConfig registers one particle type's Lennard-Jones parameters.
// TypeID 0 is reserved and must not be used.
type TypeConfig struct {
	TypeID     int     `yaml:"type_id"`
	Epsilon    float64 `yaml:"epsilon"`
	Sigma      float64 `yaml:"sigma"`
	Stationary bool    `yaml:"stationary"`
}

// ClusterConfig describes a single default cuboid population, used by the
// "cluster" reader kind when no external scene file is supplied.
type ClusterConfig struct {
	Origin  [3]float64 `yaml:"origin"`
	Dim     [3]int     `yaml:"dim"`
	Spacing float64    `yaml:"spacing"`
	Mass    float64    `yaml:"mass"`
	Vel     [3]float64 `yaml:"vel"`
	TypeID  int        `yaml:"type_id"`
}

// OutputConfig configures how often the driver writes frames, refreshes the
// grid, and samples analytics, plus which writer/analytics backend to use.
type OutputConfig struct {
	PlotFrequency     int    `yaml:"plot_frequency"`
	GridFrequency     int    `yaml:"grid_frequency"`
	AnalysisFrequency int    `yaml:"analysis_frequency"`
	WriterKind        string `yaml:"writer_kind"`
	Dir               string `yaml:"dir"`
}

// DerivedConfig holds values computed once after loading, to avoid
// recomputing them every step.
type DerivedConfig struct {
	TwoD bool
	Dim  int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// validate catches the configuration errors that must abort before the
// loop starts.
func (c *Config) validate() error {
	if c.Physics.StartTime >= c.Physics.EndTime {
		return fmt.Errorf("config: start_time (%v) must be < end_time (%v)", c.Physics.StartTime, c.Physics.EndTime)
	}
	for _, t := range c.Types {
		if t.TypeID == 0 {
			return fmt.Errorf("config: type_id 0 is reserved")
		}
	}
	twoD := c.Domain.Size[2] == 0
	if twoD && (c.Boundaries.Front != "" || c.Boundaries.Back != "") {
		return fmt.Errorf("config: front/back boundaries set on a 2-D domain")
	}
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.TwoD = c.Domain.Size[2] == 0
	if c.Derived.TwoD {
		c.Derived.Dim = 2
	} else {
		c.Derived.Dim = 3
	}
}
