package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/molsim/internal/force"
	"github.com/san-kum/molsim/internal/linkedcell"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTEnd               = 5.0
	DefaultDeltaT             = 0.0002
	DefaultEpsilon            = 5.0
	DefaultSigma              = 1.0
	DefaultCutoffRadius       = 3.0
	DefaultWriteFrequency     = 10
	DefaultBaseName           = "MD"
	DefaultFormat             = "xyz"
	DefaultSeed               = 42069
	DefaultBrownianDimensions = 2

	ForceLennardJones = "lennard-jones"
	ForceGravity      = "gravity"

	ContainerLinkedCell = "linked-cell"
	ContainerDirect     = "direct"
)

// ErrInvalidConfig is wrapped by every validation failure together with the
// offending key.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Simulation SimulationConfig `yaml:"simulation"`
	Domain     DomainConfig     `yaml:"domain"`
	Cuboids    []CuboidConfig   `yaml:"cuboids"`
	Discs      []DiscConfig     `yaml:"discs,omitempty"`
}

type OutputConfig struct {
	BaseName       string `yaml:"base_name"`
	WriteFrequency int    `yaml:"write_frequency"`
	Format         string `yaml:"format"`
	Dir            string `yaml:"dir,omitempty"`
}

type SimulationConfig struct {
	TEnd              float64 `yaml:"t_end"`
	DeltaT            float64 `yaml:"delta_t"`
	Epsilon           float64 `yaml:"epsilon"`
	Sigma             float64 `yaml:"sigma"`
	CutoffRadius      float64 `yaml:"cutoff_radius"`
	RepulsionDistance float64 `yaml:"repulsion_distance,omitempty"`
	Force             string  `yaml:"force"`
	Container         string  `yaml:"container"`
	Parallel          string  `yaml:"parallel"`
	Workers           int     `yaml:"workers,omitempty"`
	Seed              uint64  `yaml:"seed"`
	BrownianDims      int     `yaml:"brownian_dimensions"`
}

type DomainConfig struct {
	Origin   [3]float64 `yaml:"origin"`
	Size     [3]float64 `yaml:"size"`
	Boundary []string   `yaml:"boundary"`
}

type CuboidConfig struct {
	Position     [3]float64 `yaml:"position"`
	Velocity     [3]float64 `yaml:"velocity"`
	Dimensions   [3]int     `yaml:"dimensions"`
	MeshWidth    float64    `yaml:"mesh_width"`
	Mass         float64    `yaml:"mass"`
	MeanVelocity float64    `yaml:"mean_velocity"`
	Type         int        `yaml:"type,omitempty"`
}

type DiscConfig struct {
	Center       [3]float64 `yaml:"center"`
	Velocity     [3]float64 `yaml:"velocity"`
	Radius       int        `yaml:"radius"`
	MeshWidth    float64    `yaml:"mesh_width"`
	Mass         float64    `yaml:"mass"`
	MeanVelocity float64    `yaml:"mean_velocity"`
	Type         int        `yaml:"type,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			BaseName:       DefaultBaseName,
			WriteFrequency: DefaultWriteFrequency,
			Format:         DefaultFormat,
		},
		Simulation: SimulationConfig{
			TEnd:         DefaultTEnd,
			DeltaT:       DefaultDeltaT,
			Epsilon:      DefaultEpsilon,
			Sigma:        DefaultSigma,
			CutoffRadius: DefaultCutoffRadius,
			Force:        ForceLennardJones,
			Container:    ContainerLinkedCell,
			Parallel:     force.Serial.String(),
			Seed:         DefaultSeed,
			BrownianDims: DefaultBrownianDimensions,
		},
		Domain: DomainConfig{
			Size:     [3]float64{180, 90, 1},
			Boundary: []string{"outflow"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Boundaries parses the six face types of the domain.
func (d DomainConfig) Boundaries() (linkedcell.Boundaries, error) {
	return linkedcell.ParseBoundaries(d.Boundary)
}

func (s SimulationConfig) Strategy() (force.Strategy, error) {
	return force.ParseStrategy(s.Parallel)
}

// NumParticles is the particle count the cuboids and discs will generate.
func (c *Config) NumParticles() int {
	n := 0
	for _, cu := range c.Cuboids {
		n += cu.Dimensions[0] * cu.Dimensions[1] * cu.Dimensions[2]
	}
	for _, d := range c.Discs {
		n += discPoints(d.Radius)
	}
	return n
}

func discPoints(r int) int {
	n := 0
	for i := -r; i <= r; i++ {
		for j := -r; j <= r; j++ {
			if i*i+j*j <= r*r {
				n++
			}
		}
	}
	return n
}
