package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/forces"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
	"github.com/san-kum/fizx/internal/world"
)

const (
	DefaultDt          = 0.01
	DefaultDuration    = 10.0
	DefaultTolerance   = float64(dynamo.DefaultTolerance)
	DefaultWorkers     = 1
	DefaultRecordEvery = 1
)

// Force kinds understood by Build.
const (
	ForceGravity        = "gravity"
	ForceDrag           = "drag"
	ForceSpring         = "spring"
	ForceAnchoredSpring = "anchored_spring"
	ForceBungee         = "bungee"
	ForceBuoyancy       = "buoyancy"
	ForceWind           = "wind"
	ForceTurbulence     = "turbulence"
)

var ErrUnknownForce = errors.New("config: unknown force type")

type Config struct {
	Name        string           `yaml:"name"`
	Dt          float64          `yaml:"dt"`
	Duration    float64          `yaml:"duration"`
	Tolerance   float64          `yaml:"tolerance"`
	Workers     int              `yaml:"workers"`
	Seed        int64            `yaml:"seed"`
	RecordEvery int              `yaml:"record_every"`
	Particles   []ParticleConfig `yaml:"particles"`
	Forces      []ForceConfig    `yaml:"forces"`
}

// ParticleConfig describes one body. A zero Mass means unit mass; Immovable
// pins the body with infinite mass. A nil Damping keeps the default of 1.
type ParticleConfig struct {
	Name      string    `yaml:"name"`
	Mass      float64   `yaml:"mass,omitempty"`
	Immovable bool      `yaml:"immovable,omitempty"`
	Damping   *float64  `yaml:"damping,omitempty"`
	Position  []float64 `yaml:"position,omitempty"`
	Velocity  []float64 `yaml:"velocity,omitempty"`
	Accel     []float64 `yaml:"acceleration,omitempty"`
}

// ForceConfig describes one generator and the particles it acts on. An
// empty Targets list applies the generator to every particle.
type ForceConfig struct {
	Type    string   `yaml:"type"`
	Targets []string `yaml:"targets,omitempty"`

	// gravity
	Gravity []float64 `yaml:"gravity,omitempty"`

	// drag
	K1 float64 `yaml:"k1,omitempty"`
	K2 float64 `yaml:"k2,omitempty"`

	// spring, bungee, anchored_spring
	Other      string    `yaml:"other,omitempty"`
	Anchor     []float64 `yaml:"anchor,omitempty"`
	Stiffness  float64   `yaml:"stiffness,omitempty"`
	RestLength float64   `yaml:"rest_length,omitempty"`

	// buoyancy
	MaxDepth    float64 `yaml:"max_depth,omitempty"`
	Volume      float64 `yaml:"volume,omitempty"`
	WaterHeight float64 `yaml:"water_height,omitempty"`
	Density     float64 `yaml:"density,omitempty"`

	// wind, turbulence
	Seed      int64   `yaml:"seed,omitempty"`
	Strength  float64 `yaml:"strength,omitempty"`
	Scale     float64 `yaml:"scale,omitempty"`
	Speed     float64 `yaml:"speed,omitempty"`
	Frequency float64 `yaml:"frequency,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "projectile",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Tolerance:   DefaultTolerance,
		Workers:     DefaultWorkers,
		RecordEvery: DefaultRecordEvery,
		Particles: []ParticleConfig{
			{Name: "ball", Position: []float64{0, 0, 0}, Velocity: []float64{10, 10, 0}},
		},
		Forces: []ForceConfig{
			{Type: ForceGravity},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Particles = nil
	cfg.Forces = nil
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

// SimConfig converts the scenario timing fields into a run configuration.
func (c *Config) SimConfig() dynamo.Config {
	sc := dynamo.DefaultConfig()
	sc.Dt = c.Dt
	sc.Duration = c.Duration
	sc.Tolerance = dynamo.Tolerance(c.Tolerance)
	sc.Workers = c.Workers
	sc.RecordEvery = c.RecordEvery
	return sc
}

func (c *Config) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if len(c.Particles) == 0 {
		return fmt.Errorf("%w: scenario %q has no particles", dynamo.ErrInvalidArgument, c.Name)
	}

	seen := make(map[string]bool, len(c.Particles))
	for i, pc := range c.Particles {
		if pc.Name == "" {
			return fmt.Errorf("%w: particle %d has no name", dynamo.ErrInvalidArgument, i)
		}
		if seen[pc.Name] {
			return fmt.Errorf("%w: duplicate particle %q", dynamo.ErrInvalidArgument, pc.Name)
		}
		seen[pc.Name] = true
	}

	for i, fc := range c.Forces {
		for _, name := range fc.Targets {
			if !seen[name] {
				return fmt.Errorf("%w: force %d targets unknown particle %q", dynamo.ErrInvalidArgument, i, name)
			}
		}
		switch fc.Type {
		case ForceSpring, ForceBungee:
			if !seen[fc.Other] {
				return fmt.Errorf("%w: force %d references unknown particle %q", dynamo.ErrInvalidArgument, i, fc.Other)
			}
		case ForceGravity, ForceDrag, ForceAnchoredSpring, ForceBuoyancy, ForceWind, ForceTurbulence:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownForce, fc.Type)
		}
	}
	return nil
}

// Build validates the scenario and assembles a world with every particle
// and force registration it describes.
func (c *Config) Build() (*world.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	w := world.New()
	w.SetWorkers(c.Workers)

	for _, pc := range c.Particles {
		p, err := pc.build()
		if err != nil {
			return nil, fmt.Errorf("particle %q: %w", pc.Name, err)
		}
		w.AddParticle(pc.Name, p)
	}

	for i, fc := range c.Forces {
		g, err := c.generator(w, fc)
		if err != nil {
			return nil, fmt.Errorf("force %d (%s): %w", i, fc.Type, err)
		}

		targets := fc.Targets
		if len(targets) == 0 {
			targets = w.Names()
		}
		for _, name := range targets {
			h, _ := w.Lookup(name)
			if err := w.Connect(h, g); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}

func (pc ParticleConfig) build() (*particle.Particle, error) {
	p := particle.New()

	switch {
	case pc.Immovable:
		if err := p.SetInverseMass(0); err != nil {
			return nil, err
		}
	case pc.Mass != 0:
		if err := p.SetMass(pc.Mass); err != nil {
			return nil, err
		}
	}

	if pc.Damping != nil {
		if err := p.SetDamping(*pc.Damping); err != nil {
			return nil, err
		}
	}

	pos, err := vec3(pc.Position, linalg.Vec3{})
	if err != nil {
		return nil, err
	}
	vel, err := vec3(pc.Velocity, linalg.Vec3{})
	if err != nil {
		return nil, err
	}
	acc, err := vec3(pc.Accel, linalg.Vec3{})
	if err != nil {
		return nil, err
	}
	p.SetPosition(pos)
	p.SetVelocity(vel)
	p.SetAcceleration(acc)
	return p, nil
}

func (c *Config) generator(w *world.World, fc ForceConfig) (forces.Generator, error) {
	seed := fc.Seed
	if seed == 0 {
		seed = c.Seed
	}

	switch fc.Type {
	case ForceGravity:
		g, err := vec3(fc.Gravity, forces.StandardGravity)
		if err != nil {
			return nil, err
		}
		return forces.NewGravity(g), nil
	case ForceDrag:
		return forces.NewDrag(fc.K1, fc.K2), nil
	case ForceSpring, ForceBungee:
		h, _ := w.Lookup(fc.Other)
		other, err := w.Particle(h)
		if err != nil {
			return nil, err
		}
		if fc.Type == ForceBungee {
			return forces.NewBungee(other, fc.Stiffness, fc.RestLength)
		}
		return forces.NewSpring(other, fc.Stiffness, fc.RestLength)
	case ForceAnchoredSpring:
		anchor, err := vec3(fc.Anchor, linalg.Vec3{})
		if err != nil {
			return nil, err
		}
		return forces.NewAnchoredSpring(anchor, fc.Stiffness, fc.RestLength)
	case ForceBuoyancy:
		density := fc.Density
		if density == 0 {
			density = forces.DensityWater
		}
		return forces.NewBuoyancy(fc.MaxDepth, fc.Volume, fc.WaterHeight, density)
	case ForceWind:
		return forces.NewWind(seed, fc.Strength, fc.Scale, fc.Speed), nil
	case ForceTurbulence:
		return forces.NewTurbulence(seed, fc.Strength, fc.Frequency), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownForce, fc.Type)
}

func vec3(vals []float64, fallback linalg.Vec3) (linalg.Vec3, error) {
	if len(vals) == 0 {
		return fallback, nil
	}
	return linalg.NewVector[linalg.D3](vals...)
}

// ParticleNames lists the particle names in declaration order.
func (c *Config) ParticleNames() []string {
	names := make([]string, len(c.Particles))
	for i, pc := range c.Particles {
		names[i] = pc.Name
	}
	return names
}
