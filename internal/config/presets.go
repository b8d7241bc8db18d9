package config

import (
	"fmt"
	"sort"
)

func ptr(f float64) *float64 { return &f }

var Presets = map[string]*Config{
	"projectile": {
		Name: "projectile", Dt: 0.01, Duration: 2.0, Tolerance: DefaultTolerance, RecordEvery: 1,
		Particles: []ParticleConfig{
			{Name: "shell", Mass: 2, Velocity: []float64{0, 30, 10}, Damping: ptr(0.99)},
		},
		Forces: []ForceConfig{
			{Type: ForceGravity},
		},
	},
	"drag": {
		Name: "drag", Dt: 0.01, Duration: 5.0, Tolerance: DefaultTolerance, RecordEvery: 1,
		Particles: []ParticleConfig{
			{Name: "ball", Mass: 1, Position: []float64{0, 100, 0}, Velocity: []float64{20, 0, 0}},
		},
		Forces: []ForceConfig{
			{Type: ForceGravity},
			{Type: ForceDrag, K1: 0.1, K2: 0.05},
		},
	},
	"spring": {
		Name: "spring", Dt: 0.005, Duration: 10.0, Tolerance: DefaultTolerance, RecordEvery: 2,
		Particles: []ParticleConfig{
			{Name: "left", Mass: 1, Position: []float64{-2, 0, 0}},
			{Name: "right", Mass: 1, Position: []float64{2, 0, 0}},
		},
		Forces: []ForceConfig{
			{Type: ForceSpring, Targets: []string{"left"}, Other: "right", Stiffness: 4, RestLength: 2},
			{Type: ForceSpring, Targets: []string{"right"}, Other: "left", Stiffness: 4, RestLength: 2},
		},
	},
	"bungee": {
		Name: "bungee", Dt: 0.01, Duration: 10.0, Tolerance: DefaultTolerance, RecordEvery: 1,
		Particles: []ParticleConfig{
			{Name: "bridge", Immovable: true, Position: []float64{0, 50, 0}},
			{Name: "jumper", Mass: 80, Position: []float64{0, 50, 0}, Damping: ptr(0.95)},
		},
		Forces: []ForceConfig{
			{Type: ForceGravity, Targets: []string{"jumper"}},
			{Type: ForceBungee, Targets: []string{"jumper"}, Other: "bridge", Stiffness: 150, RestLength: 20},
		},
	},
	"buoyancy": {
		Name: "buoyancy", Dt: 0.01, Duration: 10.0, Tolerance: DefaultTolerance, RecordEvery: 1,
		Particles: []ParticleConfig{
			{Name: "crate", Mass: 500, Position: []float64{0, 5, 0}, Damping: ptr(0.8)},
		},
		Forces: []ForceConfig{
			{Type: ForceGravity},
			{Type: ForceBuoyancy, MaxDepth: 0.5, Volume: 1, WaterHeight: 0},
		},
	},
	"breeze": {
		Name: "breeze", Dt: 0.01, Duration: 10.0, Tolerance: DefaultTolerance, Workers: 4, Seed: 42, RecordEvery: 5,
		Particles: []ParticleConfig{
			{Name: "leaf1", Mass: 0.01, Position: []float64{0, 10, 0}},
			{Name: "leaf2", Mass: 0.01, Position: []float64{1, 10, 0}},
			{Name: "leaf3", Mass: 0.01, Position: []float64{2, 10, 0}},
			{Name: "leaf4", Mass: 0.01, Position: []float64{3, 10, 0}},
		},
		Forces: []ForceConfig{
			{Type: ForceGravity, Gravity: []float64{0, -1, 0}},
			{Type: ForceDrag, K1: 0.02, K2: 0.01},
			{Type: ForceWind, Strength: 0.02, Scale: 0.3, Speed: 0.5},
			{Type: ForceTurbulence, Strength: 0.005, Frequency: 2},
		},
	},
}

// GetPreset returns a copy of the named scenario, or nil when it does not exist.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone deep-copies the scenario so flag overrides never touch a preset.
func (c *Config) Clone() *Config {
	out := *c
	out.Particles = make([]ParticleConfig, len(c.Particles))
	for i, pc := range c.Particles {
		pc.Position = append([]float64(nil), pc.Position...)
		pc.Velocity = append([]float64(nil), pc.Velocity...)
		pc.Accel = append([]float64(nil), pc.Accel...)
		if pc.Damping != nil {
			pc.Damping = ptr(*pc.Damping)
		}
		out.Particles[i] = pc
	}
	out.Forces = make([]ForceConfig, len(c.Forces))
	for i, fc := range c.Forces {
		fc.Targets = append([]string(nil), fc.Targets...)
		fc.Gravity = append([]float64(nil), fc.Gravity...)
		fc.Anchor = append([]float64(nil), fc.Anchor...)
		out.Forces[i] = fc
	}
	return &out
}

// Replicate returns a scenario holding n copies of c's particles, each copy
// offset by spacing along +Z. Names get a "#k" suffix for k > 0 and every
// force is rewired to its own copy.
func (c *Config) Replicate(n int, spacing float64) *Config {
	if n <= 1 {
		return c.Clone()
	}
	out := c.Clone()
	out.Particles = make([]ParticleConfig, 0, len(c.Particles)*n)
	out.Forces = make([]ForceConfig, 0, len(c.Forces)*n)

	rename := func(name string, k int) string {
		if k == 0 || name == "" {
			return name
		}
		return fmt.Sprintf("%s#%d", name, k)
	}

	for k := 0; k < n; k++ {
		for _, pc := range c.Clone().Particles {
			pc.Name = rename(pc.Name, k)
			switch len(pc.Position) {
			case 0:
				pc.Position = []float64{0, 0, float64(k) * spacing}
			case 3:
				pc.Position[2] += float64(k) * spacing
			}
			out.Particles = append(out.Particles, pc)
		}
		for _, fc := range c.Clone().Forces {
			if len(fc.Targets) == 0 {
				fc.Targets = c.ParticleNames()
			}
			for i, t := range fc.Targets {
				fc.Targets[i] = rename(t, k)
			}
			fc.Other = rename(fc.Other, k)
			out.Forces = append(out.Forces, fc)
		}
	}
	return out
}
