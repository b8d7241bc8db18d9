package metrics

import (
	"math"

	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
	"github.com/san-kum/fizx/internal/world"
)

// KineticEnergy reports the mean total kinetic energy over all observed steps.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(ps []*particle.Particle, t float64) {
	e.totalEnergy += Total(ps)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// Total sums the kinetic energy of ps.
func Total(ps []*particle.Particle) float64 {
	sum := 0.0
	for _, p := range ps {
		sum += p.KineticEnergy()
	}
	return sum
}

// EnergyDrift tracks the largest relative change of total kinetic energy
// from the first observation. Useful for closed systems without external forces.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(ps []*particle.Particle, t float64) {
	energy := Total(ps)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MaxSpeed is the highest particle speed seen.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(ps []*particle.Particle, t float64) {
	for _, p := range ps {
		m.max = math.Max(m.max, p.Velocity().Magnitude())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Momentum is the magnitude of the total momentum at the last observation.
type Momentum struct {
	last linalg.Vec3
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(ps []*particle.Particle, t float64) {
	var sum linalg.Vec3
	for _, p := range ps {
		sum.AddInPlace(p.Momentum())
	}
	m.last = sum
}

func (m *Momentum) Value() float64 { return m.last.Magnitude() }
func (m *Momentum) Reset()         { m.last = linalg.Vec3{} }

// Defaults returns the metrics recorded by every CLI run.
func Defaults() []world.Metric {
	return []world.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMaxSpeed(),
		NewMomentum(),
	}
}
