// Package particle implements a point mass advanced by semi-implicit Euler integration.
package particle

import (
	"fmt"
	"math"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/linalg"
)

const DefaultDamping = 1.0

// Particle is a point mass. Forces added between two calls to Integrate are
// summed in an accumulator that Integrate consumes and clears.
type Particle struct {
	position     linalg.Vec3
	velocity     linalg.Vec3
	acceleration linalg.Vec3 // constant bias, e.g. gravity set by the owner
	damping      float64
	inverseMass  float64
	forceAccum   linalg.Vec3
}

// New returns a unit-mass particle at rest at the origin with no damping.
func New() *Particle {
	return &Particle{
		damping:     DefaultDamping,
		inverseMass: 1,
	}
}

// Integrate advances the particle by dt seconds:
//
//	p += v*dt
//	v += (a + F*im)*dt
//	v *= damping^dt
//
// and clears the force accumulator. Particles with infinite mass are left
// untouched, including their accumulator.
func (p *Particle) Integrate(dt float64) error {
	if p.inverseMass <= 0 {
		return nil
	}
	if !(dt > 0) || math.IsInf(dt, 1) {
		return fmt.Errorf("%w: integration step must be positive and finite, got %g", dynamo.ErrInvalidArgument, dt)
	}

	p.position.AddScaled(p.velocity, dt)

	acc := p.acceleration
	acc.AddScaled(p.forceAccum, p.inverseMass)

	p.velocity.AddScaled(acc, dt)
	p.velocity.ScaleInPlace(math.Pow(p.damping, dt))

	p.ClearAccumulator()
	return nil
}

// SetMass sets the mass. A negative mass marks the particle as immovable.
func (p *Particle) SetMass(mass float64) error {
	switch {
	case mass == 0:
		return fmt.Errorf("%w: mass cannot be zero", dynamo.ErrDomain)
	case math.IsNaN(mass):
		return fmt.Errorf("%w: mass is NaN", dynamo.ErrDomain)
	case mass < 0:
		p.inverseMass = 0
	default:
		p.inverseMass = 1 / mass
	}
	return nil
}

// Mass returns +Inf for immovable particles.
func (p *Particle) Mass() float64 {
	if p.inverseMass <= 0 {
		return math.Inf(1)
	}
	return 1 / p.inverseMass
}

func (p *Particle) SetInverseMass(im float64) error {
	if im < 0 || math.IsNaN(im) {
		return fmt.Errorf("%w: inverse mass must be >= 0, got %g", dynamo.ErrDomain, im)
	}
	p.inverseMass = im
	return nil
}

func (p *Particle) InverseMass() float64 { return p.inverseMass }

func (p *Particle) HasFiniteMass() bool { return p.inverseMass > 0 }

func (p *Particle) SetDamping(d float64) error {
	if d < 0 || d > 1 || math.IsNaN(d) {
		return fmt.Errorf("%w: damping must be in [0,1], got %g", dynamo.ErrDomain, d)
	}
	p.damping = d
	return nil
}

func (p *Particle) Damping() float64 { return p.damping }

func (p *Particle) SetPosition(v linalg.Vec3)     { p.position = v }
func (p *Particle) SetVelocity(v linalg.Vec3)     { p.velocity = v }
func (p *Particle) SetAcceleration(v linalg.Vec3) { p.acceleration = v }

func (p *Particle) Position() linalg.Vec3     { return p.position }
func (p *Particle) Velocity() linalg.Vec3     { return p.velocity }
func (p *Particle) Acceleration() linalg.Vec3 { return p.acceleration }

// AddForce adds f to the accumulator for the current tick.
func (p *Particle) AddForce(f linalg.Vec3) {
	p.forceAccum.AddInPlace(f)
}

func (p *Particle) Accumulator() linalg.Vec3 { return p.forceAccum }

func (p *Particle) ClearAccumulator() {
	p.forceAccum = linalg.Vec3{}
}

// KineticEnergy is ½·m·|v|², zero for immovable particles.
func (p *Particle) KineticEnergy() float64 {
	if p.inverseMass <= 0 {
		return 0
	}
	return 0.5 * p.velocity.SquareMagnitude() / p.inverseMass
}

// Momentum is m·v, zero for immovable particles.
func (p *Particle) Momentum() linalg.Vec3 {
	if p.inverseMass <= 0 {
		return linalg.Vec3{}
	}
	return p.velocity.Scale(1 / p.inverseMass)
}

// IsValid reports whether position and velocity are finite.
func (p *Particle) IsValid() bool {
	return p.position.IsFinite() && p.velocity.IsFinite()
}
