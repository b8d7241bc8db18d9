package forces

import "github.com/san-kum/fizx/internal/particle"

// Generator computes a force for a particle and adds it to the particle's
// accumulator. Each call is one additive contribution.
type Generator interface {
	UpdateForce(p *particle.Particle, dt float64)
}

// Clocked generators vary with time. The registry advances each distinct
// clocked generator once per UpdateForces pass, after all forces are applied.
type Clocked interface {
	Advance(dt float64)
}
