package forces

import (
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

// StandardGravity is Earth surface gravity along -Y.
var StandardGravity = linalg.V3(0, -9.81, 0)

// Gravity applies a mass-scaled gravitational force.
type Gravity struct {
	gravity linalg.Vec3
}

func NewGravity(g linalg.Vec3) *Gravity {
	return &Gravity{gravity: g}
}

func (g *Gravity) Acceleration() linalg.Vec3 { return g.gravity }

func (g *Gravity) UpdateForce(p *particle.Particle, dt float64) {
	if !p.HasFiniteMass() {
		return
	}
	p.AddForce(g.gravity.Scale(p.Mass()))
}
