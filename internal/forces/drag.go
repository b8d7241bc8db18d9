package forces

import "github.com/san-kum/fizx/internal/particle"

// Drag opposes velocity with magnitude k1·|v| + k2·|v|².
type Drag struct {
	k1 float64
	k2 float64
}

func NewDrag(k1, k2 float64) *Drag {
	return &Drag{k1: k1, k2: k2}
}

func (d *Drag) Coefficients() (k1, k2 float64) { return d.k1, d.k2 }

func (d *Drag) UpdateForce(p *particle.Particle, dt float64) {
	v := p.Velocity()
	speed := v.Magnitude()
	if speed == 0 {
		return
	}

	coeff := d.k1*speed + d.k2*speed*speed
	force := v.Scale(-coeff / speed)
	p.AddForce(force)
}
