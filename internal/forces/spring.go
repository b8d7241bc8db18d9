package forces

import (
	"fmt"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

func validateSpring(stiffness, restLength float64) error {
	if stiffness < 0 {
		return fmt.Errorf("%w: spring stiffness must be >= 0, got %g", dynamo.ErrInvalidArgument, stiffness)
	}
	if restLength < 0 {
		return fmt.Errorf("%w: rest length must be >= 0, got %g", dynamo.ErrInvalidArgument, restLength)
	}
	return nil
}

// hooke returns the force on a point at offset d from its attachment.
func hooke(d linalg.Vec3, stiffness, restLength float64, slackOnly bool) linalg.Vec3 {
	length := d.Magnitude()
	if length == 0 {
		return linalg.Vec3{}
	}
	stretch := length - restLength
	if slackOnly && stretch <= 0 {
		return linalg.Vec3{}
	}
	return d.Scale(-stiffness * stretch / length)
}

// Spring pulls a particle towards, or pushes it away from, another particle.
// It acts only on the particle it is registered for; register a second
// Spring on the other end for a symmetric pair.
type Spring struct {
	other      *particle.Particle
	stiffness  float64
	restLength float64
}

func NewSpring(other *particle.Particle, stiffness, restLength float64) (*Spring, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: spring needs another particle", dynamo.ErrInvalidArgument)
	}
	if err := validateSpring(stiffness, restLength); err != nil {
		return nil, err
	}
	return &Spring{other: other, stiffness: stiffness, restLength: restLength}, nil
}

func (s *Spring) UpdateForce(p *particle.Particle, dt float64) {
	d := p.Position().Sub(s.other.Position())
	p.AddForce(hooke(d, s.stiffness, s.restLength, false))
}

// AnchoredSpring connects a particle to a fixed point.
type AnchoredSpring struct {
	anchor     linalg.Vec3
	stiffness  float64
	restLength float64
}

func NewAnchoredSpring(anchor linalg.Vec3, stiffness, restLength float64) (*AnchoredSpring, error) {
	if err := validateSpring(stiffness, restLength); err != nil {
		return nil, err
	}
	return &AnchoredSpring{anchor: anchor, stiffness: stiffness, restLength: restLength}, nil
}

func (s *AnchoredSpring) Anchor() linalg.Vec3 { return s.anchor }

func (s *AnchoredSpring) SetAnchor(a linalg.Vec3) { s.anchor = a }

func (s *AnchoredSpring) UpdateForce(p *particle.Particle, dt float64) {
	d := p.Position().Sub(s.anchor)
	p.AddForce(hooke(d, s.stiffness, s.restLength, false))
}

// Bungee is a spring that only pulls, and only once stretched past its rest length.
type Bungee struct {
	other      *particle.Particle
	stiffness  float64
	restLength float64
}

func NewBungee(other *particle.Particle, stiffness, restLength float64) (*Bungee, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: bungee needs another particle", dynamo.ErrInvalidArgument)
	}
	if err := validateSpring(stiffness, restLength); err != nil {
		return nil, err
	}
	return &Bungee{other: other, stiffness: stiffness, restLength: restLength}, nil
}

func (b *Bungee) UpdateForce(p *particle.Particle, dt float64) {
	d := p.Position().Sub(b.other.Position())
	p.AddForce(hooke(d, b.stiffness, b.restLength, true))
}
