package forces

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

// axisOffset decorrelates the noise samples used for each force axis.
const axisOffset = 97.31

// Wind samples a smooth opensimplex field at the particle's position and the
// wind's own clock. Nearby particles feel similar forces.
type Wind struct {
	noise    opensimplex.Noise
	strength float64
	scale    float64
	speed    float64
	elapsed  float64
}

// NewWind builds a wind field. strength is the peak force per axis, scale the
// spatial frequency and speed the temporal frequency.
func NewWind(seed int64, strength, scale, speed float64) *Wind {
	return &Wind{
		noise:    opensimplex.New(seed),
		strength: strength,
		scale:    scale,
		speed:    speed,
	}
}

func (w *Wind) UpdateForce(p *particle.Particle, dt float64) {
	x, y, z := linalg.XYZ(p.Position())
	x, y, z = x*w.scale, y*w.scale, z*w.scale
	t := w.elapsed * w.speed

	f := linalg.V3(
		w.noise.Eval4(x, y, z, t),
		w.noise.Eval4(x+axisOffset, y, z, t),
		w.noise.Eval4(x, y+axisOffset, z, t),
	)
	p.AddForce(f.Scale(w.strength))
}

func (w *Wind) Advance(dt float64) { w.elapsed += dt }

func (w *Wind) Elapsed() float64 { return w.elapsed }

// Turbulence applies a spatially uniform gust that varies over time,
// sampled from 1-D Perlin noise per axis.
type Turbulence struct {
	noise     *perlin.Perlin
	strength  float64
	frequency float64
	elapsed   float64
}

func NewTurbulence(seed int64, strength, frequency float64) *Turbulence {
	return &Turbulence{
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		strength:  strength,
		frequency: frequency,
	}
}

// Gust returns the force applied at the turbulence's current time.
func (t *Turbulence) Gust() linalg.Vec3 {
	s := t.elapsed * t.frequency
	return linalg.V3(
		t.noise.Noise1D(s),
		t.noise.Noise1D(s+axisOffset),
		t.noise.Noise1D(s+2*axisOffset),
	).Scale(t.strength)
}

func (t *Turbulence) UpdateForce(p *particle.Particle, dt float64) {
	p.AddForce(t.Gust())
}

func (t *Turbulence) Advance(dt float64) { t.elapsed += dt }

func (t *Turbulence) Elapsed() float64 { return t.elapsed }
