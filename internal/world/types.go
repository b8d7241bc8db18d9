package world

import (
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

// Handle identifies a particle owned by a World.
type Handle int

type Metric interface {
	Name() string
	Observe(ps []*particle.Particle, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(ps []*particle.Particle, t float64)
}

// Frame is a snapshot of every particle at time T.
type Frame struct {
	T          float64
	Positions  []linalg.Vec3
	Velocities []linalg.Vec3
}

// Result holds the recorded frames and final metric values of a run. Metric
// values whose magnitude is below the run tolerance are reported as zero.
// SettledAt is the first time every particle moved slower than the
// tolerance, or -1 when the run never came to rest.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	SettledAt  float64
}

// Settled reports whether every particle came to rest during the run.
func (r *Result) Settled() bool { return r.SettledAt >= 0 }

// Series extracts one component of one particle's position over all frames.
func (r *Result) Series(h Handle, axis int) ([]float64, error) {
	out := make([]float64, 0, len(r.Frames))
	for _, f := range r.Frames {
		if int(h) < 0 || int(h) >= len(f.Positions) {
			return nil, errHandle(h, len(f.Positions))
		}
		x, err := f.Positions[h].At(axis)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// Times returns the timestamp of every frame.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.T
	}
	return out
}
