// Package world owns a set of particles and the registry that drives them,
// and runs the per-tick force and integration passes.
package world

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/forces"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

type World struct {
	particles []*particle.Particle
	names     []string
	registry  *forces.Registry
	metrics   []Metric
	observers []Observer
	workers   int
	time      float64
}

func New() *World {
	return &World{
		particles: make([]*particle.Particle, 0),
		names:     make([]string, 0),
		registry:  forces.NewRegistry(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		workers:   1,
	}
}

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// SetWorkers selects the number of goroutines used by Step. Values below 2
// keep the serial path.
func (w *World) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	w.workers = n
}

func (w *World) Workers() int { return w.workers }

// AddParticle takes ownership of p and returns its handle.
func (w *World) AddParticle(name string, p *particle.Particle) Handle {
	w.particles = append(w.particles, p)
	w.names = append(w.names, name)
	return Handle(len(w.particles) - 1)
}

func errHandle(h Handle, n int) error {
	return fmt.Errorf("%w: particle handle %d outside [0,%d)", dynamo.ErrIndex, h, n)
}

func (w *World) Particle(h Handle) (*particle.Particle, error) {
	if int(h) < 0 || int(h) >= len(w.particles) {
		return nil, errHandle(h, len(w.particles))
	}
	return w.particles[h], nil
}

// Lookup finds a particle handle by name.
func (w *World) Lookup(name string) (Handle, bool) {
	for i, n := range w.names {
		if n == name {
			return Handle(i), true
		}
	}
	return -1, false
}

func (w *World) Particles() []*particle.Particle { return w.particles }
func (w *World) Names() []string                 { return w.names }
func (w *World) Len() int                        { return len(w.particles) }
func (w *World) Registry() *forces.Registry      { return w.registry }
func (w *World) Time() float64                   { return w.time }

// Connect registers g for the particle behind h.
func (w *World) Connect(h Handle, g forces.Generator) error {
	p, err := w.Particle(h)
	if err != nil {
		return err
	}
	return w.registry.Add(p, g)
}

// Step runs one tick: every registration adds its force, then every particle
// integrates and clears its accumulator.
func (w *World) Step(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return fmt.Errorf("%w: step must be positive and finite, got %g", dynamo.ErrInvalidArgument, dt)
	}

	if w.workers > 1 {
		w.registry.UpdateForcesParallel(dt, w.workers)
	} else {
		w.registry.UpdateForces(dt)
	}

	if err := w.integrate(dt); err != nil {
		return err
	}
	w.time += dt
	return nil
}

func (w *World) integrate(dt float64) error {
	n := len(w.particles)
	if w.workers <= 1 {
		for i, p := range w.particles {
			if err := p.Integrate(dt); err != nil {
				return w.stepError(i, err)
			}
		}
		return nil
	}

	errs := make([]error, n)
	dynamo.ParallelFor(n, w.workers, 16, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = w.particles[i].Integrate(dt)
		}
	})
	for i, err := range errs {
		if err != nil {
			return w.stepError(i, err)
		}
	}
	return nil
}

func (w *World) stepError(i int, err error) error {
	return &dynamo.SimulationError{Time: w.time, Particle: i, Wrapped: err}
}

func (w *World) snapshot() Frame {
	f := Frame{
		T:          w.time,
		Positions:  make([]linalg.Vec3, len(w.particles)),
		Velocities: make([]linalg.Vec3, len(w.particles)),
	}
	for i, p := range w.particles {
		f.Positions[i] = p.Position()
		f.Velocities[i] = p.Velocity()
	}
	return f
}

// Run steps the world for cfg.Duration, recording a frame every
// cfg.RecordEvery steps plus the initial and final states.
func (w *World) Run(ctx context.Context, cfg dynamo.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers > 0 {
		w.SetWorkers(cfg.Workers)
	}
	every := cfg.RecordEvery
	if every < 1 {
		every = 1
	}

	steps := cfg.Steps()
	result := &Result{
		Frames:    make([]Frame, 0, steps/every+2),
		Metrics:   make(map[string]float64),
		SettledAt: -1,
	}
	tol := cfg.Tolerance

	for _, m := range w.metrics {
		m.Reset()
	}

	result.Frames = append(result.Frames, w.snapshot())
	w.checkRest(result, tol)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			w.collect(result, tol)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		for _, m := range w.metrics {
			m.Observe(w.particles, w.time)
		}
		for _, obs := range w.observers {
			obs.OnStep(w.particles, w.time)
		}

		if err := w.Step(cfg.Dt); err != nil {
			var simErr *dynamo.SimulationError
			if errors.As(err, &simErr) {
				simErr.Step = i
			}
			w.collect(result, tol)
			return result, err
		}
		result.StepsTaken++

		if cfg.ValidateState {
			for j, p := range w.particles {
				if !p.IsValid() {
					w.collect(result, tol)
					return result, &dynamo.SimulationError{Step: i, Time: w.time, Particle: j, Wrapped: dynamo.ErrInvalidState}
				}
			}
		}

		w.checkRest(result, tol)

		if (i+1)%every == 0 || i == steps-1 {
			result.Frames = append(result.Frames, w.snapshot())
		}
	}

	w.collect(result, tol)
	return result, nil
}

func (w *World) collect(result *Result, tol dynamo.Tolerance) {
	for _, m := range w.metrics {
		v := m.Value()
		if math.Abs(v) < float64(tol) {
			v = 0
		}
		result.Metrics[m.Name()] = v
	}
}

// checkRest records the first time every particle is slower than tol.
func (w *World) checkRest(result *Result, tol dynamo.Tolerance) {
	if result.SettledAt >= 0 || len(w.particles) == 0 {
		return
	}
	limit := float64(tol) * float64(tol)
	for _, p := range w.particles {
		if !(p.Velocity().SquareMagnitude() < limit) {
			return
		}
	}
	result.SettledAt = w.time
}
