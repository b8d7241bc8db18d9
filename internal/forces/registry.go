package forces

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/particle"
)

type registration struct {
	particle  *particle.Particle
	generator Generator
}

// Registry is a many-to-many table of (particle, generator) pairs. It holds
// references only; particles and generators outlive their registrations for
// as long as the caller keeps them.
type Registry struct {
	mu            sync.RWMutex
	registrations []registration
}

func NewRegistry() *Registry {
	return &Registry{registrations: make([]registration, 0)}
}

// matchable reports whether g can be compared with ==. A comparable type
// can still hold an uncomparable dynamic value, so the check is on the value.
func matchable(g Generator) bool {
	return g != nil && reflect.ValueOf(g).Comparable()
}

// Add appends a registration. Adding the same pair twice applies the
// generator twice per tick.
func (r *Registry) Add(p *particle.Particle, g Generator) error {
	if p == nil {
		return fmt.Errorf("%w: nil particle", dynamo.ErrInvalidArgument)
	}
	if g == nil {
		return fmt.Errorf("%w: nil generator", dynamo.ErrInvalidArgument)
	}
	if !matchable(g) {
		return fmt.Errorf("%w: generator %T is not comparable", dynamo.ErrInvalidArgument, g)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations = append(r.registrations, registration{particle: p, generator: g})
	return nil
}

// Remove drops every registration of the pair and returns how many were
// removed. The relative order of the remaining registrations is preserved.
func (r *Registry) Remove(p *particle.Particle, g Generator) int {
	if !matchable(g) {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.registrations[:0]
	removed := 0
	for _, reg := range r.registrations {
		if reg.particle == p && reg.generator == g {
			removed++
			continue
		}
		kept = append(kept, reg)
	}
	for i := len(kept); i < len(r.registrations); i++ {
		r.registrations[i] = registration{}
	}
	r.registrations = kept
	return removed
}

// Clear drops all registrations.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations = make([]registration, 0)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.registrations)
}

// Count returns how many times the pair is registered.
func (r *Registry) Count(p *particle.Particle, g Generator) int {
	if !matchable(g) {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, reg := range r.registrations {
		if reg.particle == p && reg.generator == g {
			n++
		}
	}
	return n
}

// UpdateForces invokes every registration once, in insertion order.
func (r *Registry) UpdateForces(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.registrations {
		reg.generator.UpdateForce(reg.particle, dt)
	}
	r.advanceClocks(dt)
}

type shard struct {
	particle   *particle.Particle
	generators []Generator
}

// UpdateForcesParallel applies the same contributions as UpdateForces using
// up to workers goroutines. Registrations are grouped by particle so each
// accumulator is written by exactly one worker; within a particle the
// insertion order is kept.
func (r *Registry) UpdateForcesParallel(dt float64, workers int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shards := r.shardByParticle()
	dynamo.ParallelFor(len(shards), workers, 1, func(start, end int) {
		for _, s := range shards[start:end] {
			for _, g := range s.generators {
				g.UpdateForce(s.particle, dt)
			}
		}
	})
	r.advanceClocks(dt)
}

func (r *Registry) shardByParticle() []shard {
	index := make(map[*particle.Particle]int)
	shards := make([]shard, 0)
	for _, reg := range r.registrations {
		i, ok := index[reg.particle]
		if !ok {
			i = len(shards)
			index[reg.particle] = i
			shards = append(shards, shard{particle: reg.particle})
		}
		shards[i].generators = append(shards[i].generators, reg.generator)
	}
	return shards
}

func (r *Registry) advanceClocks(dt float64) {
	var seen map[Generator]struct{}
	for _, reg := range r.registrations {
		c, ok := reg.generator.(Clocked)
		if !ok {
			continue
		}
		if seen == nil {
			seen = make(map[Generator]struct{})
		}
		if _, dup := seen[reg.generator]; dup {
			continue
		}
		seen[reg.generator] = struct{}{}
		c.Advance(dt)
	}
}
