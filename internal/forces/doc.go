// Package forces provides force generators and the registry that applies
// them once per tick.
//
// A [Generator] adds a force into a particle's accumulator; it never
// integrates. The [Registry] holds (particle, generator) pairs without owning
// either side and invokes every pair in insertion order:
//
//	reg := forces.NewRegistry()
//	_ = reg.Add(ball, forces.NewGravity(linalg.V3(0, -9.81, 0)))
//	_ = reg.Add(ball, forces.NewDrag(0.1, 0.01))
//	reg.UpdateForces(dt)
//	_ = ball.Integrate(dt)
//
// # Identity
//
// Registrations are matched by particle pointer and generator equality, so
// generators must be comparable. All generators in this package are pointers.
//
// # Thread Safety
//
// Registry methods are safe for concurrent use; Add, Remove and Clear never
// run while UpdateForces is iterating. [Registry.UpdateForcesParallel] shards
// work by particle so no two workers write the same accumulator. Generators
// shared between particles must tolerate concurrent UpdateForce calls.
package forces
