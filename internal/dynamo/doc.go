// Package dynamo provides the shared primitives of the fizx engine.
//
// It holds the pieces every other package agrees on:
//
//   - the error taxonomy ([ErrDomain], [ErrIndex], [ErrInvalidArgument],
//     [ErrDimensionMismatch]) and [SimulationError] for step context
//   - [Tolerance], the explicit absolute epsilon used by equality checks
//   - [Config], the run settings validated before a simulation starts
//   - [ParallelFor], the chunked worker helper used for sharded updates
//
// Errors are sentinel values; callers test them with errors.Is:
//
//	if err := p.SetMass(0); errors.Is(err, dynamo.ErrDomain) {
//	    // zero mass rejected
//	}
package dynamo
