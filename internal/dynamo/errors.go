package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for algebra and simulation operations.
var (
	// ErrDomain indicates an argument outside the mathematical domain of an
	// operation, such as a zero mass or parallel basis vectors.
	ErrDomain = errors.New("dynamo: value outside operation domain")

	// ErrIndex indicates a component, row or column index out of range.
	ErrIndex = errors.New("dynamo: index out of range")

	// ErrInvalidArgument indicates a rejected argument, such as a non-positive time step.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrDimensionMismatch indicates operands or constructor arguments of incompatible size.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")

	// ErrInvalidState indicates a particle state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step     int
	Time     float64
	Particle int
	Wrapped  error
}

func (e *SimulationError) Error() string {
	if e.Particle >= 0 {
		return fmt.Sprintf("step %d (t=%.4f) particle %d: %v", e.Step, e.Time, e.Particle, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
