package dynamo

import (
	"fmt"
	"math"
)

// Tolerance is an absolute threshold for treating two floats as equal.
// It does not scale with magnitude, so comparisons of very large values
// degrade to exact equality.
type Tolerance float64

// DefaultTolerance matches the fixed epsilon used for vector and matrix equality.
const DefaultTolerance Tolerance = 1e-7

// Equal reports whether |a-b| is strictly below t.
func (t Tolerance) Equal(a, b float64) bool {
	return math.Abs(a-b) < float64(t)
}

// Config controls a simulation run.
type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     Tolerance
	Workers       int
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     DefaultTolerance,
		Workers:       1,
		RecordEvery:   1,
		ValidateState: true,
	}
}

// Steps is the number of whole steps of Dt that fit in Duration.
func (c Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(math.Floor(c.Duration/c.Dt + 1e-9))
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 1) {
		return fmt.Errorf("%w: dt must be positive and finite, got %g", ErrInvalidArgument, c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 1) {
		return fmt.Errorf("%w: duration must be positive and finite, got %g", ErrInvalidArgument, c.Duration)
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidArgument, float64(c.Tolerance))
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidArgument, c.Workers)
	}
	if c.RecordEvery < 0 {
		return fmt.Errorf("%w: record interval must not be negative, got %d", ErrInvalidArgument, c.RecordEvery)
	}
	return nil
}
