package simulation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMass indicates a particle with zero or negative mass.
	ErrInvalidMass = errors.New("simulation: particle mass must be positive")

	// ErrInvalidState indicates a position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("simulation: invalid state (NaN or Inf detected)")
)

// SimulationError wraps an error with the step it aborted.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
