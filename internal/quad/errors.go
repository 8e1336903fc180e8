package quad

import (
	"errors"
	"fmt"
)

// Domain errors for sampling and estimation.
var (
	// ErrNonPositiveStep indicates a zero or negative step size.
	ErrNonPositiveStep = errors.New("quad: step must be positive")

	// ErrStepVanished indicates a step too small to advance the grid
	// in float64 (start+step == start).
	ErrStepVanished = errors.New("quad: step below floating-point spacing")

	// ErrNoHalvings indicates a sweep configured with no trials.
	ErrNoHalvings = errors.New("quad: halvings must be at least 1")

	// ErrLengthMismatch indicates xs and ys of different lengths.
	ErrLengthMismatch = errors.New("quad: xs and ys length mismatch")
)

// TrialError wraps an error with the trial it occurred in.
type TrialError struct {
	Trial   int
	Step    float64
	Wrapped error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("trial %d (step=%g): %v", e.Trial, e.Step, e.Wrapped)
}

func (e *TrialError) Unwrap() error {
	return e.Wrapped
}
