package workout

import (
	"errors"
	"fmt"
)

// ErrInvalidPlan is matched by every *InvalidPlanError.
var ErrInvalidPlan = errors.New("invalid workout plan")

// InvalidPlanError rejects a session start before any run state exists.
type InvalidPlanError struct {
	Reason string
}

func (e *InvalidPlanError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPlan, e.Reason)
}

func (e *InvalidPlanError) Is(target error) bool {
	return target == ErrInvalidPlan
}

// InvalidDurationError describes a negative or out-of-range duration. The
// engine never returns it to callers: it clamps the value to zero and logs.
type InvalidDurationError struct {
	Field string
	Value float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid duration for %s: %v seconds", e.Field, e.Value)
}
