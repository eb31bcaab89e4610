package derivation

import (
	"errors"
	"fmt"
)

// Quota enforces a maximum step budget on one decision attempt.
//
// Each logged rewrite and each proof-search recursion counts as one
// step. The search space is finite, so for well-formed formulas the
// budget is never hit at its default; it exists to turn a defect that
// would otherwise loop or blow up into a clean error.
type Quota struct {
	maxSteps int
	current  int
}

// NewQuota creates a quota with the given limit.
func NewQuota(maxSteps int) *Quota {
	return &Quota{maxSteps: maxSteps}
}

// Check increments the step counter and validates against the limit.
// Returns StepsExceededError if the quota is exceeded.
func (q *Quota) Check() error {
	q.current++
	if q.current > q.maxSteps {
		return &StepsExceededError{
			Steps: q.current,
			Limit: q.maxSteps,
		}
	}
	return nil
}

// Current returns the current step count.
// Used for logging and diagnostics.
func (q *Quota) Current() int {
	return q.current
}

// StepsExceededError is returned when a decision attempt exceeds its
// step budget.
type StepsExceededError struct {
	Steps int // Number of steps taken
	Limit int // Maximum allowed steps
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("decision attempt exceeded step budget: %d steps > %d limit", e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
