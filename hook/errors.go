package hook

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for hook execution.
var (
	// ErrTimeout matches any TimeoutError via errors.Is.
	ErrTimeout = errors.New("hook: deadline exceeded")

	// ErrPanic matches any PanicError via errors.Is.
	ErrPanic = errors.New("hook: panic recovered")

	// ErrNilHook is returned when a nil hook is supplied where one is
	// required.
	ErrNilHook = errors.New("hook: nil hook")

	// ErrInvalidIndex is returned for out-of-range chain positions.
	ErrInvalidIndex = errors.New("hook: index out of range")
)

// TimeoutError reports that a wrapped hook exceeded its deadline. The inner
// hook's eventual result, if any, was discarded.
type TimeoutError struct {
	// Limit is the configured deadline.
	Limit time.Duration

	// Elapsed is how long the hook had been running when it was abandoned.
	Elapsed time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("hook: timed out after %s (limit %s)", e.Elapsed.Round(time.Millisecond), e.Limit)
}

// Is allows errors.Is to match TimeoutError with ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// PanicError reports that a wrapped hook terminated abnormally and the fault
// was isolated instead of unwinding past the wrapper.
type PanicError struct {
	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace captured at recovery.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("hook: panic recovered: %v", e.Value)
}

// Is allows errors.Is to match PanicError with ErrPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}
