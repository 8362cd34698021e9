package arena

import "errors"

// Sentinel errors for arena allocation.
var (
	// ErrArenaFull is returned when an allocation does not fit in the
	// arena's remaining capacity.
	ErrArenaFull = errors.New("arena: capacity exhausted")

	// ErrInvalidSize is returned when an allocation size is negative.
	ErrInvalidSize = errors.New("arena: invalid allocation size")
)
