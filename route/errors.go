package route

import "errors"

// Sentinel errors for router construction and mutation.
var (
	// ErrDuplicateKey is returned when a key or pattern is registered twice
	// in one router.
	ErrDuplicateKey = errors.New("route: duplicate key")

	// ErrEmptyKey is returned when an empty key or pattern is registered.
	ErrEmptyKey = errors.New("route: empty key")

	// ErrInvalidPattern is returned for malformed trie or path patterns,
	// such as a '#' wildcard before the final segment.
	ErrInvalidPattern = errors.New("route: invalid pattern")

	// ErrBuildFailed is returned when perfect-hash construction cannot
	// place the given key set.
	ErrBuildFailed = errors.New("route: perfect hash build failed")
)
