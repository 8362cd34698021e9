package ingest

import "errors"

// Sentinel errors for the ingestion scope.
var (
	// ErrMalformed is returned at the first typed-field access over backing
	// bytes that are not valid JSON.
	ErrMalformed = errors.New("ingest: malformed payload")

	// ErrMissingField is returned when an accessed field is absent from the
	// payload.
	ErrMissingField = errors.New("ingest: missing field")

	// ErrScopeEnded is returned when a view is used after its scope ended.
	ErrScopeEnded = errors.New("ingest: scope ended")
)
