// Package core holds error kinds shared by every component. All failures the
// core can produce originate at an external boundary; pure computation
// (calorie math, distance math, phase transitions) never returns an error.
package core

import "errors"

var (
	// ErrValidation rejects malformed input before any state is mutated.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an operation against an id absent from the
	// relevant collection.
	ErrNotFound = errors.New("not found")

	// ErrPersistence surfaces an external store read/write failure to the
	// caller. There is no automatic retry.
	ErrPersistence = errors.New("persistence failed")

	// ErrPermission marks an authenticated-only path reached without a
	// signed-in user. Callers fall back to the anonymous/local path.
	ErrPermission = errors.New("permission denied")
)
