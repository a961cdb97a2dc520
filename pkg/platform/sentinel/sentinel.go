// Package sentinel holds errors for infrastructure facts. Registries and
// clients return these (optionally wrapped) so services can translate them
// into domain errors.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
package sentinel

import "errors"

var (
	// ErrNotFound reports that no entry exists under the requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports that an identifier is already taken.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable reports that a backing service did not answer.
	ErrUnavailable = errors.New("unavailable")
)
