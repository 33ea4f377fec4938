// Package sentinel defines shared sentinel errors used by store
// implementations so services can branch with errors.Is regardless of the
// backing storage.
package sentinel

import "errors"

var (
	// ErrNotFound signals that a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists signals a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrExpired signals that a cached record exists but is past its
	// validity window.
	ErrExpired = errors.New("expired")
)
