// Package common holds sentinel errors shared across helpdesk client layers.
// Callers should match them with errors.Is.
package common

import "errors"

var (
	// ErrNotFound reports a missing record (directory lookup, remote fetch).
	ErrNotFound = errors.New("not found")

	// ErrRemoteUnavailable wraps any failure of a remote store call. The
	// synchronization cache maps it to the dataset's generic error message.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrNotAuthorized reports an operation rejected by an authorization
	// check, e.g. a non-admin attempting impersonation.
	ErrNotAuthorized = errors.New("not authorized")
)
