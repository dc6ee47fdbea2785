// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested card does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownIntent indicates an intent name outside the closed set
	// arriving at an outer boundary (HTTP); in-process intents are a closed type set.
	ErrUnknownIntent = errors.New("unknown intent")
)
