package domain

import "errors"

// Sentinel errors shared across the engine and its hosts.
var (
	// ErrUnknownPoint indicates a move referenced a point id the level
	// does not contain.
	ErrUnknownPoint = errors.New("untangle: unknown point id")

	// ErrInvalidLevelIndex indicates a non-positive level index was passed
	// to the generator. The index is rejected rather than clamped so a
	// caller bug is not silently masked.
	ErrInvalidLevelIndex = errors.New("untangle: level index must be >= 1")

	// ErrSessionNotFound indicates an operation referenced a session id
	// that was never started or has already ended.
	ErrSessionNotFound = errors.New("untangle: session not found")
)
