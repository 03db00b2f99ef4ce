package recommendations

import "errors"

var (
	ErrNotFound = errors.New("recommendation not found")

	// ErrInvalidOperation covers lifecycle misuse: resolving an
	// already-terminal recommendation or rejecting without a reason.
	ErrInvalidOperation = errors.New("invalid operation")
)
