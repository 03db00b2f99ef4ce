package matching

import "errors"

var (
	// ErrInvalidOperation wraps comparator heuristic failures such as
	// malformed date ranges so they never escape as raw faults.
	ErrInvalidOperation = errors.New("invalid operation")

	ErrHistoryNotFound = errors.New("match history not found")
)
