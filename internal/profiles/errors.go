package profiles

import "errors"

var (
	ErrNotFound = errors.New("profile not found")
	ErrConflict = errors.New("profile already exists for user")
)
