package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no user exists for an ID.
var ErrNotFound = errors.New("user not found")

// Repo persists OAuth user identities.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
