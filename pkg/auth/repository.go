package auth

import "context"

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type UserRepository interface {
	// Create inserts a new user and returns it with the store-generated ID.
	// Returns ErrUserAlreadyExists on an email conflict.
	Create(ctx context.Context, email, passwordHash string) (User, error)
	// GetByEmail returns ErrNotFound when no such user exists.
	GetByEmail(ctx context.Context, email string) (User, error)
}
