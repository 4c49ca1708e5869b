package auth

import "errors"

// Error taxonomy shared by the use case, repository and HTTP layer.
// Handlers map these onto status codes; raw store errors never cross
// the use-case boundary.
var (
	// ErrMissingCredentials: email or password absent from the request.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrUserAlreadyExists: unique-key conflict on email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is a repository outcome, not a failure; the use case
	// branches on it and it never reaches a client.
	ErrNotFound = errors.New("not found")
	// ErrInternal replaces any store/infrastructure error.
	ErrInternal = errors.New("internal error")
)
