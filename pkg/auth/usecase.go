package auth

import (
	"context"
	"errors"
	"log/slog"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	log    *slog.Logger
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenGenerator, log *slog.Logger) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register hashes the password and stores a new user. No token is issued
// at registration; clients log in afterwards.
func (s *authService) Register(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrMissingCredentials
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error("hash password", "err", err)
		return User{}, ErrInternal
	}

	user, err := s.repo.Create(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return User{}, ErrUserAlreadyExists
		}
		s.log.Error("create user", "err", err)
		return User{}, ErrInternal
	}
	return user, nil
}

// Login verifies the credentials and mints a signed token. An unknown
// email and a wrong password both come back as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		s.log.Error("get user by email", "err", err)
		return "", ErrInternal
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		s.log.Error("generate token", "err", err)
		return "", ErrInternal
	}
	return token, nil
}
