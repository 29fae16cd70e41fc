package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"crowdcount/internal/models"
	"crowdcount/internal/repository"
)

// Domain errors for account flows. The messages are part of the API
// contract and surface verbatim in error responses.
var (
	ErrFieldsRequired      = errors.New("All fields are required")
	ErrPasswordTooShort    = errors.New("Password must be at least 6 characters long")
	ErrUserExists          = errors.New("User already exists with this email or username")
	ErrCredentialsRequired = errors.New("Email and password are required")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrUserNotFound        = errors.New("User not found")
)

const minPasswordLen = 6

// AccountService handles registration and credential verification.
type AccountService struct {
	users repository.Users
}

func NewAccountService(users repository.Users) *AccountService {
	return &AccountService{users: users}
}

// HashPassword returns the hex sha256 digest of the plaintext password.
// Unsalted single-round digest, kept for compatibility with the stored
// credential format; not suitable for hardening without a migration.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register validates input, enforces uniqueness and creates the user.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrFieldsRequired
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	id, err := s.users.Create(ctx, username, email, HashPassword(password))
	if err != nil {
		// The unique constraint can still fire when two registrations race
		// past the pre-check; that is a conflict, not an internal failure.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &models.User{ID: id, Username: username, Email: email}, nil
}

// Login verifies the (email, password digest) pair. A wrong password and an
// unknown email produce the same error, so accounts cannot be enumerated.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	u, err := s.users.GetByCredentials(ctx, email, HashPassword(password))
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns the stored user or ErrUserNotFound. Users are never
// deleted, so the miss is a defensive case.
func (s *AccountService) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
