package repository

import (
	"context"
	"database/sql"
	"errors"

	"crowdcount/internal/models"
)

// ErrDuplicateUser reports a username/email uniqueness violation on insert.
// Callers are expected to pre-check, but the store must not silently
// produce duplicate identities under concurrent registrations.
var ErrDuplicateUser = errors.New("user already exists")

// Users is the credential store contract. Lookups return (nil, nil) when
// no record matches.
type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (int, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	GetByCredentials(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	SeedAdmin(ctx context.Context, username, email, passwordHash string) error
}

type Repository struct {
	Users Users
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
	}
}
