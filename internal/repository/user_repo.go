package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"crowdcount/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`

	seedAdminSQL = `INSERT OR IGNORE INTO users (username, email, password_hash) VALUES (?, ?, ?)`

	selectUserByNameOrEmailSQL = `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ? OR email = ?`

	selectUserByCredentialsSQL = `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = ? AND password_hash = ?`

	selectUserByIDSQL = `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = ?`
)

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as "constraint failed: UNIQUE constraint
// failed: users.<column>".
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and returns its ID. A uniqueness violation on
// username or email yields ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", username, ErrDuplicateUser)
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// FindByUsernameOrEmail fetches a user matching either field.
// Returns (nil, nil) if not found.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByNameOrEmailSQL, username, email))
	if err != nil {
		return nil, fmt.Errorf("select user by username %q or email %q: %w", username, email, err)
	}
	return u, nil
}

// GetByCredentials fetches the user matching both email and password digest
// exactly. Returns (nil, nil) if no pair matches.
func (r *UserRepository) GetByCredentials(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByCredentialsSQL, email, passwordHash))
	if err != nil {
		return nil, fmt.Errorf("select user by credentials for %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

// SeedAdmin inserts the fixed administrative account if absent. Idempotent:
// INSERT OR IGNORE leaves an existing row untouched.
func (r *UserRepository) SeedAdmin(ctx context.Context, username, email, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, seedAdminSQL, username, email, passwordHash); err != nil {
		return fmt.Errorf("seed admin user %q: %w", username, err)
	}
	return nil
}

// scanUser maps a single-row query to a User, normalizing sql.ErrNoRows
// to (nil, nil).
func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
