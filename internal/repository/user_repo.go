package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipeshare/internal/models"

	"modernc.org/sqlite"
)

// ErrUsernameTaken reports a write rejected by the UNIQUE(username) constraint.
var ErrUsernameTaken = errors.New("username already taken")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, image_url, bio) VALUES (?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, image_url, bio FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, password_hash, image_url, bio FROM users WHERE id = ?`
	deleteUserSQL           = `DELETE FROM users WHERE id = ?`
)

// SQLITE_CONSTRAINT_UNIQUE extended result code.
const sqliteConstraintUnique = 2067

// isUniqueViolation detects a UNIQUE constraint failure from the sqlite
// driver. The string check covers drivers used in tests that surface the
// sqlite message without the typed error.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqliteConstraintUnique {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and returns its ID. A duplicate username comes
// back as ErrUsernameTaken; the failed statement leaves no partial row.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordHash, nullable(u.ImageURL), nullable(u.Bio))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return u, nil
}

// Delete removes a user row. Deleting a missing id is not an error.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteUserSQL, id); err != nil {
		return fmt.Errorf("delete user id=%d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u        models.User
		imageURL sql.NullString
		bio      sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &imageURL, &bio)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.ImageURL = imageURL.String
	u.Bio = bio.String
	return &u, nil
}

// nullable maps "" to NULL so optional text columns stay NULL instead of
// accumulating empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
