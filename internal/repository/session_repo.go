package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recipeshare/internal/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ Sessions = (*SessionRepository)(nil)

// sqliteTimeLayout is the second-granularity TIMESTAMP format for session
// rows. Activity events carry sub-second precision and use their own layout.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const (
	insertSessionSQL = `INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`

	// Joining users makes a session whose user was deleted resolve to
	// nothing, which callers treat the same as no session at all.
	resolveSessionSQL = `
SELECT s.user_id
FROM sessions s
JOIN users u ON u.id = s.user_id
WHERE s.token = ? AND s.expires_at > ?`

	deleteSessionSQL        = `DELETE FROM sessions WHERE token = ?`
	deleteExpiredSessionSQL = `DELETE FROM sessions WHERE expires_at <= ?`
)

// Create stores a new session row.
func (r *SessionRepository) Create(ctx context.Context, s models.Session) error {
	_, err := r.db.ExecContext(ctx, insertSessionSQL,
		s.Token,
		s.UserID,
		s.CreatedAt.UTC().Format(sqliteTimeLayout),
		s.ExpiresAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert session for user %d: %w", s.UserID, err)
	}
	return nil
}

// Resolve returns the user id bound to token, or 0 when the token is
// unknown, expired, or dangling.
func (r *SessionRepository) Resolve(ctx context.Context, token string, now time.Time) (int, error) {
	var userID int
	err := r.db.QueryRowContext(ctx, resolveSessionSQL, token, now.UTC().Format(sqliteTimeLayout)).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

// Delete removes a session row and reports whether one existed.
func (r *SessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteSessionSQL, token)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for session delete: %w", err)
	}
	return n > 0, nil
}

// PurgeExpired drops all sessions past their expiry and returns the count.
func (r *SessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessionSQL, now.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for session purge: %w", err)
	}
	return n, nil
}
