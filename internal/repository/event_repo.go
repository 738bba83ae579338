package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"recipeshare/internal/models"

	"github.com/google/uuid"
)

type ActivitySQLite struct {
	db *sql.DB
}

func NewActivitySQLite(db *sql.DB) *ActivitySQLite { return &ActivitySQLite{db: db} }

var _ Activity = (*ActivitySQLite)(nil)

const (
	insertActivitySQL      = `INSERT INTO activity_events (id, occurred_at, type, message, meta) VALUES (?, ?, ?, ?, ?)`
	selectActivityBaseSQL  = `SELECT id, occurred_at, type, message, meta FROM activity_events`
	selectActivitySinceSQL = selectActivityBaseSQL + ` WHERE occurred_at > ? ORDER BY occurred_at ASC`
)

// activityTimeLayout keeps nanoseconds, zero-padded to a fixed width so the
// stored strings order lexicographically. Second granularity would make two
// events in the same second compare equal and the strict > of the feed
// cursor would skip the later one.
const activityTimeLayout = "2006-01-02 15:04:05.000000000"

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *ActivitySQLite) Append(ctx context.Context, e models.ActivityEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	// marshal metadata if present
	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertActivitySQL,
		e.EventID,
		e.OccurredAt.Format(activityTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert activity event %q: %w", e.Type, err)
	}
	return nil
}

// List returns events filtered by inclusive time range and type. Zero times
// and an empty type mean "no bound".
func (r *ActivitySQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	query := selectActivityBaseSQL
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(activityTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(activityTimeLayout))
	}
	if typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, strings.ToUpper(typ))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select activity events: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanActivityRows(rows)
}

// Since returns events that occurred strictly after the given time, oldest
// first. Used by the live feed.
func (r *ActivitySQLite) Since(ctx context.Context, after time.Time) ([]models.ActivityEvent, error) {
	rows, err := r.db.QueryContext(ctx, selectActivitySinceSQL, after.UTC().Format(activityTimeLayout))
	if err != nil {
		return nil, fmt.Errorf("select activity events since %s: %w", after.UTC().Format(activityTimeLayout), err)
	}
	defer func() { _ = rows.Close() }()
	return scanActivityRows(rows)
}

func scanActivityRows(rows *sql.Rows) ([]models.ActivityEvent, error) {
	events := make([]models.ActivityEvent, 0)
	for rows.Next() {
		var (
			e        models.ActivityEvent
			occurred string
			meta     sql.NullString
		)
		if err := rows.Scan(&e.EventID, &occurred, &e.Type, &e.Description, &meta); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		t, err := time.Parse(activityTimeLayout, occurred)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", occurred, err)
		}
		e.OccurredAt = t.UTC()
		if meta.Valid {
			var v any
			if err := json.Unmarshal([]byte(meta.String), &v); err == nil {
				e.Metadata = v
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity events: %w", err)
	}
	return events, nil
}
