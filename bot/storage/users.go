package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// User is a registered identity keyed by the platform-assigned id.
type User struct {
	ID           int64     `db:"user_id"`
	Username     *string   `db:"username"`
	FirstName    string    `db:"first_name"`
	RegisteredAt time.Time `db:"registered_at"`
}

// UserRepo persists registered identities.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs the repository over an open connection pool.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserts or updates the user keyed by id. Handle and name are
// overwritten with the latest observed values; registered_at keeps the
// first-seen timestamp. Reports whether a new row was created.
func (r *UserRepo) Upsert(ctx context.Context, u User) (bool, error) {
	const q = `
		INSERT INTO users (user_id, username, first_name, registered_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name
		RETURNING (xmax = 0)`

	var created bool
	if err := r.db.GetContext(ctx, &created, q, u.ID, u.Username, u.FirstName); err != nil {
		return false, wrap("users.upsert", err)
	}
	return created, nil
}

// ResolveHandle returns the id registered under the handle, matched
// case-insensitively after normalization. A miss is a valid negative result.
// Duplicate handles should not occur; if they do, the most recent
// registration wins.
func (r *UserRepo) ResolveHandle(ctx context.Context, handle string) (int64, bool, error) {
	h := NormalizeHandle(handle)
	if h == "" {
		return 0, false, nil
	}

	const q = `
		SELECT user_id FROM users
		WHERE LOWER(username) = $1
		ORDER BY registered_at DESC
		LIMIT 1`

	var id int64
	err := r.db.GetContext(ctx, &id, q, h)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrap("users.resolve_handle", err)
	}
	return id, true, nil
}

// Count returns the number of registered users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, wrap("users.count", err)
	}
	return n, nil
}
