package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Message is one delivered greeting. Rows are append-only and never updated.
type Message struct {
	ID          int64     `db:"id"`
	SenderID    int64     `db:"sender_id"`
	RecipientID int64     `db:"recipient_id"`
	Text        string    `db:"text"`
	IsAnonymous bool      `db:"is_anonymous"`
	CreatedAt   time.Time `db:"created_at"`
}

// MessageRepo persists the append-only ledger of delivered greetings.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs the repository over an open connection pool.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Record appends one row with the current timestamp and returns its id.
func (r *MessageRepo) Record(ctx context.Context, senderID, recipientID int64, text string, anonymous bool) (int64, error) {
	const q = `
		INSERT INTO messages (sender_id, recipient_id, text, is_anonymous, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id`

	var id int64
	if err := r.db.GetContext(ctx, &id, q, senderID, recipientID, text, anonymous); err != nil {
		return 0, wrap("messages.record", err)
	}
	return id, nil
}

// Count returns the number of delivered greetings.
func (r *MessageRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM messages`); err != nil {
		return 0, wrap("messages.count", err)
	}
	return n, nil
}
