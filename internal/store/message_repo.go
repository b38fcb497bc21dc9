package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Message is one stored contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Emailed   bool      `json:"emailed"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrMessageNotFound is returned for unknown message IDs.
var ErrMessageNotFound = errors.New("message not found")

// MessageRepo stores contact-form submissions.
type MessageRepo struct {
	db *sql.DB
}

// Messages returns the contact message repo.
func (s *Store) Messages() *MessageRepo {
	return &MessageRepo{db: s.db}
}

// Insert stores a new message. Emailed records whether SMTP delivery
// succeeded; a stored-but-not-emailed message is still a captured lead.
func (r *MessageRepo) Insert(ctx context.Context, msg Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, name, email, body, emailed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.Name, msg.Email, msg.Body, msg.Emailed, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message %s: %w", msg.ID, err)
	}
	return nil
}

// List returns messages newest first, capped at limit (0 means all).
func (r *MessageRepo) List(ctx context.Context, limit int) ([]Message, error) {
	query := `
		SELECT id, name, email, body, emailed, created_at
		FROM messages
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Emailed, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}
	return msgs, nil
}

// Delete removes a message or returns ErrMessageNotFound.
func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Count returns the total number of stored messages.
func (r *MessageRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
