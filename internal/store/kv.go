package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// VisitorStorage scopes the achievement_state table to a single visitor
// and satisfies the achievement engine's Storage interface. Rows are
// upserted, so Set is idempotent per (visitor, key).
type VisitorStorage struct {
	db        *sql.DB
	visitorID string
}

// AchievementStorage returns the achievement key/value namespace for one
// visitor.
func (s *Store) AchievementStorage(visitorID string) *VisitorStorage {
	return &VisitorStorage{db: s.db, visitorID: visitorID}
}

func (v *VisitorStorage) Get(key string) (string, bool, error) {
	var value string
	err := v.db.QueryRow(`
		SELECT value FROM achievement_state
		WHERE visitor_id = ? AND key = ?
	`, v.visitorID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read achievement state %s: %w", key, err)
	}
	return value, true, nil
}

func (v *VisitorStorage) Set(key, value string) error {
	_, err := v.db.Exec(`
		INSERT INTO achievement_state (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(visitor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, v.visitorID, key, value)
	if err != nil {
		return fmt.Errorf("write achievement state %s: %w", key, err)
	}
	return nil
}

func (v *VisitorStorage) Delete(key string) error {
	_, err := v.db.Exec(`
		DELETE FROM achievement_state
		WHERE visitor_id = ? AND key = ?
	`, v.visitorID, key)
	if err != nil {
		return fmt.Errorf("delete achievement state %s: %w", key, err)
	}
	return nil
}
