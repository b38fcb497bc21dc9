package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Visit is one privacy-conscious visit record. HashedIP is a salted hash,
// never a raw address.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitorStats is the dashboard summary.
type VisitorStats struct {
	Total    int64 `json:"total_visitors"`
	Unique   int64 `json:"unique_visitors"`
	Today    int64 `json:"visitors_today"`
	ThisWeek int64 `json:"visitors_this_week"`
}

// retentionWindow bounds how long visit records are kept.
const retentionWindow = "-12 months"

// VisitorRepo stores the visit log.
type VisitorRepo struct {
	db *sql.DB
}

// Visitors returns the visit log repo.
func (s *Store) Visitors() *VisitorRepo {
	return &VisitorRepo{db: s.db}
}

// Record appends one visit.
func (r *VisitorRepo) Record(ctx context.Context, hashedIP, userAgent, path string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Recent returns the latest visits, newest first.
func (r *VisitorRepo) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visit row: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visit rows: %w", err)
	}
	return visits, nil
}

// Stats computes the dashboard summary.
func (r *VisitorRepo) Stats(ctx context.Context) (VisitorStats, error) {
	var stats VisitorStats

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visitors`).Scan(&stats.Total); err != nil {
		return stats, fmt.Errorf("count visits: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`).Scan(&stats.Unique); err != nil {
		return stats, fmt.Errorf("count unique visitors: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE('now')`).Scan(&stats.Today); err != nil {
		return stats, fmt.Errorf("count visits today: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime('now', '-7 days')`).Scan(&stats.ThisWeek); err != nil {
		return stats, fmt.Errorf("count visits this week: %w", err)
	}

	return stats, nil
}

// CleanupExpired removes visits older than the retention window and
// returns how many were deleted.
func (r *VisitorRepo) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM visitors WHERE timestamp < datetime('now', ?)
	`, retentionWindow)
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	return deleted, nil
}
