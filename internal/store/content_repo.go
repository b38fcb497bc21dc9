package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calegray/laurel/internal/content"
)

// ContentRepo implements content.Store over the content table.
type ContentRepo struct {
	db *sql.DB
}

// Content returns the document repo for portfolio sections.
func (s *Store) Content() *ContentRepo {
	return &ContentRepo{db: s.db}
}

func (r *ContentRepo) Get(ctx context.Context, entityType, id string) (content.Document, error) {
	var doc content.Document
	var payload string
	err := r.db.QueryRowContext(ctx, `
		SELECT entity_type, id, payload, created_at, updated_at
		FROM content
		WHERE entity_type = ? AND id = ?
	`, entityType, id).Scan(&doc.EntityType, &doc.ID, &payload, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Document{}, content.ErrNotFound
	}
	if err != nil {
		return content.Document{}, fmt.Errorf("get content %s/%s: %w", entityType, id, err)
	}
	doc.Payload = json.RawMessage(payload)
	return doc, nil
}

func (r *ContentRepo) List(ctx context.Context, entityType string) ([]content.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT entity_type, id, payload, created_at, updated_at
		FROM content
		WHERE entity_type = ?
		ORDER BY created_at ASC, id ASC
	`, entityType)
	if err != nil {
		return nil, fmt.Errorf("list content %s: %w", entityType, err)
	}
	defer rows.Close()

	var docs []content.Document
	for rows.Next() {
		var doc content.Document
		var payload string
		if err := rows.Scan(&doc.EntityType, &doc.ID, &payload, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan content row: %w", err)
		}
		doc.Payload = json.RawMessage(payload)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content rows: %w", err)
	}
	return docs, nil
}

func (r *ContentRepo) Create(ctx context.Context, entityType, id string, payload json.RawMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO content (entity_type, id, payload)
		VALUES (?, ?, ?)
	`, entityType, id, string(payload))
	if err != nil {
		return fmt.Errorf("create content %s/%s: %w", entityType, id, err)
	}
	return nil
}

func (r *ContentRepo) Update(ctx context.Context, entityType, id string, payload json.RawMessage) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE content
		SET payload = ?, updated_at = CURRENT_TIMESTAMP
		WHERE entity_type = ? AND id = ?
	`, string(payload), entityType, id)
	if err != nil {
		return fmt.Errorf("update content %s/%s: %w", entityType, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update content %s/%s: %w", entityType, id, err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (r *ContentRepo) Delete(ctx context.Context, entityType, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM content WHERE entity_type = ? AND id = ?
	`, entityType, id)
	if err != nil {
		return fmt.Errorf("delete content %s/%s: %w", entityType, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content %s/%s: %w", entityType, id, err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}
	return nil
}
