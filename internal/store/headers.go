package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// InsertHeader inserts a new header row.
func (db *DB) InsertHeader(ctx context.Context, h *models.Header) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO headers (id, project_id, title, position, created_at) VALUES (?, ?, ?, ?, ?)
	`, h.ID, h.ProjectID, h.Title, posArg(h.Pos), h.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert header: %w", err)
	}
	return nil
}

// GetHeader returns one header by id.
func (db *DB) GetHeader(ctx context.Context, id string) (*models.Header, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, project_id, title, position, created_at FROM headers WHERE id = ?
	`, id)
	h, err := scanHeader(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get header: %w", err)
	}
	return h, nil
}

// UpdateHeaderFields persists the non-ordering fields of a header.
func (db *DB) UpdateHeaderFields(ctx context.Context, h *models.Header) error {
	res, err := db.conn.ExecContext(ctx, `UPDATE headers SET title = ? WHERE id = ?`, h.Title, h.ID)
	if err != nil {
		return fmt.Errorf("store: update header: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteHeader removes a header; its tasks fall back to the bare project
// scope (header_id set NULL by the schema).
func (db *DB) DeleteHeader(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM headers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete header: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanHeader(r rowScanner) (*models.Header, error) {
	var (
		h   models.Header
		pos sql.NullInt32
	)
	if err := r.Scan(&h.ID, &h.ProjectID, &h.Title, &pos, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.Pos = scanPos(pos)
	return &h, nil
}

func (db *DB) queryHeaders(ctx context.Context, query string, args ...any) ([]*models.Header, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query headers: %w", err)
	}
	defer rows.Close()

	var out []*models.Header
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
