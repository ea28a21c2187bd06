package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// InsertArea inserts a new area row.
func (db *DB) InsertArea(ctx context.Context, a *models.Area) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO areas (id, name, position, created_at) VALUES (?, ?, ?, ?)
	`, a.ID, a.Name, posArg(a.Pos), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert area: %w", err)
	}
	return nil
}

// GetArea returns one area by id.
func (db *DB) GetArea(ctx context.Context, id string) (*models.Area, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, position, created_at FROM areas WHERE id = ?
	`, id)
	a, err := scanArea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get area: %w", err)
	}
	return a, nil
}

// UpdateAreaFields persists the non-ordering fields of an area.
func (db *DB) UpdateAreaFields(ctx context.Context, a *models.Area) error {
	res, err := db.conn.ExecContext(ctx, `UPDATE areas SET name = ? WHERE id = ?`, a.Name, a.ID)
	if err != nil {
		return fmt.Errorf("store: update area: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteArea removes an area; its projects keep existing with no area.
func (db *DB) DeleteArea(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM areas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete area: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanArea(r rowScanner) (*models.Area, error) {
	var (
		a   models.Area
		pos sql.NullInt32
	)
	if err := r.Scan(&a.ID, &a.Name, &pos, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Pos = scanPos(pos)
	return &a, nil
}

func (db *DB) queryAreas(ctx context.Context, query string, args ...any) ([]*models.Area, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query areas: %w", err)
	}
	defer rows.Close()

	var out []*models.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
