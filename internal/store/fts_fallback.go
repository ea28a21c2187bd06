//go:build !sqlite_fts5

package store

import (
	"context"
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; search uses a LIKE fallback on the tasks table.
	return nil
}

func (db *DB) ftsUpsertTask(_ context.Context, _, _, _ string) error {
	// Title and notes already live in the tasks table; nothing extra to do.
	return nil
}

func (db *DB) ftsDeleteTask(_ context.Context, _ string) {}

// SearchTasks performs a LIKE-based search (fallback when FTS5 is not
// compiled in).
func (db *DB) SearchTasks(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, substr(notes, 1, 200)
		FROM tasks
		WHERE title LIKE ? OR notes LIKE ?
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
