//go:build sqlite_fts5

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS tasks_fts USING fts5(
			id UNINDEXED,
			title,
			notes,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func (db *DB) ftsUpsertTask(ctx context.Context, id, title, notes string) error {
	_, _ = db.conn.ExecContext(ctx, `DELETE FROM tasks_fts WHERE id = ?`, id)
	_, err := db.conn.ExecContext(ctx, `INSERT INTO tasks_fts (id, title, notes) VALUES (?, ?, ?)`, id, title, notes)
	if err != nil {
		return fmt.Errorf("store: upsert fts: %w", err)
	}
	return nil
}

func (db *DB) ftsDeleteTask(ctx context.Context, id string) {
	_, _ = db.conn.ExecContext(ctx, `DELETE FROM tasks_fts WHERE id = ?`, id)
}

// SearchTasks performs an FTS5 full-text search over task titles and notes.
func (db *DB) SearchTasks(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id,
		       title,
		       snippet(tasks_fts, 2, '<b>', '</b>', '...', 64)
		FROM tasks_fts
		WHERE tasks_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, strings.TrimSpace(query), limit)
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
