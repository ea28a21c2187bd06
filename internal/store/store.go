// Package store is the SQLite persistence boundary: entity rows, scope
// member reads, and transactional position/scope commits.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS areas (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	position   INTEGER,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	area_id    TEXT REFERENCES areas(id) ON DELETE SET NULL,
	completed  INTEGER NOT NULL DEFAULT 0,
	position   INTEGER,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS headers (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title      TEXT NOT NULL DEFAULT '',
	position   INTEGER,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	notes      TEXT NOT NULL DEFAULT '',
	project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
	header_id  TEXT REFERENCES headers(id) ON DELETE SET NULL,
	completed  INTEGER NOT NULL DEFAULT 0,
	logged     INTEGER NOT NULL DEFAULT 0,
	priority   INTEGER NOT NULL DEFAULT 0,
	due_date   DATETIME,
	position   INTEGER,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_header  ON tasks(header_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due     ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_projects_area ON projects(area_id);
CREATE INDEX IF NOT EXISTS idx_headers_project ON headers(project_id);
`

// DB wraps a sql.DB with task-store operations.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply fts schema: %w", err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Path returns the database file path.
func (db *DB) Path() string { return db.path }

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// DataVersion returns SQLite's data_version pragma, which changes whenever
// another connection commits to the database. Used by the file watcher to
// distinguish external commits from our own.
func (db *DB) DataVersion() (int64, error) {
	var v int64
	if err := db.conn.QueryRow(`PRAGMA data_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("store: data_version: %w", err)
	}
	return v, nil
}

func posArg(pos *int32) any {
	if pos == nil {
		return nil
	}
	return *pos
}

func scanPos(ns sql.NullInt32) *int32 {
	if !ns.Valid {
		return nil
	}
	v := ns.Int32
	return &v
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func strOrEmpty(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
