package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

const taskColumns = `id, title, notes, project_id, header_id, completed, logged, priority, due_date, position, created_at`

// SearchResult is one task search hit.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// InsertTask inserts a new task row. The caller is responsible for having
// assigned a position key (creation appends to the owning scope).
func (db *DB) InsertTask(ctx context.Context, t *models.Task) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO tasks (id, title, notes, project_id, header_id, completed, logged, priority, due_date, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Notes, nullStr(t.ProjectID), nullStr(t.HeaderID),
		t.Completed, t.Logged, t.Priority, dueArg(t.DueDate), posArg(t.Pos), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert task: %w", err)
	}
	return db.ftsUpsertTask(ctx, t.ID, t.Title, t.Notes)
}

// GetTask returns one task by id.
func (db *DB) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get task: %w", err)
	}
	return t, nil
}

// UpdateTaskFields persists the non-ordering fields of a task. Position and
// parent references are deliberately excluded: those change only through
// ordering mutations.
func (db *DB) UpdateTaskFields(ctx context.Context, t *models.Task) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE tasks SET title = ?, notes = ?, completed = ?, logged = ?, priority = ?, due_date = ?
		WHERE id = ?
	`, t.Title, t.Notes, t.Completed, t.Logged, t.Priority, dueArg(t.DueDate), t.ID)
	if err != nil {
		return fmt.Errorf("store: update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return db.ftsUpsertTask(ctx, t.ID, t.Title, t.Notes)
}

// DeleteTask removes a task. The position gap it leaves is never closed.
func (db *DB) DeleteTask(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	db.ftsDeleteTask(ctx, id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (*models.Task, error) {
	var (
		t         models.Task
		projectID sql.NullString
		headerID  sql.NullString
		due       sql.NullTime
		pos       sql.NullInt32
	)
	err := r.Scan(&t.ID, &t.Title, &t.Notes, &projectID, &headerID,
		&t.Completed, &t.Logged, &t.Priority, &due, &pos, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.ProjectID = strOrEmpty(projectID)
	t.HeaderID = strOrEmpty(headerID)
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	t.Pos = scanPos(pos)
	return &t, nil
}

func dueArg(d *time.Time) any {
	if d == nil {
		return nil
	}
	return *d
}

func (db *DB) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query tasks: %w", err)
	}
	defer rows.Close()

	var out []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
