package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// Mutation is one typed entity change inside a commit batch. All mutations
// in a batch apply atomically: a failed commit leaves storage untouched.
type Mutation interface {
	apply(ctx context.Context, tx *sql.Tx) error
}

// PositionUpdate rewrites one entity's position key in place.
type PositionUpdate struct {
	Kind     models.EntityKind
	ID       string
	Position int32
}

func (m PositionUpdate) apply(ctx context.Context, tx *sql.Tx) error {
	table, err := tableFor(m.Kind)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE `+table+` SET position = ? WHERE id = ?`, m.Position, m.ID)
	if err != nil {
		return fmt.Errorf("position update %s/%s: %w", m.Kind, m.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("position update %s/%s: %w", m.Kind, m.ID, apperr.ErrNotFound)
	}
	return nil
}

// TaskScopeMove rewrites a task's parent references and position key as one
// change. Scope and key must never be split across commits.
type TaskScopeMove struct {
	ID        string
	ProjectID string // empty = NULL (inbox)
	HeaderID  string // empty = NULL
	Position  int32
}

func (m TaskScopeMove) apply(ctx context.Context, tx *sql.Tx) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE tasks SET project_id = ?, header_id = ?, position = ? WHERE id = ?
	`, nullStr(m.ProjectID), nullStr(m.HeaderID), m.Position, m.ID)
	if err != nil {
		return fmt.Errorf("task scope move %s: %w", m.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task scope move %s: %w", m.ID, apperr.ErrNotFound)
	}
	return nil
}

// ProjectScopeMove rewrites a project's area reference and position key as
// one change.
type ProjectScopeMove struct {
	ID       string
	AreaID   string // empty = NULL (no area)
	Position int32
}

func (m ProjectScopeMove) apply(ctx context.Context, tx *sql.Tx) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE projects SET area_id = ?, position = ? WHERE id = ?
	`, nullStr(m.AreaID), m.Position, m.ID)
	if err != nil {
		return fmt.Errorf("project scope move %s: %w", m.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project scope move %s: %w", m.ID, apperr.ErrNotFound)
	}
	return nil
}

// Commit applies a batch of mutations in a single transaction. On any
// failure the transaction rolls back and the error wraps ErrCommitFailed.
func (db *DB) Commit(ctx context.Context, muts []Mutation) error {
	if len(muts) == 0 {
		return nil
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w: %w", apperr.ErrCommitFailed, err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	for _, m := range muts {
		if err := m.apply(ctx, tx); err != nil {
			return fmt.Errorf("store: %w: %w", apperr.ErrCommitFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit tx: %w: %w", apperr.ErrCommitFailed, err)
	}
	return nil
}

func tableFor(kind models.EntityKind) (string, error) {
	switch kind {
	case models.KindTask:
		return "tasks", nil
	case models.KindProject:
		return "projects", nil
	case models.KindArea:
		return "areas", nil
	case models.KindHeader:
		return "headers", nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
}
