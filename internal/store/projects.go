package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// InsertProject inserts a new project row.
func (db *DB) InsertProject(ctx context.Context, p *models.Project) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO projects (id, name, area_id, completed, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, nullStr(p.AreaID), p.Completed, posArg(p.Pos), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert project: %w", err)
	}
	return nil
}

// GetProject returns one project by id.
func (db *DB) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, area_id, completed, position, created_at FROM projects WHERE id = ?
	`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get project: %w", err)
	}
	return p, nil
}

// UpdateProjectFields persists the non-ordering fields of a project.
func (db *DB) UpdateProjectFields(ctx context.Context, p *models.Project) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE projects SET name = ?, completed = ? WHERE id = ?
	`, p.Name, p.Completed, p.ID)
	if err != nil {
		return fmt.Errorf("store: update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteProject removes a project; its tasks and headers cascade.
func (db *DB) DeleteProject(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanProject(r rowScanner) (*models.Project, error) {
	var (
		p      models.Project
		areaID sql.NullString
		pos    sql.NullInt32
	)
	if err := r.Scan(&p.ID, &p.Name, &areaID, &p.Completed, &pos, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.AreaID = strOrEmpty(areaID)
	p.Pos = scanPos(pos)
	return &p, nil
}

func (db *DB) queryProjects(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query projects: %w", err)
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
