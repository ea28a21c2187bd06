package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/starford/raido/internal/models"
)

// MembersOf returns every entity currently in the given scope, unsorted.
// Ordering is the query layer's job.
func (db *DB) MembersOf(ctx context.Context, scope models.ScopeID) ([]models.Orderable, error) {
	switch scope.Kind {
	case models.ScopeInbox:
		tasks, err := db.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id IS NULL`)
		return asOrderables(tasks), err
	case models.ScopeProjectTasks:
		tasks, err := db.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? AND header_id IS NULL`, scope.Parent)
		return asOrderables(tasks), err
	case models.ScopeHeaderTasks:
		tasks, err := db.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE header_id = ?`, scope.Parent)
		return asOrderables(tasks), err
	case models.ScopeProjectHeaders:
		headers, err := db.queryHeaders(ctx, `SELECT id, project_id, title, position, created_at FROM headers WHERE project_id = ?`, scope.Parent)
		return asOrderables(headers), err
	case models.ScopeAreaProjects:
		projects, err := db.queryProjects(ctx, `SELECT id, name, area_id, completed, position, created_at FROM projects WHERE area_id = ?`, scope.Parent)
		return asOrderables(projects), err
	case models.ScopeOrphanProjects:
		projects, err := db.queryProjects(ctx, `SELECT id, name, area_id, completed, position, created_at FROM projects WHERE area_id IS NULL`)
		return asOrderables(projects), err
	case models.ScopeAreas:
		areas, err := db.queryAreas(ctx, `SELECT id, name, position, created_at FROM areas`)
		return asOrderables(areas), err
	default:
		return nil, fmt.Errorf("store: unknown scope kind %q", scope.Kind)
	}
}

// MaxPosition returns the highest position key in a scope, or nil when the
// scope is empty or holds only unkeyed entities.
func (db *DB) MaxPosition(ctx context.Context, scope models.ScopeID) (*int32, error) {
	var query string
	args := []any{}
	switch scope.Kind {
	case models.ScopeInbox:
		query = `SELECT MAX(position) FROM tasks WHERE project_id IS NULL`
	case models.ScopeProjectTasks:
		query = `SELECT MAX(position) FROM tasks WHERE project_id = ? AND header_id IS NULL`
		args = append(args, scope.Parent)
	case models.ScopeHeaderTasks:
		query = `SELECT MAX(position) FROM tasks WHERE header_id = ?`
		args = append(args, scope.Parent)
	case models.ScopeProjectHeaders:
		query = `SELECT MAX(position) FROM headers WHERE project_id = ?`
		args = append(args, scope.Parent)
	case models.ScopeAreaProjects:
		query = `SELECT MAX(position) FROM projects WHERE area_id = ?`
		args = append(args, scope.Parent)
	case models.ScopeOrphanProjects:
		query = `SELECT MAX(position) FROM projects WHERE area_id IS NULL`
	case models.ScopeAreas:
		query = `SELECT MAX(position) FROM areas`
	default:
		return nil, fmt.Errorf("store: unknown scope kind %q", scope.Kind)
	}

	var max sql.NullInt32
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return nil, fmt.Errorf("store: max position: %w", err)
	}
	return scanPos(max), nil
}

// AllScopes enumerates every ordering scope known to the store: the inbox,
// each project's task and header scopes, each header's task scope, each
// area's project scope, orphan projects, and the global areas scope.
func (db *DB) AllScopes(ctx context.Context) ([]models.ScopeID, error) {
	scopes := []models.ScopeID{
		models.InboxScope(),
		models.OrphanProjectsScope(),
		models.AreasScope(),
	}

	projectIDs, err := db.columnIDs(ctx, `SELECT id FROM projects`)
	if err != nil {
		return nil, err
	}
	for _, id := range projectIDs {
		scopes = append(scopes, models.ProjectTasksScope(id), models.ProjectHeadersScope(id))
	}

	headerIDs, err := db.columnIDs(ctx, `SELECT id FROM headers`)
	if err != nil {
		return nil, err
	}
	for _, id := range headerIDs {
		scopes = append(scopes, models.HeaderTasksScope(id))
	}

	areaIDs, err := db.columnIDs(ctx, `SELECT id FROM areas`)
	if err != nil {
		return nil, err
	}
	for _, id := range areaIDs {
		scopes = append(scopes, models.AreaProjectsScope(id))
	}

	return scopes, nil
}

// Unkeyed returns every entity across all tables whose position is missing.
func (db *DB) Unkeyed(ctx context.Context) ([]models.Orderable, error) {
	var out []models.Orderable

	tasks, err := db.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE position IS NULL`)
	if err != nil {
		return nil, err
	}
	out = append(out, asOrderables(tasks)...)

	projects, err := db.queryProjects(ctx, `SELECT id, name, area_id, completed, position, created_at FROM projects WHERE position IS NULL`)
	if err != nil {
		return nil, err
	}
	out = append(out, asOrderables(projects)...)

	headers, err := db.queryHeaders(ctx, `SELECT id, project_id, title, position, created_at FROM headers WHERE position IS NULL`)
	if err != nil {
		return nil, err
	}
	out = append(out, asOrderables(headers)...)

	areas, err := db.queryAreas(ctx, `SELECT id, name, position, created_at FROM areas WHERE position IS NULL`)
	if err != nil {
		return nil, err
	}
	out = append(out, asOrderables(areas)...)

	return out, nil
}

func (db *DB) columnIDs(ctx context.Context, query string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func asOrderables[T models.Orderable](items []T) []models.Orderable {
	out := make([]models.Orderable, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
