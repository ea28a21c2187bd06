// Package taskservice coordinates the store, the ordering engine, and the
// event broker behind one facade consumed by the REST and MCP surfaces.
package taskservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/ordering"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/sse"
	"github.com/starford/raido/internal/store"
)

// Service is the application facade over the ordering subsystem.
type Service struct {
	db      *store.DB
	engine  *ordering.Engine
	auditor *ordering.Auditor
	repair  *ordering.Coordinator
	broker  *sse.Broker
}

// NewService creates a task service. broker may be nil (no event fan-out).
func NewService(db *store.DB, engine *ordering.Engine, auditor *ordering.Auditor, repair *ordering.Coordinator, broker *sse.Broker) *Service {
	return &Service{db: db, engine: engine, auditor: auditor, repair: repair, broker: broker}
}

func (s *Service) publish(entity, kind, id string) {
	if s.broker != nil {
		s.broker.PublishEntityEvent(entity, kind, id)
	}
}

// CreateTaskInput carries the fields for a new task. When Capture is set it
// is parsed as quick-add input and fills title, notes, priority, and due
// date.
type CreateTaskInput struct {
	Capture   string
	Title     string
	Notes     string
	ProjectID string
	HeaderID  string
	Priority  int
	DueDate   *time.Time
}

// CreateTask creates a task appended to the end of its owning scope.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if in.Capture != "" {
		res, err := parser.Parse(in.Capture, time.Now())
		if err != nil {
			return nil, err
		}
		in.Title = res.Title
		if in.Notes == "" {
			in.Notes = res.Notes
		}
		if in.Priority == models.PriorityNone {
			in.Priority = res.Priority
		}
		if in.DueDate == nil {
			in.DueDate = res.DueDate
		}
	}

	if in.HeaderID != "" {
		h, err := s.db.GetHeader(ctx, in.HeaderID)
		if err != nil {
			return nil, fmt.Errorf("resolve header: %w", err)
		}
		in.ProjectID = h.ProjectID
	} else if in.ProjectID != "" {
		if _, err := s.db.GetProject(ctx, in.ProjectID); err != nil {
			return nil, fmt.Errorf("resolve project: %w", err)
		}
	}

	t := &models.Task{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Notes:     in.Notes,
		ProjectID: in.ProjectID,
		HeaderID:  in.HeaderID,
		Priority:  in.Priority,
		DueDate:   in.DueDate,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.engine.Append(ctx, t); err != nil {
		return nil, err
	}
	s.publish("task", "created", t.ID)
	return t, nil
}

// GetTask returns one task.
func (s *Service) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.db.GetTask(ctx, id)
}

// UpdateTaskInput patches non-ordering task fields. Nil pointers leave the
// field untouched; ClearDueDate removes the due date.
type UpdateTaskInput struct {
	Title        *string
	Notes        *string
	Completed    *bool
	Logged       *bool
	Priority     *int
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateTask patches a task's unrelated fields. The position key is never
// touched here: completing or retitling a task does not move it.
func (s *Service) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*models.Task, error) {
	t, err := s.db.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Notes != nil {
		t.Notes = *in.Notes
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Logged != nil {
		t.Logged = *in.Logged
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.ClearDueDate {
		t.DueDate = nil
	}
	if err := s.db.UpdateTaskFields(ctx, t); err != nil {
		return nil, err
	}
	s.publish("task", "updated", id)
	return t, nil
}

// DeleteTask removes a task. The position gap it leaves in its scope is
// intentional and never closed.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.db.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.publish("task", "deleted", id)
	return nil
}

// ListTasks returns the tasks of a scope in display order. Completed tasks
// are filtered before windowing so offsets address the visible list.
func (s *Service) ListTasks(ctx context.Context, scope models.ScopeID, includeCompleted bool, limit, offset int) ([]*models.Task, error) {
	ordered, err := s.engine.Ordered(ctx, scope, 0, 0)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Orderable, 0, len(ordered))
	for _, m := range ordered {
		t, ok := m.(*models.Task)
		if !ok {
			continue
		}
		if !includeCompleted && t.Completed {
			continue
		}
		visible = append(visible, t)
	}
	windowed := ordering.Window(visible, limit, offset)
	out := make([]*models.Task, len(windowed))
	for i, m := range windowed {
		out[i] = m.(*models.Task)
	}
	return out, nil
}

// MoveTask moves a task within its current scope.
func (s *Service) MoveTask(ctx context.Context, id string, from, to int) error {
	t, err := s.db.GetTask(ctx, id)
	if err != nil {
		return err
	}
	return s.engine.Move(ctx, t, from, to)
}

// MoveTaskToScope moves a task into another scope, landing at the end.
func (s *Service) MoveTaskToScope(ctx context.Context, id string, target models.ScopeID) (*models.Task, error) {
	t, err := s.db.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.MoveToScope(ctx, t, target); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateProject creates a project appended to its area scope (or the
// no-area scope).
func (s *Service) CreateProject(ctx context.Context, name, areaID string) (*models.Project, error) {
	if areaID != "" {
		if _, err := s.db.GetArea(ctx, areaID); err != nil {
			return nil, fmt.Errorf("resolve area: %w", err)
		}
	}
	p := &models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		AreaID:    areaID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.engine.Append(ctx, p); err != nil {
		return nil, err
	}
	s.publish("project", "created", p.ID)
	return p, nil
}

// ListProjects returns the projects of an area scope (or the no-area
// scope) in display order.
func (s *Service) ListProjects(ctx context.Context, scope models.ScopeID) ([]*models.Project, error) {
	ordered, err := s.engine.Ordered(ctx, scope, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Project, 0, len(ordered))
	for _, m := range ordered {
		if p, ok := m.(*models.Project); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateProject renames a project or toggles its completion.
func (s *Service) UpdateProject(ctx context.Context, id string, name *string, completed *bool) (*models.Project, error) {
	p, err := s.db.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		p.Name = *name
	}
	if completed != nil {
		p.Completed = *completed
	}
	if err := s.db.UpdateProjectFields(ctx, p); err != nil {
		return nil, err
	}
	s.publish("project", "updated", id)
	return p, nil
}

// DeleteProject removes a project with its headers and tasks.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.db.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.publish("project", "deleted", id)
	return nil
}

// MoveProject moves a project within its current scope.
func (s *Service) MoveProject(ctx context.Context, id string, from, to int) error {
	p, err := s.db.GetProject(ctx, id)
	if err != nil {
		return err
	}
	return s.engine.Move(ctx, p, from, to)
}

// MoveProjectToScope moves a project under an area (or out of all areas).
func (s *Service) MoveProjectToScope(ctx context.Context, id string, target models.ScopeID) (*models.Project, error) {
	p, err := s.db.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.MoveToScope(ctx, p, target); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateArea creates an area appended to the global areas scope.
func (s *Service) CreateArea(ctx context.Context, name string) (*models.Area, error) {
	a := &models.Area{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.engine.Append(ctx, a); err != nil {
		return nil, err
	}
	s.publish("area", "created", a.ID)
	return a, nil
}

// ListAreas returns all areas in display order.
func (s *Service) ListAreas(ctx context.Context) ([]*models.Area, error) {
	ordered, err := s.engine.Ordered(ctx, models.AreasScope(), 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Area, 0, len(ordered))
	for _, m := range ordered {
		if a, ok := m.(*models.Area); ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// UpdateArea renames an area.
func (s *Service) UpdateArea(ctx context.Context, id, name string) (*models.Area, error) {
	a, err := s.db.GetArea(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name = name
	if err := s.db.UpdateAreaFields(ctx, a); err != nil {
		return nil, err
	}
	s.publish("area", "updated", id)
	return a, nil
}

// DeleteArea removes an area; its projects drop into the no-area scope.
func (s *Service) DeleteArea(ctx context.Context, id string) error {
	if err := s.db.DeleteArea(ctx, id); err != nil {
		return err
	}
	s.publish("area", "deleted", id)
	return nil
}

// MoveArea moves an area within the global areas scope.
func (s *Service) MoveArea(ctx context.Context, id string, from, to int) error {
	a, err := s.db.GetArea(ctx, id)
	if err != nil {
		return err
	}
	return s.engine.Move(ctx, a, from, to)
}

// CreateHeader creates a header appended to its project's header scope.
func (s *Service) CreateHeader(ctx context.Context, projectID, title string) (*models.Header, error) {
	if _, err := s.db.GetProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("resolve project: %w", err)
	}
	h := &models.Header{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.engine.Append(ctx, h); err != nil {
		return nil, err
	}
	s.publish("header", "created", h.ID)
	return h, nil
}

// ListHeaders returns a project's headers in display order.
func (s *Service) ListHeaders(ctx context.Context, projectID string) ([]*models.Header, error) {
	ordered, err := s.engine.Ordered(ctx, models.ProjectHeadersScope(projectID), 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Header, 0, len(ordered))
	for _, m := range ordered {
		if h, ok := m.(*models.Header); ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// UpdateHeader retitles a header.
func (s *Service) UpdateHeader(ctx context.Context, id, title string) (*models.Header, error) {
	h, err := s.db.GetHeader(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Title = title
	if err := s.db.UpdateHeaderFields(ctx, h); err != nil {
		return nil, err
	}
	s.publish("header", "updated", id)
	return h, nil
}

// DeleteHeader removes a header; its tasks fall back to the bare project
// scope.
func (s *Service) DeleteHeader(ctx context.Context, id string) error {
	if err := s.db.DeleteHeader(ctx, id); err != nil {
		return err
	}
	s.publish("header", "deleted", id)
	return nil
}

// MoveHeader moves a header within its project's header scope.
func (s *Service) MoveHeader(ctx context.Context, id string, from, to int) error {
	h, err := s.db.GetHeader(ctx, id)
	if err != nil {
		return err
	}
	return s.engine.Move(ctx, h, from, to)
}

// Search delegates full-text search over task titles and notes.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]store.SearchResult, error) {
	return s.db.SearchTasks(ctx, query, limit)
}

// Audit runs the read-only consistency check over one scope.
func (s *Service) Audit(ctx context.Context, scope models.ScopeID) (*ordering.Report, error) {
	return s.auditor.Audit(ctx, scope)
}

// Repair reindexes one scope, or bootstraps and repairs the whole store
// when scope is the zero value.
func (s *Service) Repair(ctx context.Context, scope models.ScopeID) error {
	if !scope.IsZero() {
		return s.repair.ReindexScope(ctx, scope)
	}
	if _, err := s.repair.BootstrapMissingKeys(ctx); err != nil {
		return err
	}
	_, err := s.repair.ReindexAll(ctx)
	return err
}

// StartupRepair runs the once-per-session launch repair pass.
func (s *Service) StartupRepair(ctx context.Context) error {
	return s.repair.RunStartupRepair(ctx)
}
