package ordering

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// Notifier is called after a committed ordering change so live readers can
// invalidate cached views of the scope.
type Notifier func(scope models.ScopeID)

// Engine mutates position keys. Operations against the same scope are
// serialized through a per-scope mutex: two concurrent moves on one list
// must not interleave their read-recompute-write steps, or the later writer
// recomputes from stale data and silently undoes the earlier move.
// Operations on different scopes run in parallel.
type Engine struct {
	db     *store.DB
	notify Notifier

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates a reorder engine. notify may be nil.
func NewEngine(db *store.DB, notify Notifier) *Engine {
	return &Engine{
		db:     db,
		notify: notify,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (e *Engine) scopeLock(scope models.ScopeID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := scope.Key()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}

// lockScopes acquires both scope locks in stable key order so concurrent
// opposite-direction cross-scope moves cannot deadlock.
func (e *Engine) lockScopes(a, b models.ScopeID) (unlock func()) {
	if a.Key() == b.Key() {
		l := e.scopeLock(a)
		l.Lock()
		return l.Unlock
	}
	first, second := a, b
	if second.Key() < first.Key() {
		first, second = second, first
	}
	fl, sl := e.scopeLock(first), e.scopeLock(second)
	fl.Lock()
	sl.Lock()
	return func() {
		sl.Unlock()
		fl.Unlock()
	}
}

func (e *Engine) notifyScope(scope models.ScopeID) {
	if e.notify != nil {
		e.notify(scope)
	}
}

// Ordered returns the scope's members in display order, optionally windowed.
func (e *Engine) Ordered(ctx context.Context, scope models.ScopeID, limit, offset int) ([]models.Orderable, error) {
	members, err := e.db.MembersOf(ctx, scope)
	if err != nil {
		return nil, err
	}
	return Window(Order(members), limit, offset), nil
}

// Move moves item from one index to another within its current scope and
// rewrites the whole scope's keys. The item's actual index in the freshly
// read order is authoritative; from is the caller's view and only matters
// for the identity no-op check. to clamps to [0, len).
//
// No-ops (identity move, single-member scope) perform no write.
func (e *Engine) Move(ctx context.Context, item models.Orderable, from, to int) error {
	scope := item.Scope()
	l := e.scopeLock(scope)
	l.Lock()
	defer l.Unlock()

	members, err := e.db.MembersOf(ctx, scope)
	if err != nil {
		return err
	}
	ordered := Order(members)
	n := len(ordered)
	if n <= 1 {
		return nil
	}

	cur := indexOf(ordered, item.OrderableID())
	if cur < 0 {
		return fmt.Errorf("ordering: move %s in %s: %w", item.OrderableID(), scope, apperr.ErrNotFound)
	}
	if to < 0 {
		to = 0
	}
	if to >= n {
		to = n - 1
	}
	if cur == to {
		return nil
	}

	moved := ordered[cur]
	ordered = append(ordered[:cur], ordered[cur+1:]...)
	ordered = append(ordered[:to], append([]models.Orderable{moved}, ordered[to:]...)...)

	muts := resequence(ordered)
	if len(muts) == 0 {
		return nil
	}
	if err := e.db.Commit(ctx, muts); err != nil {
		return err
	}
	e.notifyScope(scope)
	return nil
}

// Append assigns the item the next key at the end of its owning scope and
// inserts it. Used for newly created entities: new items always land at the
// end because their visual position is not yet known to the caller.
func (e *Engine) Append(ctx context.Context, item models.Orderable) error {
	scope := item.Scope()
	l := e.scopeLock(scope)
	l.Lock()
	defer l.Unlock()

	max, err := e.db.MaxPosition(ctx, scope)
	if err != nil {
		return err
	}
	item.SetPosition(Append(max))

	switch v := item.(type) {
	case *models.Task:
		err = e.db.InsertTask(ctx, v)
	case *models.Project:
		err = e.db.InsertProject(ctx, v)
	case *models.Area:
		err = e.db.InsertArea(ctx, v)
	case *models.Header:
		err = e.db.InsertHeader(ctx, v)
	default:
		err = fmt.Errorf("ordering: append: unsupported entity %T", item)
	}
	if err != nil {
		return err
	}
	e.notifyScope(scope)
	return nil
}

// MoveToScope moves item into target, landing at the end. The scope
// reference and the new position key commit in one transaction; a failed
// commit leaves both untouched. Index-specific placement is Append followed
// by a within-scope Move.
func (e *Engine) MoveToScope(ctx context.Context, item models.Orderable, target models.ScopeID) error {
	source := item.Scope()
	if source.Key() == target.Key() {
		return nil
	}

	unlock := e.lockScopes(source, target)
	defer unlock()

	max, err := e.db.MaxPosition(ctx, target)
	if err != nil {
		return err
	}
	pos := Append(max)

	switch v := item.(type) {
	case *models.Task:
		projectID, headerID, err := e.taskParentRefs(ctx, target)
		if err != nil {
			return err
		}
		if err := e.db.Commit(ctx, []store.Mutation{store.TaskScopeMove{
			ID: v.ID, ProjectID: projectID, HeaderID: headerID, Position: pos,
		}}); err != nil {
			return err
		}
		v.ProjectID, v.HeaderID = projectID, headerID
		v.SetPosition(pos)

	case *models.Project:
		var areaID string
		switch target.Kind {
		case models.ScopeAreaProjects:
			areaID = target.Parent
		case models.ScopeOrphanProjects:
			// no area
		default:
			return fmt.Errorf("ordering: project into %s: %w", target, apperr.ErrScopeMismatch)
		}
		if err := e.db.Commit(ctx, []store.Mutation{store.ProjectScopeMove{
			ID: v.ID, AreaID: areaID, Position: pos,
		}}); err != nil {
			return err
		}
		v.AreaID = areaID
		v.SetPosition(pos)

	default:
		return fmt.Errorf("ordering: %s into %s: %w", item.Kind(), target, apperr.ErrScopeMismatch)
	}

	e.notifyScope(source)
	e.notifyScope(target)
	return nil
}

func (e *Engine) taskParentRefs(ctx context.Context, target models.ScopeID) (projectID, headerID string, err error) {
	switch target.Kind {
	case models.ScopeInbox:
		return "", "", nil
	case models.ScopeProjectTasks:
		return target.Parent, "", nil
	case models.ScopeHeaderTasks:
		h, err := e.db.GetHeader(ctx, target.Parent)
		if err != nil {
			return "", "", fmt.Errorf("ordering: resolve header %s: %w", target.Parent, err)
		}
		return h.ProjectID, h.ID, nil
	default:
		return "", "", fmt.Errorf("ordering: task into %s: %w", target, apperr.ErrScopeMismatch)
	}
}

// resequence returns the position updates needed to bring the given list to
// the canonical 0,10,20,... sequence, skipping entities already in place.
func resequence(ordered []models.Orderable) []store.Mutation {
	keys := Sequence(len(ordered))
	var muts []store.Mutation
	for i, m := range ordered {
		if cur, ok := m.Position(); ok && cur == keys[i] {
			continue
		}
		muts = append(muts, store.PositionUpdate{
			Kind:     m.Kind(),
			ID:       m.OrderableID(),
			Position: keys[i],
		})
	}
	return muts
}
