package ordering

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// Coordinator restores the ordering invariants. It is the single authority
// for repair: bootstrap of unkeyed entities, per-scope reindexing, and the
// once-per-session startup pass.
type Coordinator struct {
	db     *store.DB
	engine *Engine
	logger *slog.Logger

	mu  sync.Mutex
	ran bool // startup repair already ran this session
}

// NewCoordinator creates a repair coordinator sharing the engine's
// per-scope locks, so repair and interactive reorders never interleave on
// the same scope.
func NewCoordinator(db *store.DB, engine *Engine, logger *slog.Logger) *Coordinator {
	return &Coordinator{db: db, engine: engine, logger: logger}
}

// BootstrapMissingKeys assigns the sentinel key to every entity that never
// received one, so they sort after normally-keyed items instead of breaking
// comparisons. A stabilizing default, not a correct position; a later
// reindex supersedes it. Returns the number of entities fixed.
func (c *Coordinator) BootstrapMissingKeys(ctx context.Context) (int, error) {
	unkeyed, err := c.db.Unkeyed(ctx)
	if err != nil {
		return 0, err
	}
	if len(unkeyed) == 0 {
		return 0, nil
	}

	muts := make([]store.Mutation, 0, len(unkeyed))
	touched := make(map[string]models.ScopeID)
	for _, m := range unkeyed {
		muts = append(muts, store.PositionUpdate{
			Kind:     m.Kind(),
			ID:       m.OrderableID(),
			Position: BootstrapKey,
		})
		scope := m.Scope()
		touched[scope.Key()] = scope
	}
	if err := c.db.Commit(ctx, muts); err != nil {
		return 0, err
	}
	c.logger.Info("repair: bootstrapped missing keys", slog.Int("count", len(muts)))
	for _, scope := range touched {
		c.engine.notifyScope(scope)
	}
	return len(muts), nil
}

// ReindexScope rewrites every key in the scope to the canonical sequence.
// Members are taken in creation order, the most defensible fallback when
// positions are untrustworthy. Safe to run any number of times.
func (c *Coordinator) ReindexScope(ctx context.Context, scope models.ScopeID) error {
	l := c.engine.scopeLock(scope)
	l.Lock()
	defer l.Unlock()
	return c.reindexLocked(ctx, scope)
}

func (c *Coordinator) reindexLocked(ctx context.Context, scope models.ScopeID) error {
	members, err := c.db.MembersOf(ctx, scope)
	if err != nil {
		return err
	}
	byCreation(members)

	muts := resequence(members)
	if len(muts) == 0 {
		return nil
	}
	if err := c.db.Commit(ctx, muts); err != nil {
		return err
	}
	c.logger.Info("repair: reindexed scope",
		slog.String("scope", scope.Key()),
		slog.Int("rewritten", len(muts)))
	c.engine.notifyScope(scope)
	return nil
}

// ReindexAll walks every known scope and reindexes the ones whose audit
// shows duplicates or unkeyed entities. Healthy scopes are left alone, so
// user-arranged order survives and a second run is a no-op. Returns the
// number of scopes repaired.
func (c *Coordinator) ReindexAll(ctx context.Context) (int, error) {
	scopes, err := c.db.AllScopes(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, scope := range scopes {
		l := c.engine.scopeLock(scope)
		l.Lock()
		members, err := c.db.MembersOf(ctx, scope)
		if err != nil {
			l.Unlock()
			return repaired, err
		}
		report := buildReport(scope, members)
		if report.Clean() {
			l.Unlock()
			continue
		}
		c.logger.Warn("repair: corrupted scope",
			slog.String("scope", scope.Key()),
			slog.Int("duplicates", len(report.Duplicates)),
			slog.Int("missing", len(report.Missing)))
		if err := c.reindexLocked(ctx, scope); err != nil {
			l.Unlock()
			return repaired, err
		}
		repaired++
		l.Unlock()
	}
	return repaired, nil
}

// RunStartupRepair runs the launch-time pass: bootstrap missing keys, then
// reindex corrupted scopes. Gated by a session flag so repeated calls
// within one process lifetime are cheap no-ops.
func (c *Coordinator) RunStartupRepair(ctx context.Context) error {
	c.mu.Lock()
	if c.ran {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if _, err := c.BootstrapMissingKeys(ctx); err != nil {
		return err
	}
	repaired, err := c.ReindexAll(ctx)
	if err != nil {
		return err
	}
	if repaired > 0 {
		c.logger.Info("repair: startup pass complete", slog.Int("scopes_repaired", repaired))
	}

	c.mu.Lock()
	c.ran = true
	c.mu.Unlock()
	return nil
}

// ResetSession clears the startup-repair flag. Teardown hook for tests and
// for an explicit administrative rerun.
func (c *Coordinator) ResetSession() {
	c.mu.Lock()
	c.ran = false
	c.mu.Unlock()
}

// byCreation sorts members by creation time, id as the stable fallback.
func byCreation(members []models.Orderable) {
	sort.SliceStable(members, func(i, j int) bool {
		if !members[i].Created().Equal(members[j].Created()) {
			return members[i].Created().Before(members[j].Created())
		}
		return members[i].OrderableID() < members[j].OrderableID()
	})
}
