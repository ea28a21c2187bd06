package ordering

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
	"github.com/starford/raido/internal/testutil"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *store.DB) {
	t.Helper()
	db := testutil.TestDB(t)
	engine := NewEngine(db, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCoordinator(db, engine, logger), db
}

func TestBootstrapMissingKeys(t *testing.T) {
	c, db := newTestCoordinator(t)
	ctx := context.Background()

	keyed := testutil.SeedTask(t, db, "keyed", 40)
	lost1 := testutil.SeedTask(t, db, "lost1", -1)
	lost2 := testutil.SeedTask(t, db, "lost2", -1)
	lostProject := testutil.SeedProject(t, db, "lost project", "", -1)

	n, err := c.BootstrapMissingKeys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("bootstrapped = %d, want 3", n)
	}

	for _, id := range []string{lost1.ID, lost2.ID} {
		got, err := db.GetTask(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Pos == nil || *got.Pos != BootstrapKey {
			t.Errorf("task %s key = %v, want sentinel %d", id, got.Pos, BootstrapKey)
		}
	}
	gotProject, err := db.GetProject(ctx, lostProject.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotProject.Pos == nil || *gotProject.Pos != BootstrapKey {
		t.Errorf("project key = %v, want sentinel", gotProject.Pos)
	}

	// Already-keyed entities stay put, and the sentinel sorts them last.
	gotKeyed, err := db.GetTask(ctx, keyed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotKeyed.Pos == nil || *gotKeyed.Pos != 40 {
		t.Errorf("keyed task rewritten: %v", gotKeyed.Pos)
	}

	// Second run finds nothing.
	n, err = c.BootstrapMissingKeys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second bootstrap = %d, want 0", n)
	}
}

func TestReindexScopeUsesCreationOrder(t *testing.T) {
	c, db := newTestCoordinator(t)
	ctx := context.Background()

	// Duplicate keys; creation order (seed order) is the fallback truth.
	first := testutil.SeedTask(t, db, "first", 10)
	second := testutil.SeedTask(t, db, "second", 10)
	third := testutil.SeedTask(t, db, "third", 10)

	if err := c.ReindexScope(ctx, models.InboxScope()); err != nil {
		t.Fatal(err)
	}

	want := map[string]int32{first.ID: 0, second.ID: 10, third.ID: 20}
	for id, wantKey := range want {
		got, err := db.GetTask(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Pos == nil || *got.Pos != wantKey {
			t.Errorf("key[%s] = %v, want %d", id, got.Pos, wantKey)
		}
	}

	report, err := NewAuditor(db).Audit(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	if !report.Clean() {
		t.Errorf("scope still dirty after reindex: %+v", report)
	}
}

func TestReindexScopeIdempotent(t *testing.T) {
	c, db := newTestCoordinator(t)
	ctx := context.Background()

	testutil.SeedTask(t, db, "a", 30)
	testutil.SeedTask(t, db, "b", 30)

	if err := c.ReindexScope(ctx, models.InboxScope()); err != nil {
		t.Fatal(err)
	}
	after, err := db.MembersOf(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	firstPass := make(map[string]int32)
	for _, m := range after {
		k, _ := m.Position()
		firstPass[m.OrderableID()] = k
	}

	if err := c.ReindexScope(ctx, models.InboxScope()); err != nil {
		t.Fatal(err)
	}
	after, err = db.MembersOf(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range after {
		k, _ := m.Position()
		if firstPass[m.OrderableID()] != k {
			t.Errorf("second reindex changed key[%s]: %d -> %d", m.OrderableID(), firstPass[m.OrderableID()], k)
		}
	}
}

func TestReindexAllSkipsHealthyScopes(t *testing.T) {
	c, db := newTestCoordinator(t)
	ctx := context.Background()

	// Healthy inbox with deliberate gaps: the user arranged this order.
	a := testutil.SeedTask(t, db, "a", 0)
	b := testutil.SeedTask(t, db, "b", 50)

	// Corrupted project scope.
	project := testutil.SeedProject(t, db, "Home", "", 0)
	p1 := insertTask(t, db, "p1", project.ID, "", key(10))
	p2 := insertTask(t, db, "p2", project.ID, "", key(10))

	repaired, err := c.ReindexAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if repaired != 1 {
		t.Errorf("repaired = %d, want 1", repaired)
	}

	// Healthy scope untouched, gaps and all.
	gotA, _ := db.GetTask(ctx, a.ID)
	gotB, _ := db.GetTask(ctx, b.ID)
	if *gotA.Pos != 0 || *gotB.Pos != 50 {
		t.Errorf("healthy scope rewritten: %d, %d", *gotA.Pos, *gotB.Pos)
	}

	// Corrupted scope now canonical.
	gotP1, _ := db.GetTask(ctx, p1.ID)
	gotP2, _ := db.GetTask(ctx, p2.ID)
	if *gotP1.Pos != 0 || *gotP2.Pos != 10 {
		t.Errorf("corrupted scope keys = %d, %d", *gotP1.Pos, *gotP2.Pos)
	}

	// A second full pass finds nothing to do.
	repaired, err = c.ReindexAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if repaired != 0 {
		t.Errorf("second pass repaired = %d, want 0", repaired)
	}
}

func TestRunStartupRepairOncePerSession(t *testing.T) {
	c, db := newTestCoordinator(t)
	ctx := context.Background()

	testutil.SeedTask(t, db, "lost", -1)

	if err := c.RunStartupRepair(ctx); err != nil {
		t.Fatal(err)
	}
	report, err := NewAuditor(db).Audit(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	if !report.Clean() {
		t.Fatalf("startup repair left scope dirty: %+v", report)
	}

	// Corruption appearing after the pass is not repaired again this
	// session.
	testutil.SeedTask(t, db, "late", -1)
	if err := c.RunStartupRepair(ctx); err != nil {
		t.Fatal(err)
	}
	report, err = NewAuditor(db).Audit(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	if report.Clean() {
		t.Error("second startup call repaired; expected session gating")
	}

	// Until the session flag is reset.
	c.ResetSession()
	if err := c.RunStartupRepair(ctx); err != nil {
		t.Fatal(err)
	}
	report, err = NewAuditor(db).Audit(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	if !report.Clean() {
		t.Errorf("repair after reset left scope dirty: %+v", report)
	}
}
