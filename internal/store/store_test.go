package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
	"github.com/starford/raido/internal/testutil"
)

func TestTaskCRUD(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	pos := int32(10)
	task := &models.Task{
		ID:        uuid.NewString(),
		Title:     "Water plants",
		Notes:     "the big one needs a lot",
		Priority:  models.PriorityMedium,
		DueDate:   &due,
		Pos:       &pos,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.InsertTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != task.Title || got.Notes != task.Notes || got.Priority != task.Priority {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due = %v", got.DueDate)
	}
	if got.Pos == nil || *got.Pos != 10 {
		t.Errorf("pos = %v", got.Pos)
	}

	got.Title = "Water all plants"
	got.Completed = true
	if err := db.UpdateTaskFields(ctx, got); err != nil {
		t.Fatal(err)
	}
	got, err = db.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Water all plants" || !got.Completed {
		t.Errorf("update not persisted: %+v", got)
	}
	// Field updates never touch the position key.
	if got.Pos == nil || *got.Pos != 10 {
		t.Errorf("update touched position: %v", got.Pos)
	}

	if err := db.DeleteTask(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetTask(ctx, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete: %v", err)
	}
	if err := db.DeleteTask(ctx, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("double delete: %v", err)
	}
}

func TestScopeMembershipIsDisjoint(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, db, "Home", "", 0)
	header := &models.Header{ID: uuid.NewString(), ProjectID: project.ID, Title: "Phase 1", CreatedAt: time.Now().UTC()}
	if err := db.InsertHeader(ctx, header); err != nil {
		t.Fatal(err)
	}

	inbox := testutil.SeedTask(t, db, "inbox task", 0)
	projTask := &models.Task{ID: uuid.NewString(), Title: "proj task", ProjectID: project.ID, CreatedAt: time.Now().UTC()}
	headerTask := &models.Task{ID: uuid.NewString(), Title: "header task", ProjectID: project.ID, HeaderID: header.ID, CreatedAt: time.Now().UTC()}
	for _, task := range []*models.Task{projTask, headerTask} {
		if err := db.InsertTask(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		scope models.ScopeID
		want  string
	}{
		{models.InboxScope(), inbox.ID},
		{models.ProjectTasksScope(project.ID), projTask.ID},
		{models.HeaderTasksScope(header.ID), headerTask.ID},
	}
	for _, c := range cases {
		members, err := db.MembersOf(ctx, c.scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(members) != 1 || members[0].OrderableID() != c.want {
			t.Errorf("%s: members = %d", c.scope.Key(), len(members))
		}
	}
}

func TestMaxPosition(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	max, err := db.MaxPosition(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	if max != nil {
		t.Errorf("empty scope max = %v, want nil", *max)
	}

	testutil.SeedTask(t, db, "unkeyed", -1)
	max, err = db.MaxPosition(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	if max != nil {
		t.Errorf("wholly unkeyed scope max = %v, want nil", *max)
	}

	testutil.SeedTask(t, db, "a", 30)
	testutil.SeedTask(t, db, "b", 70)
	max, err = db.MaxPosition(ctx, models.InboxScope())
	if err != nil {
		t.Fatal(err)
	}
	if max == nil || *max != 70 {
		t.Errorf("max = %v, want 70", max)
	}
}

func TestAllScopesEnumeration(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	area := &models.Area{ID: uuid.NewString(), Name: "Work", CreatedAt: time.Now().UTC()}
	if err := db.InsertArea(ctx, area); err != nil {
		t.Fatal(err)
	}
	project := testutil.SeedProject(t, db, "Home", "", 0)
	header := &models.Header{ID: uuid.NewString(), ProjectID: project.ID, Title: "Phase 1", CreatedAt: time.Now().UTC()}
	if err := db.InsertHeader(ctx, header); err != nil {
		t.Fatal(err)
	}

	scopes, err := db.AllScopes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		got[s.Key()] = true
	}
	want := []models.ScopeID{
		models.InboxScope(),
		models.OrphanProjectsScope(),
		models.AreasScope(),
		models.ProjectTasksScope(project.ID),
		models.ProjectHeadersScope(project.ID),
		models.HeaderTasksScope(header.ID),
		models.AreaProjectsScope(area.ID),
	}
	for _, s := range want {
		if !got[s.Key()] {
			t.Errorf("missing scope %s", s.Key())
		}
	}
	if len(scopes) != len(want) {
		t.Errorf("scopes = %d, want %d", len(scopes), len(want))
	}
}

func TestUnkeyedAcrossTables(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	testutil.SeedTask(t, db, "keyed", 0)
	lostTask := testutil.SeedTask(t, db, "lost task", -1)
	lostProject := testutil.SeedProject(t, db, "lost project", "", -1)
	lostArea := &models.Area{ID: uuid.NewString(), Name: "lost area", CreatedAt: time.Now().UTC()}
	if err := db.InsertArea(ctx, lostArea); err != nil {
		t.Fatal(err)
	}

	unkeyed, err := db.Unkeyed(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[string]bool, len(unkeyed))
	for _, m := range unkeyed {
		got[m.OrderableID()] = true
	}
	for _, id := range []string{lostTask.ID, lostProject.ID, lostArea.ID} {
		if !got[id] {
			t.Errorf("missing unkeyed entity %s", id)
		}
	}
	if len(unkeyed) != 3 {
		t.Errorf("unkeyed = %d, want 3", len(unkeyed))
	}
}

func TestCommitIsAtomic(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	a := testutil.SeedTask(t, db, "a", 0)

	err := db.Commit(ctx, []store.Mutation{
		store.PositionUpdate{Kind: models.KindTask, ID: a.ID, Position: 99},
		store.PositionUpdate{Kind: models.KindTask, ID: "missing", Position: 0},
	})
	if err == nil {
		t.Fatal("expected commit failure")
	}
	if !errors.Is(err, apperr.ErrCommitFailed) {
		t.Errorf("err = %v, want ErrCommitFailed", err)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want wrapped ErrNotFound", err)
	}

	// The valid update in the same batch must have been rolled back.
	got, err := db.GetTask(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Pos == nil || *got.Pos != 0 {
		t.Errorf("partial commit leaked: pos = %v", got.Pos)
	}
}

func TestTaskScopeMoveCommitsRefsAndKeyTogether(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, db, "Home", "", 0)
	a := testutil.SeedTask(t, db, "a", 0)

	err := db.Commit(ctx, []store.Mutation{
		store.TaskScopeMove{ID: a.ID, ProjectID: project.ID, Position: 20},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := db.GetTask(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectID != project.ID || got.HeaderID != "" {
		t.Errorf("refs = (%q, %q)", got.ProjectID, got.HeaderID)
	}
	if got.Pos == nil || *got.Pos != 20 {
		t.Errorf("pos = %v", got.Pos)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	area := &models.Area{ID: uuid.NewString(), Name: "Work", CreatedAt: time.Now().UTC()}
	if err := db.InsertArea(ctx, area); err != nil {
		t.Fatal(err)
	}
	project := testutil.SeedProject(t, db, "Home", area.ID, 0)
	header := &models.Header{ID: uuid.NewString(), ProjectID: project.ID, Title: "Phase 1", CreatedAt: time.Now().UTC()}
	if err := db.InsertHeader(ctx, header); err != nil {
		t.Fatal(err)
	}
	task := &models.Task{ID: uuid.NewString(), Title: "t", ProjectID: project.ID, HeaderID: header.ID, CreatedAt: time.Now().UTC()}
	if err := db.InsertTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	// Deleting the header releases its tasks into the bare project scope.
	if err := db.DeleteHeader(ctx, header.ID); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.HeaderID != "" || got.ProjectID != project.ID {
		t.Errorf("refs after header delete = (%q, %q)", got.ProjectID, got.HeaderID)
	}

	// Deleting the area releases its projects but keeps them.
	if err := db.DeleteArea(ctx, area.ID); err != nil {
		t.Fatal(err)
	}
	gotProject, err := db.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotProject.AreaID != "" {
		t.Errorf("area ref after area delete = %q", gotProject.AreaID)
	}

	// Deleting the project removes its tasks.
	if err := db.DeleteProject(ctx, project.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetTask(ctx, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("task survived project delete: %v", err)
	}
}

func TestSearchTasks(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()

	groceries := testutil.SeedTask(t, db, "Buy groceries", 0)
	task := &models.Task{ID: uuid.NewString(), Title: "Call mom", Notes: "about the groceries list", CreatedAt: time.Now().UTC()}
	if err := db.InsertTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	testutil.SeedTask(t, db, "Unrelated", 20)

	results, err := db.SearchTasks(ctx, "groceries", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	found := map[string]bool{}
	for _, r := range results {
		found[r.ID] = true
	}
	if !found[groceries.ID] || !found[task.ID] {
		t.Errorf("title and notes matches expected, got %+v", results)
	}

	results, err = db.SearchTasks(ctx, "groceries", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("limit ignored: %d results", len(results))
	}
}
