package ordering

import (
	"testing"
	"time"

	"github.com/starford/raido/internal/models"
)

func key(v int32) *int32 { return &v }

func task(id, title string, pos *int32) *models.Task {
	return &models.Task{
		ID:        id,
		Title:     title,
		Pos:       pos,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ids(ordered []models.Orderable) []string {
	out := make([]string, len(ordered))
	for i, m := range ordered {
		out[i] = m.OrderableID()
	}
	return out
}

func assertOrder(t *testing.T, got []models.Orderable, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("order = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("order = %v, want %v", gotIDs, want)
		}
	}
}

func TestOrderByKey(t *testing.T) {
	members := []models.Orderable{
		task("c", "c", key(20)),
		task("a", "a", key(0)),
		task("b", "b", key(10)),
	}
	assertOrder(t, Order(members), "a", "b", "c")
}

func TestOrderGapsAreHarmless(t *testing.T) {
	// Keys 0, 50, 9999: only relative order matters.
	members := []models.Orderable{
		task("z", "z", key(9999)),
		task("m", "m", key(50)),
		task("a", "a", key(0)),
	}
	assertOrder(t, Order(members), "a", "m", "z")
}

func TestOrderUnkeyedLast(t *testing.T) {
	members := []models.Orderable{
		task("lost", "lost", nil),
		task("b", "b", key(10)),
		task("a", "a", key(0)),
	}
	assertOrder(t, Order(members), "a", "b", "lost")
}

func TestOrderDuplicateKeysDeterministic(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	withDue := task("due", "due", key(10))
	withDue.DueDate = &due
	members := []models.Orderable{
		task("zeta", "zeta", key(10)),
		withDue,
		task("alpha", "alpha", key(10)),
	}
	// Due date wins the tie, then title ascending.
	assertOrder(t, Order(members), "due", "alpha", "zeta")

	// Same input in any order gives the same result.
	members = []models.Orderable{members[2], members[0], members[1]}
	assertOrder(t, Order(members), "due", "alpha", "zeta")
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	members := []models.Orderable{
		task("b", "b", key(10)),
		task("a", "a", key(0)),
	}
	Order(members)
	if members[0].OrderableID() != "b" {
		t.Error("input slice was reordered")
	}
}

func TestWindow(t *testing.T) {
	ordered := Order([]models.Orderable{
		task("a", "a", key(0)),
		task("b", "b", key(10)),
		task("c", "c", key(20)),
		task("d", "d", key(30)),
	})

	assertOrder(t, Window(ordered, 2, 0), "a", "b")
	assertOrder(t, Window(ordered, 2, 2), "c", "d")
	assertOrder(t, Window(ordered, 0, 1), "b", "c", "d")
	if got := Window(ordered, 2, 10); got != nil {
		t.Errorf("out-of-range offset = %v", ids(got))
	}
	assertOrder(t, Window(ordered, 10, -1), "a", "b", "c", "d")
}
