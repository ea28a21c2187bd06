package ordering

import (
	"sort"

	"github.com/starford/raido/internal/models"
)

// Order sorts scope members into the order a UI should render: position key
// ascending, entities with no key last. Tie-break fields (due date,
// priority, title, creation time, id) only keep the read deterministic when
// keys collide; they are never the source of truth.
func Order(members []models.Orderable) []models.Orderable {
	out := make([]models.Orderable, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func less(a, b models.Orderable) bool {
	ka, aok := a.Position()
	kb, bok := b.Position()
	switch {
	case aok && !bok:
		return true
	case !aok && bok:
		return false
	case aok && bok && ka != kb:
		return ka < kb
	}
	if c := a.TieBreak(b); c != 0 {
		return c < 0
	}
	if !a.Created().Equal(b.Created()) {
		return a.Created().Before(b.Created())
	}
	return a.OrderableID() < b.OrderableID()
}

// Window applies limit/offset batching to an ordered list. A limit <= 0
// means no limit. Pure performance affordance for large scopes; semantics
// are unchanged.
func Window(ordered []models.Orderable, limit, offset int) []models.Orderable {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ordered) {
		return nil
	}
	ordered = ordered[offset:]
	if limit > 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	return ordered
}

func indexOf(members []models.Orderable, id string) int {
	for i, m := range members {
		if m.OrderableID() == id {
			return i
		}
	}
	return -1
}
