package ordering

import (
	"context"
	"sort"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// DuplicateGroup lists the entities sharing one position key. Always a
// defect.
type DuplicateGroup struct {
	Position int32    `json:"position"`
	IDs      []string `json:"ids"`
}

// KeyGap is a jump between consecutive keys larger than one. Not a defect
// under the deliberate 10-spacing scheme; reported for diagnostic
// visibility only and never triggers repair by itself.
type KeyGap struct {
	From int32 `json:"from"`
	To   int32 `json:"to"`
}

// Report is the outcome of auditing one scope.
type Report struct {
	Scope      string           `json:"scope"`
	Members    int              `json:"members"`
	Duplicates []DuplicateGroup `json:"duplicates"`
	Gaps       []KeyGap         `json:"gaps"`
	// Missing lists entities with no position key at all: corruption
	// awaiting bootstrap repair.
	Missing []string `json:"missing"`
}

// Clean reports whether the scope satisfies the ordering invariants
// (no duplicate keys, no unkeyed entities). Gaps are fine.
func (r *Report) Clean() bool {
	return len(r.Duplicates) == 0 && len(r.Missing) == 0
}

// Auditor is a read-only diagnostic over scope position keys. It never
// mutates state, so it is cheap enough to run on every launch.
type Auditor struct {
	db *store.DB
}

// NewAuditor creates an auditor over the given store.
func NewAuditor(db *store.DB) *Auditor {
	return &Auditor{db: db}
}

// Audit inspects one scope and reports duplicate keys, gaps, and unkeyed
// entities.
func (a *Auditor) Audit(ctx context.Context, scope models.ScopeID) (*Report, error) {
	members, err := a.db.MembersOf(ctx, scope)
	if err != nil {
		return nil, err
	}
	return buildReport(scope, members), nil
}

func buildReport(scope models.ScopeID, members []models.Orderable) *Report {
	report := &Report{Scope: scope.Key(), Members: len(members)}

	byKey := make(map[int32][]string)
	var keys []int32
	for _, m := range members {
		key, ok := m.Position()
		if !ok {
			report.Missing = append(report.Missing, m.OrderableID())
			continue
		}
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], m.OrderableID())
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, key := range keys {
		ids := byKey[key]
		if len(ids) > 1 {
			sort.Strings(ids)
			report.Duplicates = append(report.Duplicates, DuplicateGroup{Position: key, IDs: ids})
		}
	}
	for i := 1; i < len(keys); i++ {
		if keys[i]-keys[i-1] > 1 {
			report.Gaps = append(report.Gaps, KeyGap{From: keys[i-1], To: keys[i]})
		}
	}
	sort.Strings(report.Missing)
	return report
}
