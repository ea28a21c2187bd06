package models

import "time"

// Area is a top-level grouping of projects. All areas share the single
// global areas scope.
type Area struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Pos       *int32    `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Area) OrderableID() string { return a.ID }

func (a *Area) Kind() EntityKind { return KindArea }

func (a *Area) Position() (int32, bool) {
	if a.Pos == nil {
		return 0, false
	}
	return *a.Pos, true
}

func (a *Area) SetPosition(key int32) { a.Pos = &key }

func (a *Area) Scope() ScopeID { return AreasScope() }

func (a *Area) Created() time.Time { return a.CreatedAt }

// TieBreak orders areas by name ascending.
func (a *Area) TieBreak(other Orderable) int {
	o, ok := other.(*Area)
	if !ok {
		return 0
	}
	return compareStrings(a.Name, o.Name)
}
