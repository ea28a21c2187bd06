package models

import "time"

// Project groups tasks and optionally belongs to an area.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AreaID    string    `json:"area_id,omitempty"` // empty = no area
	Completed bool      `json:"completed"`
	Pos       *int32    `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Project) OrderableID() string { return p.ID }

func (p *Project) Kind() EntityKind { return KindProject }

func (p *Project) Position() (int32, bool) {
	if p.Pos == nil {
		return 0, false
	}
	return *p.Pos, true
}

func (p *Project) SetPosition(key int32) { p.Pos = &key }

func (p *Project) Scope() ScopeID {
	if p.AreaID != "" {
		return AreaProjectsScope(p.AreaID)
	}
	return OrphanProjectsScope()
}

func (p *Project) Created() time.Time { return p.CreatedAt }

// TieBreak orders projects by name ascending.
func (p *Project) TieBreak(other Orderable) int {
	o, ok := other.(*Project)
	if !ok {
		return 0
	}
	return compareStrings(p.Name, o.Name)
}
