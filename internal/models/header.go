package models

import "time"

// Header is a named section inside a project. Headers are ordered within
// their project, and each header owns an ordering scope for its tasks.
type Header struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Pos       *int32    `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Header) OrderableID() string { return h.ID }

func (h *Header) Kind() EntityKind { return KindHeader }

func (h *Header) Position() (int32, bool) {
	if h.Pos == nil {
		return 0, false
	}
	return *h.Pos, true
}

func (h *Header) SetPosition(key int32) { h.Pos = &key }

func (h *Header) Scope() ScopeID { return ProjectHeadersScope(h.ProjectID) }

func (h *Header) Created() time.Time { return h.CreatedAt }

// TieBreak orders headers by title ascending.
func (h *Header) TieBreak(other Orderable) int {
	o, ok := other.(*Header)
	if !ok {
		return 0
	}
	return compareStrings(h.Title, o.Title)
}
