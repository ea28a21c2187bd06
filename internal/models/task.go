package models

import "time"

// Task priorities. Higher values sort first in the tie-break order.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Task is a single to-do item. It belongs to exactly one ordering scope:
// a header, a project, or the inbox.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes,omitempty"`
	ProjectID string     `json:"project_id,omitempty"` // empty = no project
	HeaderID  string     `json:"header_id,omitempty"`  // empty = not under a header; implies ProjectID when set
	Completed bool       `json:"completed"`
	Logged    bool       `json:"logged"`
	Priority  int        `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Pos       *int32     `json:"position,omitempty"` // nil = never keyed (corruption, awaiting repair)
	CreatedAt time.Time  `json:"created_at"`
}

func (t *Task) OrderableID() string { return t.ID }

func (t *Task) Kind() EntityKind { return KindTask }

func (t *Task) Position() (int32, bool) {
	if t.Pos == nil {
		return 0, false
	}
	return *t.Pos, true
}

func (t *Task) SetPosition(key int32) { t.Pos = &key }

// Scope derives the task's ordering scope from its parent references.
// A header reference wins over a bare project reference.
func (t *Task) Scope() ScopeID {
	switch {
	case t.HeaderID != "":
		return HeaderTasksScope(t.HeaderID)
	case t.ProjectID != "":
		return ProjectTasksScope(t.ProjectID)
	default:
		return InboxScope()
	}
}

func (t *Task) Created() time.Time { return t.CreatedAt }

// TieBreak orders by due date ascending (no due date last), priority
// descending, then title ascending.
func (t *Task) TieBreak(other Orderable) int {
	o, ok := other.(*Task)
	if !ok {
		return 0
	}
	switch {
	case t.DueDate != nil && o.DueDate == nil:
		return -1
	case t.DueDate == nil && o.DueDate != nil:
		return 1
	case t.DueDate != nil && o.DueDate != nil:
		if c := compareTimes(*t.DueDate, *o.DueDate); c != 0 {
			return c
		}
	}
	if t.Priority != o.Priority {
		if t.Priority > o.Priority {
			return -1
		}
		return 1
	}
	return compareStrings(t.Title, o.Title)
}
