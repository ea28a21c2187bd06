// Package models defines the orderable entities (tasks, projects, areas,
// project headers) and the structural scope identifiers they are ordered in.
package models

import (
	"strings"
	"time"
)

// EntityKind discriminates the four orderable entity types in storage
// mutations and audit reports.
type EntityKind string

const (
	KindTask    EntityKind = "task"
	KindProject EntityKind = "project"
	KindArea    EntityKind = "area"
	KindHeader  EntityKind = "header"
)

// Orderable is the narrow capability every ordered entity implements.
// The position key is the single source of truth for order; entities
// without one are in a transient corrupted state awaiting repair.
type Orderable interface {
	// OrderableID returns the entity's stable UUID.
	OrderableID() string
	// Kind returns the entity type discriminator.
	Kind() EntityKind
	// Position returns the position key, or ok=false when the entity
	// never received one.
	Position() (key int32, ok bool)
	// SetPosition assigns the position key in memory. It does not persist.
	SetPosition(key int32)
	// Scope derives the ordering scope from the entity's current parent
	// references. Never cached.
	Scope() ScopeID
	// Created returns the creation timestamp, the fallback ordering used
	// when position keys are untrustworthy.
	Created() time.Time
	// TieBreak compares scope-specific fallback fields against another
	// entity of the same kind. It exists only to keep reads deterministic
	// under key collisions and is never authoritative.
	TieBreak(other Orderable) int
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
