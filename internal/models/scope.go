package models

import (
	"fmt"
	"strings"
)

// ScopeKind identifies the family of lists an ordering scope belongs to.
type ScopeKind string

// Scope kinds. A scope is identified structurally by its parent reference,
// not by a stored row.
const (
	// ScopeInbox is tasks with no project.
	ScopeInbox ScopeKind = "inbox"
	// ScopeProjectTasks is tasks directly under a project (no header).
	ScopeProjectTasks ScopeKind = "project"
	// ScopeHeaderTasks is tasks under one header of a project.
	ScopeHeaderTasks ScopeKind = "header"
	// ScopeProjectHeaders is the headers of one project.
	ScopeProjectHeaders ScopeKind = "headers"
	// ScopeAreaProjects is projects under one area.
	ScopeAreaProjects ScopeKind = "area"
	// ScopeOrphanProjects is projects with no area.
	ScopeOrphanProjects ScopeKind = "orphan-projects"
	// ScopeAreas is the single global scope containing all areas.
	ScopeAreas ScopeKind = "areas"
)

// ScopeID identifies one ordering scope. Parent is empty for the
// parentless kinds (inbox, orphan-projects, areas).
type ScopeID struct {
	Kind   ScopeKind
	Parent string
}

// Key returns a stable string form usable as a map key and in API
// query parameters, e.g. "inbox" or "project:3f2a...".
func (s ScopeID) Key() string {
	if s.Parent == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.Parent
}

func (s ScopeID) String() string { return s.Key() }

// IsZero reports whether s is the zero ScopeID.
func (s ScopeID) IsZero() bool { return s.Kind == "" }

// ParseScopeID parses the Key() form back into a ScopeID.
func ParseScopeID(key string) (ScopeID, error) {
	kind, parent, _ := strings.Cut(key, ":")
	s := ScopeID{Kind: ScopeKind(kind), Parent: parent}
	switch s.Kind {
	case ScopeInbox, ScopeOrphanProjects, ScopeAreas:
		if s.Parent != "" {
			return ScopeID{}, fmt.Errorf("scope %q takes no parent", kind)
		}
	case ScopeProjectTasks, ScopeHeaderTasks, ScopeProjectHeaders, ScopeAreaProjects:
		if s.Parent == "" {
			return ScopeID{}, fmt.Errorf("scope %q requires a parent id", kind)
		}
	default:
		return ScopeID{}, fmt.Errorf("unknown scope kind %q", kind)
	}
	return s, nil
}

// InboxScope returns the scope for tasks with no project.
func InboxScope() ScopeID { return ScopeID{Kind: ScopeInbox} }

// ProjectTasksScope returns the scope for tasks directly under a project.
func ProjectTasksScope(projectID string) ScopeID {
	return ScopeID{Kind: ScopeProjectTasks, Parent: projectID}
}

// HeaderTasksScope returns the scope for tasks under a header.
func HeaderTasksScope(headerID string) ScopeID {
	return ScopeID{Kind: ScopeHeaderTasks, Parent: headerID}
}

// ProjectHeadersScope returns the scope for the headers of a project.
func ProjectHeadersScope(projectID string) ScopeID {
	return ScopeID{Kind: ScopeProjectHeaders, Parent: projectID}
}

// AreaProjectsScope returns the scope for projects under an area.
func AreaProjectsScope(areaID string) ScopeID {
	return ScopeID{Kind: ScopeAreaProjects, Parent: areaID}
}

// OrphanProjectsScope returns the scope for projects with no area.
func OrphanProjectsScope() ScopeID { return ScopeID{Kind: ScopeOrphanProjects} }

// AreasScope returns the single global scope for areas.
func AreasScope() ScopeID { return ScopeID{Kind: ScopeAreas} }
