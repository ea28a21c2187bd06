package api

import (
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// Response envelopes referenced by the OpenAPI annotations.

// TaskListResponse is the body of GET /api/tasks.
type TaskListResponse struct {
	Scope string         `json:"scope"`
	Tasks []*models.Task `json:"tasks"`
}

// ProjectListResponse is the body of GET /api/projects.
type ProjectListResponse struct {
	Scope    string            `json:"scope"`
	Projects []*models.Project `json:"projects"`
}

// AreaListResponse is the body of GET /api/areas.
type AreaListResponse struct {
	Areas []*models.Area `json:"areas"`
}

// HeaderListResponse is the body of GET /api/headers.
type HeaderListResponse struct {
	Headers []*models.Header `json:"headers"`
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Results []store.SearchResult `json:"results"`
}
